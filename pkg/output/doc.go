// Package output renders fimwatch results for terminals, pipes and machines.
//
// Terminal output uses lipgloss styles loaded from the embedded styles.yaml,
// with adaptive colors for light and dark themes. Text output is the same
// layout without escape codes. JSON and YAML emit the underlying values.
package output
