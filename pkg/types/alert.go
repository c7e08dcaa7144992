package types

import "sort"

// AlertRecord is one decoded FIM alert payload (the "syscheck" object of an
// alerts.json entry). Numbers are kept as json.Number so integer checks can
// tell 42 from 42.5.
type AlertRecord map[string]interface{}

// Has reports whether field is present in the record, even if its value is null
func (a AlertRecord) Has(field string) bool {
	_, ok := a[field]
	return ok
}

// Fields returns the record's field names, sorted
func (a AlertRecord) Fields() []string {
	fields := make([]string, 0, len(a))
	for k := range a {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}
