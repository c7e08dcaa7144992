package options

import (
	"testing"

	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/filesystem"
	"github.com/arthur-debert/fimwatch/pkg/types"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const optionsPath = "/var/ossec/etc/internal_options.conf"

func optionsFile(t *testing.T, content string) types.FS {
	t.Helper()
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/var/ossec/etc", 0755))
	require.NoError(t, fs.WriteFile(optionsPath, []byte(content), 0640))
	return fs
}

func read(t *testing.T, fs types.FS) string {
	t.Helper()
	data, err := fs.ReadFile(optionsPath)
	require.NoError(t, err)
	return string(data)
}

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
		value   string
		want    string
	}{
		{
			name:    "replace existing",
			content: "# Syscheck\nsyscheck.debug=0\nsyscheck.sleep=1\n",
			key:     "syscheck.debug",
			value:   "2",
			want:    "# Syscheck\nsyscheck.debug=2\nsyscheck.sleep=1\n",
		},
		{
			name:    "replace empty value",
			content: "syscheck.debug=\n",
			key:     "syscheck.debug",
			value:   "1",
			want:    "syscheck.debug=1\n",
		},
		{
			name:    "append missing",
			content: "syscheck.sleep=1\n",
			key:     "syscheck.debug",
			value:   "2",
			want:    "syscheck.sleep=1\n\n\nsyscheck.debug=2",
		},
		{
			name:    "mentioned in a comment only",
			content: "# syscheck.debug controls verbosity\n",
			key:     "syscheck.debug",
			value:   "2",
			want:    "# syscheck.debug controls verbosity\n\n\nsyscheck.debug=2",
		},
		{
			name:    "commented out assignment",
			content: "#syscheck.debug=0\n",
			key:     "syscheck.debug",
			value:   "1",
			want:    "#syscheck.debug=0\n\n\nsyscheck.debug=1",
		},
		{
			name:    "non numeric value replaced whole",
			content: "syscheck.mode=abc # trailing\n",
			key:     "syscheck.mode",
			value:   "xyz",
			want:    "syscheck.mode=xyz # trailing\n",
		},
		{
			name:    "indented assignment",
			content: "  syscheck.debug=0\n",
			key:     "syscheck.debug",
			value:   "2",
			want:    "  syscheck.debug=2\n",
		},
		{
			name:    "key as suffix of another key",
			content: "foo.syscheck.debug=0\n",
			key:     "syscheck.debug",
			value:   "2",
			want:    "foo.syscheck.debug=0\n\n\nsyscheck.debug=2",
		},
		{
			name:    "dots are literal",
			content: "syscheckXdebug=0\nsyscheck.debug=0\n",
			key:     "syscheck.debug",
			value:   "2",
			want:    "syscheckXdebug=0\nsyscheck.debug=2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := optionsFile(t, tt.content)
			require.NoError(t, Set(fs, optionsPath, tt.key, tt.value))
			assert.Equal(t, tt.want, read(t, fs))
		})
	}
}

func TestSet_Idempotent(t *testing.T) {
	tests := []struct {
		content string
		key     string
		value   string
	}{
		{"syscheck.debug=0\n", "syscheck.debug", "2"},
		{"other=1\n", "syscheck.debug", "2"},
		{"syscheck.mode=0\n", "syscheck.mode", "abc"},
		{"# syscheck.mode is unset\n", "syscheck.mode", "abc"},
		{"syscheck.debug=0\n", "syscheck.debug", ""},
	}

	for _, tt := range tests {
		fs := optionsFile(t, tt.content)
		require.NoError(t, Set(fs, optionsPath, tt.key, tt.value))
		once := read(t, fs)
		for i := 0; i < 3; i++ {
			require.NoError(t, Set(fs, optionsPath, tt.key, tt.value))
			assert.Equal(t, once, read(t, fs), "content %q value %q", tt.content, tt.value)
		}
	}
}

func TestSet_IdempotentProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("second Set changes nothing", prop.ForAll(
		func(value string, present bool) bool {
			content := "other=1\n"
			if present {
				content = "syscheck.mode=7\n" + content
			}
			fs := filesystem.NewMemory()
			if fs.MkdirAll("/var/ossec/etc", 0755) != nil || fs.WriteFile(optionsPath, []byte(content), 0640) != nil {
				return false
			}
			if Set(fs, optionsPath, "syscheck.mode", value) != nil {
				return false
			}
			once, _ := fs.ReadFile(optionsPath)
			if Set(fs, optionsPath, "syscheck.mode", value) != nil {
				return false
			}
			twice, _ := fs.ReadFile(optionsPath)
			return string(once) == string(twice)
		},
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSet_KeepsPermissions(t *testing.T) {
	fs := optionsFile(t, "a=1\n")
	require.NoError(t, Set(fs, optionsPath, "a", "2"))
	info, err := fs.Stat(optionsPath)
	require.NoError(t, err)
	assert.Equal(t, "-rw-r-----", info.Mode().Perm().String())
}

func TestSet_Errors(t *testing.T) {
	err := Set(filesystem.NewMemory(), optionsPath, "a", "1")
	assert.True(t, errors.IsErrorCode(err, errors.ErrOptionWrite))

	err = Set(optionsFile(t, ""), optionsPath, "", "1")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	for _, value := range []string{"a b", "1#2", "x\ny"} {
		err = Set(optionsFile(t, "a=1\n"), optionsPath, "a", value)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), value)
	}
}

func TestApply(t *testing.T) {
	out, found := Apply("x=1\ny=2", "y", "9")
	assert.True(t, found)
	assert.Equal(t, "x=1\ny=9", out)

	out, found = Apply("x=1", "y", "9")
	assert.False(t, found)
	assert.Equal(t, "x=1", out)
}
