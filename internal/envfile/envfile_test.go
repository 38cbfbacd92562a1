package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyContent(t *testing.T) {
	result, err := Parse("")
	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestParse_Assignments(t *testing.T) {
	content := `# CI credentials
NPM_USERNAME=robot
export NPM_EMAIL = robot@example.com

NPM_PASSWORD="p@ss \"word\"" # trailing comment
SINGLE='raw \n value'
UNQUOTED=value # comment
EMPTY=
NPM_USERNAME=override
`
	env, err := Parse(content)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"NPM_USERNAME": "override",
		"NPM_EMAIL":    "robot@example.com",
		"NPM_PASSWORD": `p@ss "word"`,
		"SINGLE":       `raw \n value`,
		"UNQUOTED":     "value",
		"EMPTY":        "",
	}, env)
}

func TestParse_DoubleQuotedEscapes(t *testing.T) {
	env, err := Parse(`KEY="a\nb\\c"`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\\c", env["KEY"])
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"missing equals":        "JUSTAKEY",
		"empty key":             "=value",
		"unterminated double":   `KEY="open`,
		"unterminated single":   `KEY='open`,
		"escaped closing quote": `KEY="open\"`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("OK=1\n" + content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CI=true\n"), 0o600))
	env, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "true", env["CI"])
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing env file")
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("nope\n"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid env file")
}
