package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/missmatch"
	"github.com/gnoswap-labs/missmatch/internal/pattern"
	"github.com/gnoswap-labs/missmatch/rules"
)

// execute runs a fresh command tree. Tests in this package share the
// color settings, so they do not run in parallel.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	rootCmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func sampleRules(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, rules.Save(path, rules.Sample()))
	return path
}

func TestParseCmd(t *testing.T) {
	node, err := pattern.Parse("a(n@x|@r)")
	require.NoError(t, err)

	stdout, _, err := execute(t, "", "parse", "a(n@x|@r)")
	require.NoError(t, err)
	assert.Equal(t, node.String()+"\n", stdout)

	stdout, _, err = execute(t, "", "parse", "--canonical", "a( n@x | @r )")
	require.NoError(t, err)
	assert.Equal(t, pattern.Format(node)+"\n", stdout)
}

func TestParseCmdSyntaxError(t *testing.T) {
	stdout, stderr, err := execute(t, "", "parse", "a(n,)")
	assert.ErrorIs(t, err, errReported)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error: syntax")
	assert.Contains(t, stderr, "--> pattern:1:5")
	assert.Contains(t, stderr, "unexpected token ')' where pattern was expected")
}

func TestMatchCmd(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		want    string
		wantErr error
	}{
		{
			name: "argument",
			args: []string{"match", "a(n@x|@r)", "[1, 2, 3]"},
			want: "matched a(n@x|@r)\n  r = [2,3] (array)\n  x = 1 (number)\n",
		},
		{
			name:  "stdin",
			stdin: `{"name": "ann"}`,
			args:  []string{"match", "o(.name:S@who)"},
			want:  "matched o(.name:S@who)\n  who = \"ann\" (string)\n",
		},
		{
			name:    "no match",
			args:    []string{"match", "a()", "[1]"},
			want:    "no match a()\n",
			wantErr: ErrNoMatch,
		},
		{
			name:    "binding conflict with default policy",
			args:    []string{"match", "a(n@r|@r)", "[1, 2]"},
			wantErr: missmatch.ErrBindingConflict,
		},
		{
			name: "overwrite policy",
			args: []string{"match", "--rest-policy", "overwrite", "a(n@r|@r)", "[1, 2]"},
			want: "matched a(n@r|@r)\n  r = [2] (array)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.stdin, tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.want != "" {
				assert.Equal(t, tt.want, stdout)
			}
		})
	}
}

func TestMatchCmdJSON(t *testing.T) {
	stdout, _, err := execute(t, "[true, \"x\"]\n", "match", "--json", "a(b@flag,s)")
	require.NoError(t, err)

	var got matchOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "a(b@flag,s)", got.Pattern)
	assert.True(t, got.Matched)
	assert.Equal(t, map[string]any{"flag": true}, got.Bindings)
}

func TestMatchCmdErrors(t *testing.T) {
	tests := []struct {
		name   string
		stdin  string
		args   []string
		errMsg string
		stderr string
	}{
		{name: "invalid json", args: []string{"match", "n", "[1,"}, errMsg: "failed to decode candidate"},
		{name: "no candidate", stdin: "  \n", args: []string{"match", "n"}, errMsg: "no candidate given"},
		{name: "bad policy", args: []string{"match", "--rest-policy", "replace", "n", "1"}, errMsg: "replace"},
		{name: "syntax", args: []string{"match", "o()", "{}"}, errMsg: errReported.Error(), stderr: "error: syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Contains(t, stderr, tt.stderr)
		})
	}
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")

	stdout, _, err := execute(t, "", "init", path)
	require.NoError(t, err)
	assert.Equal(t, "Rule table created: "+path+"\n", stdout)

	table, err := rules.Load(path)
	require.NoError(t, err)
	assert.Equal(t, rules.Sample().Name, table.Name)

	_, _, err = execute(t, "", "init", path)
	assert.ErrorIs(t, err, errReported)

	_, _, err = execute(t, "", "init", "--force", path)
	assert.NoError(t, err)
}

func TestDispatchCmd(t *testing.T) {
	path := sampleRules(t)

	stdout, _, err := execute(t, "", "dispatch", "-r", path, "[1, 2]", "[]", `"x"`)
	require.NoError(t, err)
	assert.Equal(t, "[1, 2] => \"pair 1 2\"\n[] => \"empty list\"\n\"x\" => \"unknown shape\"\n", stdout)
}

func TestDispatchCmdStdinJSON(t *testing.T) {
	path := sampleRules(t)

	stdin := "{\"x\": 1, \"y\": 2}\n\n[1,\n"
	stdout, _, err := execute(t, stdin, "dispatch", "--rules", path, "--json", "--workers", "1")
	assert.ErrorIs(t, err, errReported)

	var got []dispatchOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "point at (1, 2)", got[0].Result)
	assert.Empty(t, got[0].Error)
	assert.Equal(t, "[1,", got[1].Input)
	assert.NotEmpty(t, got[1].Error)
}

func TestDispatchCmdOutputFile(t *testing.T) {
	path := sampleRules(t)
	outPath := filepath.Join(t.TempDir(), "out.json")

	stdout, _, err := execute(t, "", "dispatch", "-r", path, "--json", "-o", outPath, `{"name": "bo"}`)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"index":0,"input":"{\"name\": \"bo\"}","result":"hello bo"}]`, string(data))
}

func TestDispatchCmdMissingRules(t *testing.T) {
	_, _, err := execute(t, "", "dispatch", "-r", filepath.Join(t.TempDir(), "missing.yaml"), "1")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDispatchCmdWatch(t *testing.T) {
	path := sampleRules(t)

	_, _, err := execute(t, "", "dispatch", "--watch", "-r", path, "1")
	assert.Error(t, err)

	stdout, _, err := execute(t, "[1, 2]\n\n\"x\"\n", "dispatch", "--watch", "--json", "-r", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"index":0,"input":"[1, 2]","result":"pair 1 2"}`, lines[0])
	assert.JSONEq(t, `{"index":1,"input":"\"x\"","result":"unknown shape"}`, lines[1])
}
