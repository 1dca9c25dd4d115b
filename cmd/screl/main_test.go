package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRules = `
alias be s390x,ppc64
clone be:64,all:32
open !arm,all
read all
mmap2 all:32
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(args ...string) (string, error) {
	out, _, err := executeWithStderr(args...)
	return out, err
}

func executeWithStderr(args ...string) (string, string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestLookupMatch(t *testing.T) {
	rules := writeFile(t, filepath.Join(t.TempDir(), "relevancy"), testRules)

	_, err := execute("lookup", rules, "--match", "clone,s390x,64", "--match", "open,x86_64")
	assert.NoError(t, err)

	_, err = execute("lookup", rules, "--match", "clone,s390x,64", "--match", "open,arm,32")
	assert.True(t, errors.Is(err, errMismatch))

	_, err = execute("lookup", rules, "--match", "nosuchcall,x86_64,64")
	assert.True(t, errors.Is(err, errMismatch))

	_, err = execute("lookup", rules, "--match", "clone")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, errMismatch))
}

func TestLookupList(t *testing.T) {
	rules := writeFile(t, filepath.Join(t.TempDir(), "relevancy"), testRules)

	out, err := execute("lookup", rules, "--list", "arm,32", "--list", "s390x,64")
	require.NoError(t, err)
	assert.Equal(t, "clone\nmmap2\nopen\nread\n", out)

	out, err = execute("lookup", rules, "--list", "arm")
	require.NoError(t, err)
	assert.Equal(t, "read\n", out)
}

func TestLookupHostDefault(t *testing.T) {
	rules := writeFile(t, filepath.Join(t.TempDir(), "relevancy"), testRules)
	t.Setenv("SCREL_ARCH", "arm")
	t.Setenv("SCREL_BITS", "32")

	out, err := execute("lookup", rules)
	require.NoError(t, err)
	assert.Equal(t, "clone\nmmap2\nread\n", out)
}

func TestLookupExclusiveFlags(t *testing.T) {
	rules := writeFile(t, filepath.Join(t.TempDir(), "relevancy"), testRules)

	_, err := execute("lookup", rules, "--match", "read,arm,32", "--list", "arm,32")
	assert.Error(t, err)
}

func TestLookupSyntaxError(t *testing.T) {
	rules := writeFile(t, filepath.Join(t.TempDir(), "relevancy"), "read all arm\n")

	_, err := execute("lookup", rules, "--list", "arm,32")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error on line 1")
}

func TestGen(t *testing.T) {
	dir := t.TempDir()
	obs := filepath.Join(dir, "observed")
	require.NoError(t, os.Mkdir(obs, 0755))
	writeFile(t, filepath.Join(obs, "x86_64:64"), "read\nopen\n")
	writeFile(t, filepath.Join(obs, "s390x:64"), "read\nopen\n")
	writeFile(t, filepath.Join(obs, "arm:32"), "read\n")
	extra := writeFile(t, filepath.Join(dir, "x86,32.txt"), "read\nopen\n")

	out, err := execute("gen", "--loaddir", obs, "--load", extra+",x86_64,32")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# generated by screl on "))
	assert.Contains(t, out, "\nopen\t!arm,all\n")
	assert.Contains(t, out, "\nread\tall\n")

	out, err = execute("gen", "--loaddir", obs, "--dumb")
	require.NoError(t, err)
	assert.Contains(t, out, "\nopen\ts390x:64,x86_64:64\n")
}

func TestGenBaselineAndOutput(t *testing.T) {
	dir := t.TempDir()
	obs := filepath.Join(dir, "observed")
	require.NoError(t, os.Mkdir(obs, 0755))
	writeFile(t, filepath.Join(obs, "x86_64:64"), "read\nopen\n")
	writeFile(t, filepath.Join(obs, "arm:32"), "read\n")
	rel := writeFile(t, filepath.Join(dir, "relevancy"), "read all\nopen all\n")
	target := filepath.Join(dir, "out")

	out, err := execute("gen", "--loaddir", obs, "--rel", rel, "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\nopen\tx86_64\n")
	assert.NotContains(t, string(data), "\nread\t")
}

func TestGenManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x86.txt"), "read\n")
	manifest := writeFile(t, filepath.Join(dir, "sources.yaml"), "files:\n  - {path: x86.txt, arch: x86_64, bits: \"64\"}\n")

	out, err := execute("gen", "--manifest", manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "\nread\tall\n")
}

func TestGenErrors(t *testing.T) {
	_, err := execute("gen")
	assert.Error(t, err)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "noseparator"), "read\n")
	_, err = execute("gen", "--loaddir", dir)
	assert.Error(t, err)

	_, err = execute("gen", "--load", "file,arch")
	assert.Error(t, err)
}

func TestGenNothingObserved(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "arm:32"), "")

	out, errOut, err := executeWithStderr("gen", "--loaddir", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "no syscalls observed")
}

func TestParseLoadSpec(t *testing.T) {
	file, arch, bits, err := parseLoadSpec("a,b.txt,x86_64,64")
	require.NoError(t, err)
	assert.Equal(t, "a,b.txt", file)
	assert.Equal(t, "x86_64", arch)
	assert.Equal(t, "64", bits)

	for _, bad := range []string{"", "file", "file,arch", ",arch,64", "file,,64", "file,arch,"} {
		_, _, _, err := parseLoadSpec(bad)
		assert.Error(t, err, bad)
	}
}

func TestHostCmd(t *testing.T) {
	t.Setenv("SCREL_ARCH", "ppc64")
	t.Setenv("SCREL_BITS", "32")

	out, err := execute("host")
	require.NoError(t, err)
	assert.Equal(t, "ppc64:32\n", out)
}
