package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadNodesSeparatesLocalFromNeighbors(t *testing.T) {
	path := writeTemp(t, "nodes.conf", ""+
		"A 10.0.0.1 9000\n"+
		"B 10.0.0.2 9000\n"+
		"C 10.0.0.3 9000\n",
	)

	local, neighbors, err := LoadNodes(path, 'B')
	require.NoError(t, err)

	assert.Equal(t, byte('B'), local.Name)
	assert.Equal(t, "10.0.0.2:9000", local.Addr.String())

	require.Len(t, neighbors, 2)
	assert.Equal(t, byte('A'), neighbors[0].Name, "neighbor order must match file order")
	assert.Equal(t, byte('C'), neighbors[1].Name)
}

func TestLoadNodesSkipsBlankLines(t *testing.T) {
	path := writeTemp(t, "nodes.conf", "A 10.0.0.1 9000\n\n  \nB 10.0.0.2 9000\n")

	local, neighbors, err := LoadNodes(path, 'A')
	require.NoError(t, err)
	assert.Equal(t, byte('A'), local.Name)
	require.Len(t, neighbors, 1)
}

func TestLoadNodesRejectsMultiCharName(t *testing.T) {
	path := writeTemp(t, "nodes.conf", "AB 10.0.0.1 9000\n")
	_, _, err := LoadNodes(path, 'A')
	require.Error(t, err)
}

func TestLoadNodesRejectsNonIPv4(t *testing.T) {
	path := writeTemp(t, "nodes.conf", "A ::1 9000\n")
	_, _, err := LoadNodes(path, 'A')
	require.Error(t, err)
}

func TestLoadNodesRejectsBadPort(t *testing.T) {
	path := writeTemp(t, "nodes.conf", "A 10.0.0.1 not-a-port\n")
	_, _, err := LoadNodes(path, 'A')
	require.Error(t, err)
}

func TestLoadNodesRejectsWrongFieldCount(t *testing.T) {
	path := writeTemp(t, "nodes.conf", "A 10.0.0.1\n")
	_, _, err := LoadNodes(path, 'A')
	require.Error(t, err)
}

func TestLoadNodesRequiresLocalNamePresent(t *testing.T) {
	path := writeTemp(t, "nodes.conf", "A 10.0.0.1 9000\nB 10.0.0.2 9000\n")
	_, _, err := LoadNodes(path, 'Z')
	require.Error(t, err)
}

func TestLoadNodesMissingFile(t *testing.T) {
	_, _, err := LoadNodes(filepath.Join(t.TempDir(), "missing.conf"), 'A')
	require.Error(t, err)
}
