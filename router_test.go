package dvrouted

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dvrouted/rip"
)

func writeConfig(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// twoNodeConfig lays out a two-node network (A-B, cost 4) on fixed
// loopback ports, high enough to avoid colliding with ephemeral
// allocations made elsewhere in the same test run.
func twoNodeConfig(t *testing.T, basePort int) (nodeFile, costFile string) {
	dir := t.TempDir()
	nodeFile = writeConfig(t, dir, "nodes.conf", fmt.Sprintf(
		"A 127.0.0.1 %d\nB 127.0.0.1 %d\n", basePort, basePort+1))
	costFile = writeConfig(t, dir, "costs.conf", "A B 4\n")
	return nodeFile, costFile
}

func TestNewWiresTableFromConfigFiles(t *testing.T) {
	nodeFile, costFile := twoNodeConfig(t, 19200)

	router, err := New(Options{LocalName: 'A', NodeFile: nodeFile, CostFile: costFile})
	require.NoError(t, err)
	defer router.Stop()

	d, ok := router.Distance('B')
	require.True(t, ok)
	assert.Equal(t, 4, d)

	hop, ok := router.NextHop('B')
	require.True(t, ok)
	assert.Equal(t, byte('A'), hop)

	assert.Equal(t, "127.0.0.1:19200", router.LocalAddr().String())
}

func TestNewRejectsUnknownLocalName(t *testing.T) {
	nodeFile, costFile := twoNodeConfig(t, 19210)
	_, err := New(Options{LocalName: 'Z', NodeFile: nodeFile, CostFile: costFile})
	require.Error(t, err)
	var cfgErr *rip.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

// TestTwoNodeConvergence exercises the first seed scenario: two
// adjacent nodes, each seeded with the direct-link cost from the cost
// file, exchange broadcasts and both still hold that cost to the other
// once each has received a packet.
func TestTwoNodeConvergence(t *testing.T) {
	if testing.Short() {
		t.Skip("exercises real broadcast timers")
	}

	nodeFile, costFile := twoNodeConfig(t, 19220)

	a, err := New(Options{LocalName: 'A', NodeFile: nodeFile, CostFile: costFile})
	require.NoError(t, err)
	defer a.Stop()

	b, err := New(Options{LocalName: 'B', NodeFile: nodeFile, CostFile: costFile})
	require.NoError(t, err)
	defer b.Stop()

	go a.Run()
	go b.Run()

	require.Eventually(t, func() bool {
		da, ok := a.Distance('B')
		db, ok2 := b.Distance('A')
		exchanged := a.Metrics()["dvrouted.packets_received"] > 0 &&
			b.Metrics()["dvrouted.packets_received"] > 0
		return ok && ok2 && exchanged && da == 4 && db == 4
	}, 10*time.Second, 200*time.Millisecond)
}

// TestThreeNodeRelay exercises the second seed scenario: A and C are
// not adjacent, but both are adjacent to B, so A must learn a route to
// C (and vice versa) purely from B's broadcasts.
func TestThreeNodeRelay(t *testing.T) {
	if testing.Short() {
		t.Skip("exercises real broadcast timers")
	}

	dir := t.TempDir()
	nodeFile := writeConfig(t, dir, "nodes.conf",
		"A 127.0.0.1 19230\nB 127.0.0.1 19231\nC 127.0.0.1 19232\n")
	costFile := writeConfig(t, dir, "costs.conf", "A B 2\nB C 3\n")

	a, err := New(Options{LocalName: 'A', NodeFile: nodeFile, CostFile: costFile})
	require.NoError(t, err)
	defer a.Stop()

	b, err := New(Options{LocalName: 'B', NodeFile: nodeFile, CostFile: costFile})
	require.NoError(t, err)
	defer b.Stop()

	c, err := New(Options{LocalName: 'C', NodeFile: nodeFile, CostFile: costFile})
	require.NoError(t, err)
	defer c.Stop()

	go a.Run()
	go b.Run()
	go c.Run()

	require.Eventually(t, func() bool {
		dac, ok := a.Distance('C')
		hop, ok2 := a.NextHop('C')
		dca, ok3 := c.Distance('A')
		hopC, ok4 := c.NextHop('A')
		return ok && ok2 && ok3 && ok4 &&
			dac == 5 && hop == 'B' && dca == 5 && hopC == 'B'
	}, 15*time.Second, 200*time.Millisecond)
}
