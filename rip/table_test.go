package rip

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAddr(t *testing.T, s string) netip.AddrPort {
	t.Helper()
	a, err := netip.ParseAddrPort(s)
	require.NoError(t, err)
	return a
}

func TestNewNeighborInitialState(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	table := NewTable(Local{Name: 'A', Addr: mustAddr(t, "10.0.0.1:9000")})

	require.NoError(t, table.AddNeighbor('B', mustAddr(t, "10.0.0.2:9000"), now))

	i, ok := table.Lookup('B')
	require.True(t, ok)

	n := table.Get(i)
	assert.Equal(t, byte('B'), n.Name)
	assert.Equal(t, Infinity, n.Distance)
	assert.Equal(t, Infinity, n.InitialDistance)
	assert.False(t, n.Adjacent)
	assert.False(t, n.Connected)
	assert.Equal(t, NoNextHop, n.NextHop)
	assert.True(t, n.Alive, "a freshly added neighbor starts alive so the first packet isn't mistaken for a resurrection")
	assert.Equal(t, now, n.LastReceiveTime)
}

func TestLocalNodeIsNotInNeighborTable(t *testing.T) {
	table := NewTable(Local{Name: 'A'})
	require.NoError(t, table.AddNeighbor('B', netip.AddrPort{}, time.Now()))

	_, ok := table.Lookup('A')
	assert.False(t, ok, "the home node must never appear in its own neighbor table")
}

func TestAddNeighborRejectsSelfAndDuplicates(t *testing.T) {
	table := NewTable(Local{Name: 'A'})
	require.Error(t, table.AddNeighbor('A', netip.AddrPort{}, time.Now()))

	require.NoError(t, table.AddNeighbor('B', netip.AddrPort{}, time.Now()))
	require.Error(t, table.AddNeighbor('B', netip.AddrPort{}, time.Now()))
}

func TestAddNeighborCapacity(t *testing.T) {
	table := NewTable(Local{Name: '-'})
	names := "ABCDEFGHIJKLMNOPQRST" // 20 distinct names, at MaxNodes
	for i := 0; i < MaxNodes; i++ {
		require.NoError(t, table.AddNeighbor(names[i], netip.AddrPort{}, time.Now()))
	}
	require.Error(t, table.AddNeighbor('Z', netip.AddrPort{}, time.Now()), "21st neighbor must be rejected")
}

func TestSetAdjacentSeedsDirectCost(t *testing.T) {
	table := NewTable(Local{Name: 'A'})
	require.NoError(t, table.AddNeighbor('B', netip.AddrPort{}, time.Now()))

	require.NoError(t, table.SetAdjacent('B', 4))

	i, _ := table.Lookup('B')
	n := table.Get(i)
	assert.True(t, n.Adjacent)
	assert.True(t, n.Connected)
	assert.Equal(t, 4, n.InitialDistance)
	assert.Equal(t, 4, n.Distance)
	assert.Equal(t, byte('A'), n.NextHop)
}

func TestSetAdjacentUnknownNode(t *testing.T) {
	table := NewTable(Local{Name: 'A'})
	require.Error(t, table.SetAdjacent('Z', 4))
}

func TestSetAdjacentRejectsOutOfRangeCost(t *testing.T) {
	table := NewTable(Local{Name: 'A'})
	require.NoError(t, table.AddNeighbor('B', netip.AddrPort{}, time.Now()))
	require.Error(t, table.SetAdjacent('B', -1))
	require.Error(t, table.SetAdjacent('B', Infinity+1))
	require.NoError(t, table.SetAdjacent('B', Infinity))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, Infinity, Clamp(25))
	assert.Equal(t, Infinity, Clamp(Infinity))
	assert.Equal(t, 5, Clamp(5))
	assert.Equal(t, 0, Clamp(-3))
}

func TestNeighborsPreserveFileOrder(t *testing.T) {
	table := NewTable(Local{Name: 'A'})
	order := []byte{'D', 'B', 'C'}
	for _, n := range order {
		require.NoError(t, table.AddNeighbor(n, netip.AddrPort{}, time.Now()))
	}

	var got []byte
	for _, n := range table.Neighbors() {
		got = append(got, n.Name)
	}
	assert.Equal(t, order, got)
}
