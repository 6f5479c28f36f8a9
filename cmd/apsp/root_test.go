package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/bspapsp/apsp"
	"github.com/katalvlaran/bspapsp/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sevenNode = "../../graph/testdata/7-node-example.cedge"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(context.Background())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootPrintsDistances(t *testing.T) {
	out, err := execute(t, "--graph", sevenNode)
	require.NoError(t, err)
	assert.Contains(t, out, "n=7 p=7 rounds=3")
	assert.Contains(t, out, "[0, 5, 2, 3, 6, 4, 3]")
}

func TestRootQuery(t *testing.T) {
	out, err := execute(t, "--graph", sevenNode, "--from", "0", "--to", "4")
	require.NoError(t, err)
	assert.Equal(t, "0 -> 4: distance 6\npath: 0 -> 2 -> 5 -> 1 -> 4\n", out)

	out, err = execute(t, "--graph", sevenNode, "--from", "4", "--to", "0")
	require.NoError(t, err)
	assert.Equal(t, "4 -> 0: no path\n", out)

	_, err = execute(t, "--graph", sevenNode, "--from", "0", "--to", "42")
	assert.ErrorIs(t, err, apsp.ErrVertexOutOfRange)

	_, err = execute(t, "--graph", sevenNode, "--from", "0")
	assert.ErrorIs(t, err, errQuery)
}

func TestRootStatsAndSnapshot(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "seven.msgpack")
	out, err := execute(t, "--graph", sevenNode, "--stats", "--snapshot", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "supersteps: 42\n")
	assert.Contains(t, out, "values row_broadcast: 147\n")

	f, err := os.Open(snap)
	require.NoError(t, err)
	defer f.Close()
	s, err := apsp.ReadSnapshot(f)
	require.NoError(t, err)
	d, err := s.Distance(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 6.0, d)
}

func TestRootStatsTopology(t *testing.T) {
	// Fox–Otto on 7×7: 147 broadcast values and 2058 northward values.
	// On a torus every northward value is one hop; on a mesh the 2×3×7×7
	// values leaving row 0 travel 6 hops instead.
	out, err := execute(t, "--graph", sevenNode, "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "hops: 2940\n")

	out, err = execute(t, "--graph", sevenNode, "--stats", "--topology", "mesh")
	require.NoError(t, err)
	assert.Contains(t, out, "hops: 4410\n")

	_, err = execute(t, "--graph", sevenNode, "--stats", "--topology", "ring")
	assert.ErrorIs(t, err, topology.ErrUnknownTopology)
}

func TestRootConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "apsp.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(strings.Join([]string{
		"graph: " + sevenNode,
		"grid: 2",
		"pad: true",
		"variant: generalised",
	}, "\n")), 0o600))

	out, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "n=7 p=2 rounds=3")
	assert.Contains(t, out, "[0, 5, 2, 3, 6, 4, 3]")

	// Flags override the file.
	out, err = execute(t, "--config", cfgPath, "--grid", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "n=7 p=1 rounds=3")
}

func TestRootErrors(t *testing.T) {
	_, err := execute(t)
	assert.ErrorIs(t, err, apsp.ErrConfiguration)

	_, err = execute(t, "--graph", sevenNode, "--variant", "cannon")
	assert.ErrorIs(t, err, apsp.ErrConfiguration)

	_, err = execute(t, "--graph", sevenNode, "--grid", "2")
	assert.ErrorIs(t, err, apsp.ErrConfiguration)

	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("grpah: x\n"), 0o600))
	_, err = execute(t, "--config", cfgPath)
	assert.Error(t, err)
}

func TestDecodeConfigEmpty(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, decodeConfig(strings.NewReader(""), &cfg))
	assert.Equal(t, defaultConfig(), cfg)
}
