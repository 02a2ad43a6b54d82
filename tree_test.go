package huffcode

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectLeaves(t tree) map[int32]string {
	out := make(map[int32]string)
	t.walk(func(leaf int32, path []byte) {
		out[leaf] = string(path)
	})
	return out
}

func TestBuildTree_Shape(t *testing.T) {
	tr := buildTree([]uint64{5, 9, 12, 13, 16, 45})

	require.Len(t, tr.nodes, 11)
	assert.Equal(t, uint64(100), tr.nodes[tr.root].weight)

	expect := map[int32]string{
		0: "1100",
		1: "1101",
		2: "100",
		3: "101",
		4: "111",
		5: "0",
	}
	assert.Equal(t, expect, collectLeaves(tr))
}

func TestBuildTree_WeightConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		n := 2 + rng.Intn(200)
		weights := make([]uint64, n)
		var total uint64
		for i := range weights {
			weights[i] = uint64(1 + rng.Intn(1000))
			total += weights[i]
		}
		sort.Slice(weights, func(i, j int) bool { return weights[i] < weights[j] })

		tr := buildTree(weights)
		require.Len(t, tr.nodes, 2*n-1)
		assert.Equal(t, total, tr.nodes[tr.root].weight)

		for index, nd := range tr.nodes {
			if nd.isLeaf() {
				assert.Equal(t, weights[nd.leaf], nd.weight)
				continue
			}
			sum := tr.nodes[nd.left].weight + tr.nodes[nd.right].weight
			assert.Equalf(t, sum, nd.weight, "node %d", index)
		}
		assert.NotPanics(t, tr.checkWeights)

		leaves := collectLeaves(tr)
		assert.Len(t, leaves, n)
	}
}

func TestBuildTree_EqualWeights(t *testing.T) {
	// Four equal leaves form a balanced tree, merged in arena order.
	tr := buildTree([]uint64{1, 1, 1, 1})
	expect := map[int32]string{
		0: "00",
		1: "01",
		2: "10",
		3: "11",
	}
	assert.Equal(t, expect, collectLeaves(tr))
}

func TestBuildTree_SingleLeaf(t *testing.T) {
	tr := buildTree([]uint64{7})
	assert.Equal(t, map[int32]string{0: ""}, collectLeaves(tr))
}
