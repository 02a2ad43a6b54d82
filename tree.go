package huffcode

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// node is one slot in the scratch tree arena.  Leaves have leaf >= 0 and no
// children; internal nodes have leaf < 0 and exactly two children.
type node struct {
	weight uint64
	left   int32
	right  int32
	leaf   int32
}

func (n node) isLeaf() bool {
	return n.leaf >= 0
}

// tree is the scratch Huffman tree.  It lives only as long as it takes to
// derive a Table from it.
type tree struct {
	nodes []node
	root  int32
}

// buildTree runs the greedy Huffman merge over leaves whose weights are
// given in leaf order.  Leaf i occupies arena slot i, and each merged node
// takes the next free slot, so ties between equal weights are broken by
// arena position: earlier leaves first, then merged nodes in creation order.
//
// len(weights) must be at least 1.
func buildTree(weights []uint64) tree {
	numLeaves := len(weights)
	assert.Assertf(numLeaves > 0, "buildTree called with %d leaves", numLeaves)

	nodes := make([]node, 0, 2*numLeaves-1)
	for index, w := range weights {
		nodes = append(nodes, node{weight: w, left: -1, right: -1, leaf: int32(index)})
	}

	// Step 1: build a minheap over every leaf.

	h := nodeHeap{nodes: nodes, list: make([]int32, numLeaves)}
	for index := range h.list {
		h.list[index] = int32(index)
	}
	h.Init()

	// Step 2: pop the two lightest nodes, merge them under a new internal
	// node (first popped on the left), and push the merged node back.

	for h.Len() > 1 {
		a := heap.Pop(&h).(int32)
		b := heap.Pop(&h).(int32)

		merged := node{
			weight: h.nodes[a].weight + h.nodes[b].weight,
			left:   a,
			right:  b,
			leaf:   -1,
		}
		h.nodes = append(h.nodes, merged)
		heap.Push(&h, int32(len(h.nodes)-1))
	}

	root := heap.Pop(&h).(int32)
	return tree{nodes: h.nodes, root: root}
}

// walk visits every leaf of the tree in depth-first order, left before
// right, passing the leaf index and the path from the root.  The path slice
// is reused between calls; visit must copy it if it needs to keep it.
func (t tree) walk(visit func(leaf int32, path []byte)) {
	rootNode := t.nodes[t.root]
	if rootNode.isLeaf() {
		visit(rootNode.leaf, nil)
		return
	}

	// We use stackItem.x to keep track of where we are in the walk:
	//   x=0 → We just arrived at this node
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children
	//
	// len(path) always equals len(stack)-1, since the root has no bit.

	type stackItem struct {
		index int32
		x     byte
	}

	depthHint := log2int(len(t.nodes))
	stack := make([]stackItem, 0, depthHint)
	path := make([]byte, 0, depthHint)

	processChild := func(child int32, bit byte) {
		path = append(path, bit)
		if n := t.nodes[child]; n.isLeaf() {
			visit(n.leaf, path)
			path = path[:len(path)-1]
			return
		}
		stack = append(stack, stackItem{index: child})
	}

	stack = append(stack, stackItem{index: t.root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			processChild(t.nodes[top.index].left, '0')
		case 1:
			processChild(t.nodes[top.index].right, '1')
		case 2:
			stack = stack[:len(stack)-1]
			if len(path) != 0 {
				path = path[:len(path)-1]
			}
		}
	}
}

// checkWeights asserts that every internal node weighs exactly as much as
// its two children combined.
func (t tree) checkWeights() {
	for index, n := range t.nodes {
		if n.isLeaf() {
			continue
		}
		sum := t.nodes[n.left].weight + t.nodes[n.right].weight
		assert.Assertf(n.weight == sum, "node %d has weight %d, but its children sum to %d", index, n.weight, sum)
	}
}

// type nodeHeap {{{

type nodeHeap struct {
	nodes []node
	list  []int32
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	aw, bw := h.nodes[a].weight, h.nodes[b].weight
	if aw != bw {
		return aw < bw
	}
	return a < b
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(int32))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
