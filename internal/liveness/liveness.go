// Package liveness computes effective liveness over the element tree used
// by the batch refresher for pruning. A node is live when it is active, not
// deleted, and its parent (if any) is live. Nothing here is persisted; the
// walk is recomputed per batch run.
package liveness

import (
	"github.com/openplacard/nft-ingest/internal/store/schema"
)

// maxDepthDefault bounds the parent walk as a safety valve against cyclic
// parent references in corrupt trees
const maxDepthDefault = 10

// Tree is an in-memory index of element nodes with memoized liveness
type Tree struct {
	nodes    map[string]schema.ElementNode
	memo     map[string]bool
	maxDepth int
}

// NewTree builds a liveness tree from a node list. maxDepth <= 0 selects
// the default depth cap.
func NewTree(nodes []schema.ElementNode, maxDepth int) *Tree {
	if maxDepth <= 0 {
		maxDepth = maxDepthDefault
	}

	index := make(map[string]schema.ElementNode, len(nodes))
	for _, node := range nodes {
		index[node.ID] = node
	}

	return &Tree{
		nodes:    index,
		memo:     make(map[string]bool, len(nodes)),
		maxDepth: maxDepth,
	}
}

// IsLive reports the effective liveness of a node. Unknown nodes are live:
// a token without a resolvable tree entry is never pruned on missing data.
// Chains deeper than the depth cap are treated as live for the same reason.
func (t *Tree) IsLive(id string) bool {
	return t.isLive(id, 0)
}

func (t *Tree) isLive(id string, depth int) bool {
	if live, ok := t.memo[id]; ok {
		return live
	}
	if depth >= t.maxDepth {
		return true
	}

	node, ok := t.nodes[id]
	if !ok {
		return true
	}

	live := node.Active && !node.Deleted
	if live && node.ParentID != nil {
		live = t.isLive(*node.ParentID, depth+1)
	}

	t.memo[id] = live
	return live
}
