package ml

import (
	"math/rand"
	"sort"
)

// A TreeNode represents a splitting decision of the form
// "x[FeatureIndex] < Threshold ?" in a decision tree.
type TreeNode struct {
	// FeatureIndex indicates which feature is used in this splitting decision
	FeatureIndex int `json:"feature_index"`
	// Threshold indicates the cutoff value between the left and right subtrees
	Threshold float64 `json:"threshold"`
	// LeftChild is the index of the node or leaf representing the left subtree
	LeftChild int `json:"left_child"`
	// LeftIsLeaf indicates whether the left subtree is a leaf
	LeftIsLeaf bool `json:"left_is_leaf"`
	// RightChild is the index of the node or leaf representing the right subtree
	RightChild int `json:"right_child"`
	// RightIsLeaf indicates whether the right subtree is a leaf
	RightIsLeaf bool `json:"right_is_leaf"`
}

// A DecisionTree maps a feature row to a probability distribution over the
// label set fixed at fit time. Nodes are stored flat; leaves hold class
// distributions.
type DecisionTree struct {
	// Nodes is a flat list of all internal nodes, root first. Empty when the
	// tree is a single leaf.
	Nodes []TreeNode `json:"nodes"`
	// Leaves holds the per-leaf class distribution, indexed by leaf id.
	Leaves [][]float64 `json:"leaves"`
	// FeatureSize is the length of feature rows processed by this tree.
	FeatureSize int `json:"feature_size"`
}

// Bin drops a feature row down the tree and returns the leaf id it ends up in.
func (t *DecisionTree) Bin(x []float64) int {
	if len(x) != t.FeatureSize {
		panic("feature row had incorrect length")
	}
	if len(t.Nodes) == 0 {
		return 0
	}
	cur := t.Nodes[0]
	for {
		if x[cur.FeatureIndex] < cur.Threshold {
			if cur.LeftIsLeaf {
				return cur.LeftChild
			}
			cur = t.Nodes[cur.LeftChild]
		} else {
			if cur.RightIsLeaf {
				return cur.RightChild
			}
			cur = t.Nodes[cur.RightChild]
		}
	}
}

// Evaluate returns the class distribution of the leaf the row falls into.
func (t *DecisionTree) Evaluate(x []float64) []float64 {
	return t.Leaves[t.Bin(x)]
}

type treeBuilder struct {
	features  [][]float64
	labels    []int
	numLabels int

	maxDepth int
	minLeaf  int
	mtry     int
	rng      *rand.Rand

	nodes  []TreeNode
	leaves [][]float64
}

func (b *treeBuilder) distribution(idxs []int) []float64 {
	dist := make([]float64, b.numLabels)
	for _, i := range idxs {
		dist[b.labels[i]]++
	}
	n := float64(len(idxs))
	for i := range dist {
		dist[i] /= n
	}
	return dist
}

func gini(dist []float64) float64 {
	impurity := 1.0
	for _, p := range dist {
		impurity -= p * p
	}
	return impurity
}

func isPure(dist []float64) bool {
	for _, p := range dist {
		if p > 0 && p < 1 {
			return false
		}
	}
	return true
}

// bestSplit searches a random subset of features for the split with the
// lowest weighted Gini impurity. ok is false when no split leaves at least
// minLeaf samples on each side.
func (b *treeBuilder) bestSplit(idxs []int) (feature int, threshold float64, ok bool) {
	numFeatures := len(b.features[0])
	candidates := b.rng.Perm(numFeatures)[:b.mtry]
	sort.Ints(candidates)

	bestImpurity := gini(b.distribution(idxs))
	for _, f := range candidates {
		values := make([]float64, 0, len(idxs))
		for _, i := range idxs {
			values = append(values, b.features[i][f])
		}
		sort.Float64s(values)

		for v := 1; v < len(values); v++ {
			if values[v] == values[v-1] {
				continue
			}
			t := (values[v] + values[v-1]) / 2

			leftCounts := make([]float64, b.numLabels)
			rightCounts := make([]float64, b.numLabels)
			var nLeft, nRight float64
			for _, i := range idxs {
				if b.features[i][f] < t {
					leftCounts[b.labels[i]]++
					nLeft++
				} else {
					rightCounts[b.labels[i]]++
					nRight++
				}
			}
			if int(nLeft) < b.minLeaf || int(nRight) < b.minLeaf {
				continue
			}
			for i := range leftCounts {
				leftCounts[i] /= nLeft
				rightCounts[i] /= nRight
			}

			n := nLeft + nRight
			impurity := nLeft/n*gini(leftCounts) + nRight/n*gini(rightCounts)
			if impurity < bestImpurity {
				bestImpurity = impurity
				feature = f
				threshold = t
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func (b *treeBuilder) addLeaf(idxs []int) int {
	b.leaves = append(b.leaves, b.distribution(idxs))
	return len(b.leaves) - 1
}

// build grows the subtree over idxs and returns the child index plus whether
// it is a leaf. Internal nodes are placed pre-order so the root sits at 0.
func (b *treeBuilder) build(idxs []int, depth int) (int, bool) {
	dist := b.distribution(idxs)
	if depth >= b.maxDepth || len(idxs) < 2*b.minLeaf || isPure(dist) {
		return b.addLeaf(idxs), true
	}

	feature, threshold, ok := b.bestSplit(idxs)
	if !ok {
		return b.addLeaf(idxs), true
	}

	var left, right []int
	for _, i := range idxs {
		if b.features[i][feature] < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	nodeIdx := len(b.nodes)
	b.nodes = append(b.nodes, TreeNode{})

	leftChild, leftIsLeaf := b.build(left, depth+1)
	rightChild, rightIsLeaf := b.build(right, depth+1)

	b.nodes[nodeIdx] = TreeNode{
		FeatureIndex: feature,
		Threshold:    threshold,
		LeftChild:    leftChild,
		LeftIsLeaf:   leftIsLeaf,
		RightChild:   rightChild,
		RightIsLeaf:  rightIsLeaf,
	}
	return nodeIdx, false
}

func trainTree(features [][]float64, labels []int, numLabels int, idxs []int, maxDepth, minLeaf, mtry int, rng *rand.Rand) DecisionTree {
	b := &treeBuilder{
		features:  features,
		labels:    labels,
		numLabels: numLabels,
		maxDepth:  maxDepth,
		minLeaf:   minLeaf,
		mtry:      mtry,
		rng:       rng,
	}
	b.build(idxs, 0)
	return DecisionTree{
		Nodes:       b.nodes,
		Leaves:      b.leaves,
		FeatureSize: len(features[0]),
	}
}
