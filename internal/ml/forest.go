package ml

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

// DefaultForestConfig mirrors the training defaults the service was tuned
// with: 100 bagged trees, a fixed seed for reproducible refits.
var DefaultForestConfig = ForestConfig{
	NumTrees: 100,
	MaxDepth: 16,
	MinLeaf:  1,
	Seed:     42,
}

// ForestConfig holds the ensemble training knobs.
type ForestConfig struct {
	NumTrees int
	MaxDepth int
	MinLeaf  int
	Seed     int64
}

// A Forest is a bagged ensemble of decision trees producing a probability
// distribution over the label set fixed at fit time.
type Forest struct {
	// Trees is the list of fitted component trees.
	Trees []DecisionTree `json:"trees"`
	// Labels holds the class labels in distribution-index order.
	Labels []string `json:"labels"`
	// FeatureSize is the length of feature rows this forest accepts.
	FeatureSize int `json:"feature_size"`
}

// TrainForest fits a bagged ensemble over the feature rows and their labels.
// Each tree sees a bootstrap sample and considers a random sqrt-sized feature
// subset at every split.
func TrainForest(features [][]float64, labels []string, cfg ForestConfig) (*Forest, error) {
	if len(features) == 0 {
		return nil, errors.New("empty training set")
	}
	if len(features) != len(labels) {
		return nil, errors.New("feature rows and labels have different lengths")
	}
	width := len(features[0])
	for _, row := range features {
		if len(row) != width {
			return nil, errors.New("feature rows have inconsistent widths")
		}
	}
	if cfg.NumTrees <= 0 || cfg.MaxDepth <= 0 || cfg.MinLeaf <= 0 {
		return nil, errors.New("invalid forest configuration")
	}

	classes := uniqueSorted(labels)
	classIndex := make(map[string]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}
	encoded := make([]int, len(labels))
	for i, l := range labels {
		encoded[i] = classIndex[l]
	}

	mtry := int(math.Ceil(math.Sqrt(float64(width))))
	if mtry > width {
		mtry = width
	}

	forest := &Forest{
		Trees:       make([]DecisionTree, cfg.NumTrees),
		Labels:      classes,
		FeatureSize: width,
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	for t := 0; t < cfg.NumTrees; t++ {
		sample := make([]int, len(features))
		for i := range sample {
			sample[i] = rng.Intn(len(features))
		}
		forest.Trees[t] = trainTree(features, encoded, len(classes), sample, cfg.MaxDepth, cfg.MinLeaf, mtry, rng)
	}
	return forest, nil
}

// Predict averages the component tree distributions into one probability
// distribution over Labels.
func (f *Forest) Predict(x []float64) []float64 {
	dist := make([]float64, len(f.Labels))
	for i := range f.Trees {
		leaf := f.Trees[i].Evaluate(x)
		for j, p := range leaf {
			dist[j] += p
		}
	}
	n := float64(len(f.Trees))
	for j := range dist {
		dist[j] /= n
	}
	return dist
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
