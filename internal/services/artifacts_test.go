package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu2job/career-predictor/internal/ml"
)

func testSnapshot(t *testing.T, version uint64) *ModelSnapshot {
	t.Helper()

	vectorizer := ml.FitVectorizer([]string{"Python, Django", "IoT, C"}, 50)
	features := [][]float64{
		ml.AssembleFeatures(0, 0, 8.5, vectorizer.Transform("Python, Django")),
		ml.AssembleFeatures(0, 1, 7.2, vectorizer.Transform("IoT, C")),
	}
	forest, err := ml.TrainForest(features, []string{"Full Stack Developer", "Embedded Engineer"},
		ml.ForestConfig{NumTrees: 5, MaxDepth: 4, MinLeaf: 1, Seed: 42})
	require.NoError(t, err)

	return &ModelSnapshot{
		Version: version,
		Degree:  ml.FitLabelEncoder([]string{"B.Tech"}),
		Branch:  ml.FitLabelEncoder([]string{"CSE", "ECE"}),
		Skills:  vectorizer,
		Forest:  forest,
	}
}

func TestLoadPairMissing(t *testing.T) {
	store := NewArtifactStore(t.TempDir())

	snapshot, err := store.LoadPair()
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestWriteLoadPairRoundTrip(t *testing.T) {
	store := NewArtifactStore(t.TempDir())
	snapshot := testSnapshot(t, 1)

	require.NoError(t, store.WritePair(snapshot))

	loaded, err := store.LoadPair()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, snapshot.Version, loaded.Version)
	assert.Equal(t, snapshot.Forest.Labels, loaded.Forest.Labels)
	assert.Equal(t, snapshot.FeatureWidth(), loaded.FeatureWidth())
	assert.Equal(t, snapshot.Branch.Encode("ECE"), loaded.Branch.Encode("ECE"))
	assert.Equal(t, snapshot.Skills.Transform("Python"), loaded.Skills.Transform("Python"))

	row := ml.AssembleFeatures(0, 0, 8.0, loaded.Skills.Transform("Python"))
	assert.Equal(t, snapshot.Forest.Predict(row), loaded.Forest.Predict(row))
}

func TestWritePairReplacesPrevious(t *testing.T) {
	store := NewArtifactStore(t.TempDir())

	require.NoError(t, store.WritePair(testSnapshot(t, 1)))
	require.NoError(t, store.WritePair(testSnapshot(t, 2)))

	loaded, err := store.LoadPair()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, uint64(2), loaded.Version)
}
