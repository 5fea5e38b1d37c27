package services

import (
	"sync/atomic"

	"edu2job/career-predictor/internal/ml"
)

// A ModelSnapshot is one immutable published (encoder, classifier) pair.
// Predictors read a snapshot once per request; retraining builds a fresh
// snapshot and publishes it wholesale, so a reader never observes the
// encoders of one training run with the classifier of another.
type ModelSnapshot struct {
	Version uint64
	Degree  *ml.LabelEncoder
	Branch  *ml.LabelEncoder
	Skills  *ml.Vectorizer
	Forest  *ml.Forest
}

// FeatureWidth is the row width this snapshot's classifier was fitted on.
func (s *ModelSnapshot) FeatureWidth() int {
	return ml.FeatureWidth(s.Skills.Width())
}

// A ModelStore owns the currently published snapshot. It replaces the
// process-global model state of earlier revisions: constructed once in main
// and injected into the predictor and trainer.
type ModelStore struct {
	current atomic.Pointer[ModelSnapshot]
}

func NewModelStore() *ModelStore {
	return &ModelStore{}
}

// Snapshot returns the published pair, or nil when nothing is trained yet.
func (s *ModelStore) Snapshot() *ModelSnapshot {
	return s.current.Load()
}

// Publish atomically swaps in a new pair.
func (s *ModelStore) Publish(snapshot *ModelSnapshot) {
	s.current.Store(snapshot)
}

// Version returns the version of the published pair, or 0 when none is.
func (s *ModelStore) Version() uint64 {
	if snap := s.current.Load(); snap != nil {
		return snap.Version
	}
	return 0
}
