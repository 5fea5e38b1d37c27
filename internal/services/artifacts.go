package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"edu2job/career-predictor/internal/ml"
)

const (
	currentDirName     = "current"
	encoderFileName    = "encoder.json"
	classifierFileName = "classifier.json"
)

// encoderArtifact and classifierArtifact are the two co-versioned blobs.
// Both embed the pair version; loading rejects a mismatched pair.
type encoderArtifact struct {
	Version uint64           `json:"version"`
	Degree  *ml.LabelEncoder `json:"degree"`
	Branch  *ml.LabelEncoder `json:"branch"`
	Skills  *ml.Vectorizer   `json:"skills"`
}

type classifierArtifact struct {
	Version uint64     `json:"version"`
	Forest  *ml.Forest `json:"forest"`
}

type ArtifactStore interface {
	EnsureRoot() error
	WritePair(snapshot *ModelSnapshot) error
	LoadPair() (*ModelSnapshot, error)
}

type artifactStore struct {
	rootPath string
}

func NewArtifactStore(rootPath string) ArtifactStore {
	return &artifactStore{rootPath: rootPath}
}

func (s *artifactStore) EnsureRoot() error {
	if err := os.MkdirAll(s.rootPath, 0755); err != nil {
		return fmt.Errorf("failed to create artifacts directory: %w", err)
	}
	return nil
}

// WritePair persists a snapshot as the canonical pair. Both blobs are
// written into a staging directory first and swapped in with renames, so a
// crash mid-write never leaves a mismatched pair at the current location.
func (s *artifactStore) WritePair(snapshot *ModelSnapshot) error {
	if err := s.EnsureRoot(); err != nil {
		return err
	}

	stagingPath := filepath.Join(s.rootPath, fmt.Sprintf(".staging_%s", uuid.New().String()))
	if err := os.MkdirAll(stagingPath, 0755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	encoder := encoderArtifact{
		Version: snapshot.Version,
		Degree:  snapshot.Degree,
		Branch:  snapshot.Branch,
		Skills:  snapshot.Skills,
	}
	classifier := classifierArtifact{
		Version: snapshot.Version,
		Forest:  snapshot.Forest,
	}

	if err := writeJSON(filepath.Join(stagingPath, encoderFileName), encoder); err != nil {
		os.RemoveAll(stagingPath)
		return fmt.Errorf("failed to write encoder artifact: %w", err)
	}
	if err := writeJSON(filepath.Join(stagingPath, classifierFileName), classifier); err != nil {
		os.RemoveAll(stagingPath)
		return fmt.Errorf("failed to write classifier artifact: %w", err)
	}

	currentPath := filepath.Join(s.rootPath, currentDirName)
	retiredPath := filepath.Join(s.rootPath, fmt.Sprintf(".retired_%s", uuid.New().String()))
	if _, err := os.Stat(currentPath); err == nil {
		if err := os.Rename(currentPath, retiredPath); err != nil {
			os.RemoveAll(stagingPath)
			return fmt.Errorf("failed to retire current artifacts: %w", err)
		}
	}
	if err := os.Rename(stagingPath, currentPath); err != nil {
		// Best effort: put the retired pair back so the store stays loadable.
		os.Rename(retiredPath, currentPath)
		os.RemoveAll(stagingPath)
		return fmt.Errorf("failed to publish artifacts: %w", err)
	}
	os.RemoveAll(retiredPath)

	return nil
}

// LoadPair reads the canonical pair. A missing pair is not an error: the
// model is simply unavailable until the first retrain.
func (s *artifactStore) LoadPair() (*ModelSnapshot, error) {
	currentPath := filepath.Join(s.rootPath, currentDirName)

	var encoder encoderArtifact
	if err := readJSON(filepath.Join(currentPath, encoderFileName), &encoder); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load encoder artifact: %w", err)
	}

	var classifier classifierArtifact
	if err := readJSON(filepath.Join(currentPath, classifierFileName), &classifier); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load classifier artifact: %w", err)
	}

	if encoder.Version != classifier.Version {
		return nil, fmt.Errorf("artifact version mismatch: encoder=%d classifier=%d", encoder.Version, classifier.Version)
	}
	if encoder.Degree == nil || encoder.Branch == nil || encoder.Skills == nil || classifier.Forest == nil {
		return nil, fmt.Errorf("artifact pair is incomplete")
	}

	return &ModelSnapshot{
		Version: encoder.Version,
		Degree:  encoder.Degree,
		Branch:  encoder.Branch,
		Skills:  encoder.Skills,
		Forest:  classifier.Forest,
	}, nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(v); err != nil {
		return err
	}
	return f.Sync()
}

func readJSON(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(v)
}
