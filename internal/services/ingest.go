package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"edu2job/career-predictor/internal/models"
	"edu2job/career-predictor/internal/repositories"
)

// requiredColumns are the normalized header names a training CSV must carry.
var requiredColumns = []string{"degree", "branch", "cgpa", "skills", "job_role"}

func init() {
	// Column matching is case-insensitive and whitespace-tolerant.
	gocsv.SetHeaderNormalizer(func(header string) string {
		return strings.ToLower(strings.TrimSpace(header))
	})
}

// trainingRow keeps every column as a string so a malformed cgpa rejects
// that row instead of the whole file.
type trainingRow struct {
	Degree  string `csv:"degree"`
	Branch  string `csv:"branch"`
	CGPA    string `csv:"cgpa"`
	Skills  string `csv:"skills"`
	JobRole string `csv:"job_role"`
}

type IngestService interface {
	IngestCSV(r io.Reader) (*models.UploadTrainingDataResponse, error)
}

type ingestService struct {
	exampleRepo repositories.TrainingExampleRepository
}

func NewIngestService(exampleRepo repositories.TrainingExampleRepository) IngestService {
	return &ingestService{exampleRepo: exampleRepo}
}

// IngestCSV parses an uploaded training CSV into bulk_upload examples.
// A missing required column rejects the file; malformed rows are skipped.
func (s *ingestService) IngestCSV(r io.Reader) (*models.UploadTrainingDataResponse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	if err := checkColumns(data); err != nil {
		return nil, err
	}

	var rows []*trainingRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, newValidationError(fmt.Sprintf("Could not parse CSV file: %v", err))
	}

	var examples []models.TrainingExample
	var skipped int
	for _, row := range rows {
		example, ok := parseRow(row)
		if !ok {
			skipped++
			continue
		}
		examples = append(examples, example)
	}

	if err := s.exampleRepo.CreateBatch(examples); err != nil {
		return nil, fmt.Errorf("failed to store training examples: %w", err)
	}

	if skipped > 0 {
		log.Printf("⚠️  Skipped %d malformed rows during bulk upload\n", skipped)
	}

	return &models.UploadTrainingDataResponse{
		Message:  fmt.Sprintf("Added %d records successfully!", len(examples)),
		Ingested: len(examples),
		Skipped:  skipped,
	}, nil
}

func checkColumns(data []byte) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return newValidationError("CSV file is empty or has no header row.")
	}

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.ToLower(strings.TrimSpace(col))] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return newValidationError(fmt.Sprintf(
				"Missing columns. Required: %s", strings.Join(requiredColumns, ", ")))
		}
	}
	return nil
}

func parseRow(row *trainingRow) (models.TrainingExample, bool) {
	degree := strings.TrimSpace(row.Degree)
	branch := strings.TrimSpace(row.Branch)
	skills := strings.TrimSpace(row.Skills)
	jobRole := strings.TrimSpace(row.JobRole)
	if degree == "" || branch == "" || skills == "" || jobRole == "" {
		return models.TrainingExample{}, false
	}

	cgpa, err := strconv.ParseFloat(strings.TrimSpace(row.CGPA), 64)
	if err != nil || cgpa < 0.0 || cgpa > 10.0 {
		return models.TrainingExample{}, false
	}

	return models.TrainingExample{
		ID:      uuid.New(),
		Degree:  degree,
		Branch:  branch,
		CGPA:    cgpa,
		Skills:  skills,
		JobRole: jobRole,
		Source:  models.SourceBulkUpload,
	}, true
}
