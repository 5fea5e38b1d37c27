package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu2job/career-predictor/internal/models"
)

func TestIngestCSV(t *testing.T) {
	csvData := strings.Join([]string{
		" Degree ,BRANCH,cgpa,Skills,job_role",
		"B.Tech,CSE,8.5,\"Python, Django\",Full Stack Developer",
		"B.Tech,ECE,7.2,\"IoT, C\",Embedded Engineer",
	}, "\n")

	repo := &fakeExampleRepo{}
	ingest := NewIngestService(repo)

	result, err := ingest.IngestCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Ingested)
	assert.Zero(t, result.Skipped)

	stored, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "B.Tech", stored[0].Degree)
	assert.Equal(t, "Python, Django", stored[0].Skills)
	assert.Equal(t, models.SourceBulkUpload, stored[0].Source)
	assert.Equal(t, 7.2, stored[1].CGPA)
}

func TestIngestCSVSkipsMalformedRows(t *testing.T) {
	csvData := strings.Join([]string{
		"degree,branch,cgpa,skills,job_role",
		"B.Tech,CSE,8.5,\"Python, Django\",Full Stack Developer",
		"B.Sc,Maths,not-a-number,\"Statistics, R\",Data Analyst",
		"MCA,Computer Applications,11.2,\"Java, SQL\",Java Developer",
		"B.Com,,8.0,\"Accounting, Tally\",Accountant",
		"M.Tech,CSE,8.8,\"Machine Learning, Python\",AI/ML Engineer",
	}, "\n")

	repo := &fakeExampleRepo{}
	ingest := NewIngestService(repo)

	result, err := ingest.IngestCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	// Non-numeric cgpa, out-of-range cgpa and a blank branch are skipped.
	assert.Equal(t, 2, result.Ingested)
	assert.Equal(t, 3, result.Skipped)

	stored, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Full Stack Developer", stored[0].JobRole)
	assert.Equal(t, "AI/ML Engineer", stored[1].JobRole)
}

func TestIngestCSVMissingColumn(t *testing.T) {
	csvData := strings.Join([]string{
		"degree,branch,cgpa,skills",
		"B.Tech,CSE,8.5,\"Python, Django\"",
	}, "\n")

	repo := &fakeExampleRepo{}
	ingest := NewIngestService(repo)

	_, err := ingest.IngestCSV(strings.NewReader(csvData))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "Missing columns")

	count, _ := repo.CountAll()
	assert.Zero(t, count)
}

func TestIngestCSVEmptyFile(t *testing.T) {
	repo := &fakeExampleRepo{}
	ingest := NewIngestService(repo)

	_, err := ingest.IngestCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
