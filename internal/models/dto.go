package models

// ProfileInput is the raw prediction request body. CGPA arrives as a string
// so that "not numeric" can be reported separately from "out of range".
type ProfileInput struct {
	HighestDegree string `json:"highest_degree"`
	Branch        string `json:"branch"`
	CGPA          string `json:"cgpa"`
	Skills        string `json:"skills"`
}

type RoleScore struct {
	Role  string  `json:"role"`
	Score float64 `json:"score"`
}

type PredictionResponse struct {
	PredictedRole   string      `json:"predicted_role"`
	ConfidenceScore float64     `json:"confidence_score"`
	Alternatives    []RoleScore `json:"alternatives"`
	ModelVersion    uint64      `json:"model_version"`
}

type RetrainResponse struct {
	Message      string `json:"message"`
	ModelVersion uint64 `json:"model_version"`
	ExampleCount int    `json:"example_count"`
}

type UploadTrainingDataResponse struct {
	Message  string `json:"message"`
	Ingested int    `json:"ingested"`
	Skipped  int    `json:"skipped"`
}

type AdminStatsResponse struct {
	TotalPredictions  int64             `json:"total_predictions"`
	TotalExamples     int64             `json:"total_examples"`
	ModelVersion      uint64            `json:"model_version"`
	ModelLoaded       bool              `json:"model_loaded"`
	UnseenCategories  map[string]uint64 `json:"unseen_categories"`
	RecentPredictions []JobPrediction   `json:"recent_predictions"`
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type DegreeCount struct {
	Degree string `json:"degree"`
	Count  int64  `json:"count"`
}

type AdminAnalyticsResponse struct {
	RoleDemand         []RoleCount   `json:"role_demand"`
	DegreeDistribution []DegreeCount `json:"degree_distribution"`
}
