package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Model    ModelConfig
	Upload   UploadConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type ModelConfig struct {
	ArtifactsPath string
	TopK          int
	ForestSize    int
	MaxVocabulary int
	MaxTreeDepth  int
	MinLeafSize   int
	Seed          int64
}

type UploadConfig struct {
	MaxFileSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "career_predictor"),
		},
		Model: ModelConfig{
			ArtifactsPath: getEnv("MODEL_ARTIFACTS_PATH", "./model_artifacts"),
			TopK:          getEnvAsInt("PREDICT_TOP_K", 3),
			ForestSize:    getEnvAsInt("FOREST_SIZE", 100),
			MaxVocabulary: getEnvAsInt("SKILLS_MAX_FEATURES", 50),
			MaxTreeDepth:  getEnvAsInt("FOREST_MAX_DEPTH", 16),
			MinLeafSize:   getEnvAsInt("FOREST_MIN_LEAF", 1),
			Seed:          getEnvAsInt64("FOREST_SEED", 42),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 10485760),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}
