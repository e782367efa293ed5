package config

import (
	"os"

	"github.com/carolinefzhang/selective-practice/workers/publisher/domain"
)

type Config struct {
	AWSEndpointURL string
	AWSRegion      string
	ImagesBucket   string
	// PublicBaseURL is the address objects are publicly served from. When
	// empty the URL is derived from the endpoint (path-style) or the bucket's
	// standard S3 hostname.
	PublicBaseURL string
	DatabaseDSN   string
	InputCSV      string
}

func Load() (*Config, error) {
	cfg := &Config{
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		ImagesBucket:   getEnv("IMAGES_BUCKET", "question-images"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", ""),
		DatabaseDSN:    os.Getenv("DATABASE_URL"),
		InputCSV:       getEnv("INPUT_CSV", "scraped_data.csv"),
	}

	if cfg.DatabaseDSN == "" {
		return nil, &domain.ConfigurationError{Name: "DATABASE_URL"}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
