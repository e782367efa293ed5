package main

import (
	"context"
	"fmt"
	"log"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/carolinefzhang/selective-practice/workers/publisher/config"
	"github.com/carolinefzhang/selective-practice/workers/publisher/repositories"
	"github.com/carolinefzhang/selective-practice/workers/publisher/services"
)

const insertBatchSize = 100

func main() {
	log.Println("Publisher worker starting...")
	if err := godotenv.Load(".env.local"); err == nil {
		log.Println("Loaded environment from .env.local")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("publisher failed: %v", err)
	}
	log.Println("Publisher worker finished.")
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	log.Printf("Reading CSV file from: %s", cfg.InputCSV)
	reader := repositories.NewCSVReader(cfg.InputCSV)
	rows, err := reader.ReadRows()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to upload from %s", cfg.InputCSV)
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	s3Repo := repositories.NewS3Repository(awsCfg, cfg.AWSEndpointURL, cfg.PublicBaseURL)
	httpRepo := repositories.NewHTTPRepository()
	dbRepo := repositories.NewDBRepository(db, insertBatchSize)

	publisher := services.NewPublisherService(
		services.WithRehoster(services.NewRehostService(s3Repo, httpRepo, cfg.ImagesBucket)),
		services.WithQuestionStore(dbRepo),
	)

	inserted, err := publisher.Publish(ctx, rows)
	if err != nil {
		return err
	}
	log.Printf("Successfully inserted %d rows.", inserted)
	return nil
}
