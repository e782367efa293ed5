package repositories

import (
	"log"

	"gorm.io/gorm"

	"github.com/carolinefzhang/selective-practice/workers/publisher/models"
)

type DBRepository interface {
	BulkInsert(questions []models.Question) error
}

type PostgresDBRepository struct {
	DB        *gorm.DB
	BatchSize int
}

func NewDBRepository(db *gorm.DB, batchSize int) *PostgresDBRepository {
	if batchSize <= 0 {
		batchSize = 100 // Default
	}
	return &PostgresDBRepository{
		DB:        db,
		BatchSize: batchSize,
	}
}

func (repo *PostgresDBRepository) BulkInsert(questions []models.Question) error {
	if err := repo.DB.CreateInBatches(questions, repo.BatchSize).Error; err != nil {
		log.Printf("Error bulk inserting questions: %v", err)
		return err
	}
	return nil
}
