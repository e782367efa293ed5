package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/carolinefzhang/selective-practice/workers/publisher/models"
)

// Mocks

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) UploadBytes(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	args := m.Called(ctx, bucket, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) PublicURL(bucket, key string) string {
	args := m.Called(bucket, key)
	return args.String(0)
}

type MockImageDownloader struct {
	mock.Mock
}

func (m *MockImageDownloader) DownloadImage(url string) ([]byte, string, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type MockRehoster struct {
	mock.Mock
}

func (m *MockRehoster) Rehost(ctx context.Context, url string) (string, bool) {
	args := m.Called(ctx, url)
	return args.String(0), args.Bool(1)
}

type MockQuestionStore struct {
	mock.Mock
	Inserted []models.Question
}

func (m *MockQuestionStore) BulkInsert(questions []models.Question) error {
	m.Inserted = questions
	args := m.Called(questions)
	return args.Error(0)
}
