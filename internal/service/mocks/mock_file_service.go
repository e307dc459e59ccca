package mocks

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"

	"uploadapi/internal/model"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Field() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockFileService) Categories(ctx context.Context) []string {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockFileService) CreateCategory(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockFileService) Upload(ctx context.Context, category string, files []*multipart.FileHeader) ([]model.StoredFile, error) {
	args := m.Called(ctx, category, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StoredFile), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, category string) ([]model.StoredFile, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StoredFile), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, category, filename string) error {
	args := m.Called(ctx, category, filename)
	return args.Error(0)
}
