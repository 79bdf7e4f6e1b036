package mocks

import (
	"context"
	"io"

	"studiosync/internal/model"
	"studiosync/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, secret string) (*model.Identity, error) {
	args := m.Called(ctx, username, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Identity), args.Error(1)
}

func (m *MockAuthService) SetupPassword(ctx context.Context, userID, newSecret string) error {
	args := m.Called(ctx, userID, newSecret)
	return args.Error(0)
}

type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) Provision(ctx context.Context, companyName, vat, email, username string) (*service.ProvisionResult, error) {
	args := m.Called(ctx, companyName, vat, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProvisionResult), args.Error(1)
}

func (m *MockClientService) Update(ctx context.Context, id, companyName, vat, email string) (*model.Client, error) {
	args := m.Called(ctx, id, companyName, vat, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientService) List(ctx context.Context) ([]model.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, clientID string, r io.Reader, originalName string, contentType string, size int64) (*model.Document, error) {
	args := m.Called(ctx, clientID, r, originalName, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) ListByClient(ctx context.Context, clientID string) ([]model.Document, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.Document), args.Error(2)
}

func (m *MockDocumentService) UpdateLabel(ctx context.Context, id string, labelID *string) error {
	args := m.Called(ctx, id, labelID)
	return args.Error(0)
}

func (m *MockDocumentService) Delete(ctx context.Context, id, requesterUserID string) error {
	args := m.Called(ctx, id, requesterUserID)
	return args.Error(0)
}

type MockLabelService struct {
	mock.Mock
}

func (m *MockLabelService) List(ctx context.Context) ([]model.Label, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Label), args.Error(1)
}
