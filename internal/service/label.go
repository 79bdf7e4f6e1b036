package service

import (
	"context"

	"studiosync/internal/model"
	"studiosync/internal/repository"
)

// LabelService exposes the read-only label taxonomy.
type LabelService interface {
	List(ctx context.Context) ([]model.Label, error)
}

type labelService struct {
	labels repository.LabelRepository
}

// NewLabelService constructs a LabelService.
func NewLabelService(labels repository.LabelRepository) LabelService {
	return &labelService{labels: labels}
}

func (s *labelService) List(ctx context.Context) ([]model.Label, error) {
	return s.labels.List(ctx)
}
