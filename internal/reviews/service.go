package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storescouthq/storescout-backend/pkg/db/models"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
)

type reviewsRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]ReviewDTO, error)
}

type storeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service exposes review operations.
type Service interface {
	Create(ctx context.Context, authorID, storeID uuid.UUID, input CreateReviewInput) (*models.Review, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]ReviewDTO, error)
}

type service struct {
	repo      reviewsRepository
	storeRepo storeFinder
}

// ServiceParams wires the reviews service dependencies.
type ServiceParams struct {
	Repo      reviewsRepository
	StoreRepo storeFinder
}

// NewService builds a reviews service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	if params.StoreRepo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{
		repo:      params.Repo,
		storeRepo: params.StoreRepo,
	}, nil
}

func (s *service) Create(ctx context.Context, authorID, storeID uuid.UUID, input CreateReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	review := &models.Review{
		StoreID:  storeID,
		AuthorID: authorID,
		Text:     normalizeText(input.Text),
		Rating:   input.Rating,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return review, nil
}

func (s *service) ListByStore(ctx context.Context, storeID uuid.UUID) ([]ReviewDTO, error) {
	items, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return items, nil
}

func normalizeText(text *string) *string {
	if text == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*text)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
