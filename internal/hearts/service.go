package hearts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storescouthq/storescout-backend/internal/stores"
	"github.com/storescouthq/storescout-backend/pkg/db/models"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
)

type heartsRepository interface {
	Has(ctx context.Context, userID, storeID uuid.UUID) (bool, error)
	Add(ctx context.Context, userID, storeID uuid.UUID) error
	Remove(ctx context.Context, userID, storeID uuid.UUID) error
	ListStores(ctx context.Context, userID uuid.UUID, cursor string, limit int) (stores.StorePageDTO, error)
}

type storeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// ToggleResult reports the heart state after a toggle.
type ToggleResult struct {
	StoreID uuid.UUID `json:"store_id"`
	Hearted bool      `json:"hearted"`
}

// Service exposes heart operations.
type Service interface {
	Toggle(ctx context.Context, userID, storeID uuid.UUID) (*ToggleResult, error)
	ListHearted(ctx context.Context, userID uuid.UUID, cursor string, limit int) (stores.StorePageDTO, error)
}

type service struct {
	repo       heartsRepository
	storeRepo  storeFinder
}

// ServiceParams wires the hearts service dependencies.
type ServiceParams struct {
	Repo      heartsRepository
	StoreRepo storeFinder
}

// NewService builds a hearts service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("hearts repository required")
	}
	if params.StoreRepo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{
		repo:      params.Repo,
		storeRepo: params.StoreRepo,
	}, nil
}

// Toggle hearts the store for the user, or removes the heart when it already
// exists, and returns the resulting state.
func (s *service) Toggle(ctx context.Context, userID, storeID uuid.UUID) (*ToggleResult, error) {
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	hearted, err := s.repo.Has(ctx, userID, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check heart")
	}

	if hearted {
		if err := s.repo.Remove(ctx, userID, storeID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove heart")
		}
		return &ToggleResult{StoreID: storeID, Hearted: false}, nil
	}

	if err := s.repo.Add(ctx, userID, storeID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add heart")
	}
	return &ToggleResult{StoreID: storeID, Hearted: true}, nil
}

func (s *service) ListHearted(ctx context.Context, userID uuid.UUID, cursor string, limit int) (stores.StorePageDTO, error) {
	page, err := s.repo.ListStores(ctx, userID, cursor, limit)
	if err != nil {
		return stores.StorePageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list hearted stores")
	}
	return page, nil
}
