package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storescouthq/storescout-backend/pkg/db"
	"github.com/storescouthq/storescout-backend/pkg/db/models"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
)

type storeRepository interface {
	slugMatcher
	CreateWithTx(tx *gorm.DB, store *models.Store) error
	UpdateWithTx(tx *gorm.DB, store *models.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindBySlug(ctx context.Context, slug string) (*models.Store, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Store, error)
	List(ctx context.Context, tag, cursor string, limit int) (StorePageDTO, error)
	Search(ctx context.Context, query string) ([]models.Store, error)
	Near(ctx context.Context, lat, lng float64) ([]models.Store, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes store operations.
type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, input CreateStoreInput) (*StoreDTO, error)
	Update(ctx context.Context, userID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	GetBySlug(ctx context.Context, slug string) (*StoreDTO, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]StoreDTO, error)
	List(ctx context.Context, tag, cursor string, limit int) (StorePageDTO, error)
	Search(ctx context.Context, query string) ([]StoreDTO, error)
	Near(ctx context.Context, lat, lng float64) ([]StoreDTO, error)
}

type service struct {
	repo storeRepository
	tx   txRunner
}

// ServiceParams wires the store service dependencies.
type ServiceParams struct {
	Repo storeRepository
	Tx   txRunner
}

// NewService builds a store service with the provided repositories.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo: params.Repo,
		tx:   params.Tx,
	}, nil
}

func (s *service) Create(ctx context.Context, authorID uuid.UUID, input CreateStoreInput) (*StoreDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	if authorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author is required")
	}

	input.Name = name
	store := input.toModel(authorID)

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		slugValue, err := resolveSlug(tx, s.repo, MakeSlug(name))
		if err != nil {
			return err
		}
		store.Slug = slugValue
		return s.repo.CreateWithTx(tx, store)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "stores_slug_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a store with that slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}

	return FromModel(store), nil
}

func (s *service) Update(ctx context.Context, userID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	if store.AuthorID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you must own a store in order to edit it")
	}

	nameChanged := false
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name cannot be empty")
		}
		if trimmed != store.Name {
			store.Name = trimmed
			nameChanged = true
		}
	}
	if input.Description != nil {
		store.Description = cloneStringPtr(input.Description)
	}
	if input.Tags != nil {
		store.Tags = cloneTags(*input.Tags)
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	if input.Lat != nil {
		store.Lat = *input.Lat
	}
	if input.Lng != nil {
		store.Lng = *input.Lng
	}
	if input.Photo != nil {
		store.Photo = cloneStringPtr(input.Photo)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if nameChanged {
			slugValue, err := resolveSlug(tx, s.repo, MakeSlug(store.Name))
			if err != nil {
				return err
			}
			store.Slug = slugValue
		}
		return s.repo.UpdateWithTx(tx, store)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "stores_slug_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a store with that slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}

	return FromModel(store), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return FromModel(store), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*StoreDTO, error) {
	store, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return FromModel(store), nil
}

func (s *service) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]StoreDTO, error) {
	records, err := s.repo.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores by author")
	}
	return toDTOs(records), nil
}

func (s *service) List(ctx context.Context, tag, cursor string, limit int) (StorePageDTO, error) {
	page, err := s.repo.List(ctx, strings.TrimSpace(tag), cursor, limit)
	if err != nil {
		return StorePageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	return page, nil
}

func (s *service) Search(ctx context.Context, query string) ([]StoreDTO, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	records, err := s.repo.Search(ctx, trimmed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search stores")
	}
	return toDTOs(records), nil
}

func (s *service) Near(ctx context.Context, lat, lng float64) ([]StoreDTO, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid coordinates")
	}
	records, err := s.repo.Near(ctx, lat, lng)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find stores near point")
	}
	return toDTOs(records), nil
}

func toDTOs(records []models.Store) []StoreDTO {
	items := make([]StoreDTO, 0, len(records))
	for i := range records {
		items = append(items, *FromModel(&records[i]))
	}
	return items
}
