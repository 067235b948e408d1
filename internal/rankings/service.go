package rankings

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
)

type rankingsRepository interface {
	TagCounts(ctx context.Context) ([]TagCountDTO, error)
	TopStores(ctx context.Context) ([]TopStoreDTO, error)
}

// Service exposes the ranking aggregations.
type Service interface {
	Tags(ctx context.Context, active string) (*TagsPageDTO, error)
	TopStores(ctx context.Context) ([]TopStoreDTO, error)
}

type service struct {
	repo rankingsRepository
}

// NewService builds a rankings service.
func NewService(repo rankingsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rankings repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Tags(ctx context.Context, active string) (*TagsPageDTO, error) {
	tags, err := s.repo.TagCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count tags")
	}
	return &TagsPageDTO{
		Tags:   tags,
		Active: strings.TrimSpace(active),
	}, nil
}

func (s *service) TopStores(ctx context.Context) ([]TopStoreDTO, error) {
	rows, err := s.repo.TopStores(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rank stores")
	}
	return rows, nil
}
