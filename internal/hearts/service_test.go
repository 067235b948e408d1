package hearts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storescouthq/storescout-backend/internal/stores"
	"github.com/storescouthq/storescout-backend/pkg/db/models"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
)

type stubHeartsRepo struct {
	hearted map[uuid.UUID]bool
	page    stores.StorePageDTO
}

func newStubHeartsRepo() *stubHeartsRepo {
	return &stubHeartsRepo{hearted: make(map[uuid.UUID]bool)}
}

func (s *stubHeartsRepo) Has(ctx context.Context, userID, storeID uuid.UUID) (bool, error) {
	return s.hearted[storeID], nil
}

func (s *stubHeartsRepo) Add(ctx context.Context, userID, storeID uuid.UUID) error {
	s.hearted[storeID] = true
	return nil
}

func (s *stubHeartsRepo) Remove(ctx context.Context, userID, storeID uuid.UUID) error {
	delete(s.hearted, storeID)
	return nil
}

func (s *stubHeartsRepo) ListStores(ctx context.Context, userID uuid.UUID, cursor string, limit int) (stores.StorePageDTO, error) {
	return s.page, nil
}

type stubStoreFinder struct {
	store *models.Store
	err   error
}

func (s *stubStoreFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	return s.store, s.err
}

func newTestService(t *testing.T, repo *stubHeartsRepo, finder *stubStoreFinder) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, StoreRepo: finder})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestToggleAddsThenRemoves(t *testing.T) {
	storeID := uuid.New()
	userID := uuid.New()
	repo := newStubHeartsRepo()
	svc := newTestService(t, repo, &stubStoreFinder{store: &models.Store{ID: storeID}})

	result, err := svc.Toggle(context.Background(), userID, storeID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !result.Hearted {
		t.Fatal("expected heart added")
	}
	if !repo.hearted[storeID] {
		t.Fatal("expected repo to record the heart")
	}

	result, err = svc.Toggle(context.Background(), userID, storeID)
	if err != nil {
		t.Fatalf("Toggle second: %v", err)
	}
	if result.Hearted {
		t.Fatal("expected heart removed")
	}
	if repo.hearted[storeID] {
		t.Fatal("expected repo heart cleared")
	}
}

func TestToggleUnknownStore(t *testing.T) {
	svc := newTestService(t, newStubHeartsRepo(), &stubStoreFinder{err: gorm.ErrRecordNotFound})

	_, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestListHeartedPassesThrough(t *testing.T) {
	repo := newStubHeartsRepo()
	repo.page = stores.StorePageDTO{Items: []stores.StoreDTO{{Name: "Fav"}}}
	svc := newTestService(t, repo, &stubStoreFinder{store: &models.Store{}})

	page, err := svc.ListHearted(context.Background(), uuid.New(), "", 10)
	if err != nil {
		t.Fatalf("ListHearted: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Fav" {
		t.Fatalf("unexpected page %+v", page)
	}
}
