package rankings

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
)

type stubRepo struct {
	tags    []TagCountDTO
	tagsErr error
	top     []TopStoreDTO
	topErr  error
}

func (s *stubRepo) TagCounts(ctx context.Context) ([]TagCountDTO, error) {
	return s.tags, s.tagsErr
}

func (s *stubRepo) TopStores(ctx context.Context) ([]TopStoreDTO, error) {
	return s.top, s.topErr
}

func TestTagsCarriesActiveTag(t *testing.T) {
	repo := &stubRepo{tags: []TagCountDTO{{Tag: "coffee", Count: 3}, {Tag: "vegan", Count: 1}}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	page, err := svc.Tags(context.Background(), " coffee ")
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if page.Active != "coffee" {
		t.Fatalf("expected active tag trimmed, got %q", page.Active)
	}
	if len(page.Tags) != 2 || page.Tags[0].Tag != "coffee" {
		t.Fatalf("unexpected tag rows %+v", page.Tags)
	}
}

func TestTagsWrapsRepoError(t *testing.T) {
	svc, err := NewService(&stubRepo{tagsErr: errors.New("boom")})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Tags(context.Background(), "")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestTopStoresPassesThrough(t *testing.T) {
	repo := &stubRepo{top: []TopStoreDTO{{Name: "Best", Slug: "best", ReviewCount: 4, AverageRating: 4.5}}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	rows, err := svc.TopStores(context.Background())
	if err != nil {
		t.Fatalf("TopStores: %v", err)
	}
	if len(rows) != 1 || rows[0].Slug != "best" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil repo")
	}
}
