package users

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storescouthq/storescout-backend/pkg/db/models"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
)

type stubRepo struct {
	user       *models.User
	findErr    error
	fields     map[string]any
	affected   int64
	updateErr  error
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.user, s.findErr
}

func (s *stubRepo) UpdateAccount(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	s.fields = fields
	return s.affected, s.updateErr
}

func newTestService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestUpdateAccountWritesNameAndEmail(t *testing.T) {
	repo := &stubRepo{
		user:     &models.User{ID: uuid.New(), Name: "Sam", Email: "sam@example.com"},
		affected: 1,
	}
	svc := newTestService(t, repo)

	dto, err := svc.UpdateAccount(context.Background(), repo.user.ID, UpdateAccountInput{
		Name:  "  Sam  ",
		Email: "Sam@Example.com",
	})
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if dto == nil {
		t.Fatal("expected user dto")
	}
	if repo.fields["name"] != "Sam" {
		t.Fatalf("expected trimmed name, got %v", repo.fields["name"])
	}
	if repo.fields["email"] != "sam@example.com" {
		t.Fatalf("expected lowercased email, got %v", repo.fields["email"])
	}
	if _, ok := repo.fields["photo"]; ok {
		t.Fatal("photo should not be written when not supplied")
	}
}

func TestUpdateAccountWritesPhotoWhenSupplied(t *testing.T) {
	repo := &stubRepo{
		user:     &models.User{ID: uuid.New()},
		affected: 1,
	}
	svc := newTestService(t, repo)

	photo := "/uploads/abc.png"
	if _, err := svc.UpdateAccount(context.Background(), repo.user.ID, UpdateAccountInput{
		Name:  "Sam",
		Email: "sam@example.com",
		Photo: &photo,
	}); err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if repo.fields["photo"] != photo {
		t.Fatalf("expected photo written, got %v", repo.fields["photo"])
	}
}

func TestUpdateAccountMissingUser(t *testing.T) {
	repo := &stubRepo{affected: 0}
	svc := newTestService(t, repo)

	_, err := svc.UpdateAccount(context.Background(), uuid.New(), UpdateAccountInput{
		Name:  "Sam",
		Email: "sam@example.com",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdateAccountEmailConflict(t *testing.T) {
	repo := &stubRepo{updateErr: errors.New(`duplicate key value violates unique constraint "users_email_key"`)}
	svc := newTestService(t, repo)

	_, err := svc.UpdateAccount(context.Background(), uuid.New(), UpdateAccountInput{
		Name:  "Sam",
		Email: "taken@example.com",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUpdateAccountValidation(t *testing.T) {
	cases := []UpdateAccountInput{
		{Name: "", Email: "sam@example.com"},
		{Name: "Sam", Email: ""},
		{Name: "Sam", Email: "not-an-email"},
		{Name: "Sam", Email: "foo@"},
		{Name: "Sam", Email: "@example.com"},
	}
	for _, input := range cases {
		repo := &stubRepo{affected: 1}
		svc := newTestService(t, repo)

		_, err := svc.UpdateAccount(context.Background(), uuid.New(), input)
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
		if repo.fields != nil {
			t.Fatalf("expected no write for %+v, repo received %v", input, repo.fields)
		}
	}
}

func TestMeNotFound(t *testing.T) {
	repo := &stubRepo{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo)

	_, err := svc.Me(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
