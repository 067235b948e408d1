package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storescouthq/storescout-backend/pkg/db"
	"github.com/storescouthq/storescout-backend/pkg/db/models"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
)

var emailValidator = validator.New()

// ValidEmail reports whether the address passes the same email rule the HTTP
// layer enforces. Services re-check it so writes that skip the JSON decoder
// (multipart forms, internal callers) cannot persist a malformed address.
func ValidEmail(email string) bool {
	return emailValidator.Var(email, "required,email") == nil
}

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error)
}

// UpdateAccountInput captures the editable account fields. Name and email are
// always written; the photo is only touched when a new one was uploaded.
type UpdateAccountInput struct {
	Name  string
	Email string
	Photo *string
}

// Service exposes account operations.
type Service interface {
	Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, input UpdateAccountInput) (*UserDTO, error)
}

type service struct {
	repo usersRepository
}

// NewService builds the users service.
func NewService(repo usersRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}

func (s *service) UpdateAccount(ctx context.Context, userID uuid.UUID, input UpdateAccountInput) (*UserDTO, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !ValidEmail(email) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}

	fields := map[string]any{
		"name":  name,
		"email": email,
	}
	if input.Photo != nil {
		fields["photo"] = *input.Photo
	}

	affected, err := s.repo.UpdateAccount(ctx, userID, fields)
	if err != nil {
		if db.IsUniqueViolation(err, "users_email_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update account")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload user")
	}
	return FromModel(user), nil
}
