package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/storescouthq/storescout-backend/pkg/auth"
	"github.com/storescouthq/storescout-backend/pkg/auth/session"
	"github.com/storescouthq/storescout-backend/pkg/config"
	"github.com/storescouthq/storescout-backend/pkg/db/models"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
	"github.com/storescouthq/storescout-backend/pkg/security"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "storescout-test",
		ExpirationMinutes: 15,
	}
}

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubSessionManager struct {
	generated  []string
	revoked    []string
	rotateErr  error
	refresh    string
	nextID     string
	nextToken  string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	if provided != s.refresh {
		return "", "", session.ErrInvalidRefreshToken
	}
	return s.nextID, s.nextToken, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func seededUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Sam",
		PasswordHash: hash,
	}
}

func newAuthService(t *testing.T, repo userRepository, sessions sessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestLoginSuccess(t *testing.T) {
	repo := &stubUserRepo{user: seededUser(t, "sam@example.com", "correct horse")}
	sessions := &stubSessionManager{}
	svc := newAuthService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Sam@Example.com ",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User == nil || resp.User.Email != "sam@example.com" {
		t.Fatalf("unexpected user %+v", resp.User)
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.generated))
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != repo.user.ID {
		t.Fatalf("expected user id in claims")
	}
	if claims.ID != sessions.generated[0] {
		t.Fatal("jti should match the stored session id")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &stubUserRepo{user: seededUser(t, "sam@example.com", "correct horse")}
	svc := newAuthService(t, repo, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "sam@example.com",
		Password: "wrong",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(t, &stubUserRepo{}, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	userID := uuid.New()
	oldAccessID := "old-jti"
	accessToken, err := pkgAuth.MintAccessToken(testJWTConfig(), time.Now().Add(-time.Hour), pkgAuth.AccessTokenPayload{
		UserID: userID,
		JTI:    oldAccessID,
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	sessions := &stubSessionManager{
		refresh:   "the-refresh-token",
		nextID:    "new-jti",
		nextToken: "new-refresh-token",
	}
	svc := newAuthService(t, &stubUserRepo{}, sessions)

	pair, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "the-refresh-token",
	})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if pair.RefreshToken != "new-refresh-token" {
		t.Fatalf("unexpected refresh token %q", pair.RefreshToken)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.ID != "new-jti" || claims.UserID != userID {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestRefreshRejectsBadRefreshToken(t *testing.T) {
	accessToken, err := pkgAuth.MintAccessToken(testJWTConfig(), time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    "jti",
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	svc := newAuthService(t, &stubUserRepo{}, &stubSessionManager{refresh: "real-token"})

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "stolen-token",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessionManager{}
	svc := newAuthService(t, &stubUserRepo{}, sessions)

	if err := svc.Logout(context.Background(), "jti-1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "jti-1" {
		t.Fatalf("expected revoked session, got %v", sessions.revoked)
	}
}
