package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"globetrotter-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore keeps users and refresh token hashes in memory
type fakeUserStore struct {
	users  map[string]*models.User
	tokens map[string]string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}, tokens: map[string]string{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", pgx.ErrNoRows)
}

func (f *fakeUserStore) GetByRefreshToken(_ context.Context, tokenHash string) (*models.User, error) {
	for id, hash := range f.tokens {
		if hash == tokenHash {
			return f.users[id], nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", pgx.ErrNoRows)
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (f *fakeUserStore) SetRefreshToken(_ context.Context, userID, tokenHash string, _ time.Time) error {
	f.tokens[userID] = tokenHash
	return nil
}

func (f *fakeUserStore) ClearRefreshToken(_ context.Context, userID string) error {
	delete(f.tokens, userID)
	return nil
}

func newTestAuthService(accessTTL time.Duration) *AuthService {
	return NewAuthService(nil, "test-secret", accessTTL, 7*24*time.Hour)
}

func TestJWTRoundTrip(t *testing.T) {
	svc := newTestAuthService(15 * time.Minute)

	token, err := svc.GenerateJWT("user-1", models.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := svc.ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("Expected user id user-1, got %s", claims.UserID)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("Expected role %s, got %s", models.RoleAdmin, claims.Role)
	}
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	svc := newTestAuthService(-time.Minute)

	token, err := svc.GenerateJWT("user-1", models.RoleUser)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	if _, err := svc.ValidateJWT(token); err == nil {
		t.Error("Expected an error for an expired token")
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	signer := newTestAuthService(15 * time.Minute)
	token, err := signer.GenerateJWT("user-1", models.RoleUser)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	verifier := NewAuthService(nil, "another-secret", 15*time.Minute, 7*24*time.Hour)
	if _, err := verifier.ValidateJWT(token); err == nil {
		t.Error("Expected an error for a token signed with a different secret")
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(15 * time.Minute)
	if _, err := svc.ValidateJWT("not.a.token"); err == nil {
		t.Error("Expected an error for a malformed token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword failed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte("correct horse")); err != nil {
		t.Errorf("Expected the right password to verify: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte("wrong horse")); err == nil {
		t.Error("Expected the wrong password to fail verification")
	}
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("TokenAloneIdentifiesTheUser", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewAuthService(store, "test-secret", 15*time.Minute, 7*24*time.Hour)

		_, tokens, err := svc.Register(ctx, "alice@example.com", "long-password", "Alice")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		pair, err := svc.Refresh(ctx, tokens.RefreshToken)
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if pair.Token == "" || pair.RefreshToken == "" {
			t.Error("Expected a full token pair from refresh")
		}

		// Rotation: the old refresh token must stop working.
		if _, err := svc.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected the rotated-out token to be rejected, got %v", err)
		}
		if _, err := svc.Refresh(ctx, pair.RefreshToken); err != nil {
			t.Errorf("Expected the rotated-in token to work, got %v", err)
		}
	})

	t.Run("UnknownTokenIsRejected", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewAuthService(store, "test-secret", 15*time.Minute, 7*24*time.Hour)
		if _, err := svc.Refresh(ctx, "never-issued"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := svc.Refresh(ctx, ""); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials for an empty token, got %v", err)
		}
	})

	t.Run("BannedUserCannotRefresh", func(t *testing.T) {
		store := newFakeUserStore()
		svc := NewAuthService(store, "test-secret", 15*time.Minute, 7*24*time.Hour)

		user, tokens, err := svc.Register(ctx, "bob@example.com", "long-password", "Bob")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		store.users[user.ID].Status = models.StatusBanned

		if _, err := svc.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, ErrAccountBanned) {
			t.Errorf("Expected ErrAccountBanned, got %v", err)
		}
	})
}

func TestHashToken(t *testing.T) {
	a := hashToken("refresh-token")
	b := hashToken("refresh-token")
	if a != b {
		t.Error("Expected hashing to be deterministic")
	}
	if a == hashToken("other-token") {
		t.Error("Expected different tokens to hash differently")
	}
	if strings.Contains(a, "refresh-token") {
		t.Error("Expected the stored hash not to contain the raw token")
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	a, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generateRefreshToken failed: %v", err)
	}
	b, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generateRefreshToken failed: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("Expected a 64-char hex token, got %d chars", len(a))
	}
	if a == b {
		t.Error("Expected refresh tokens to be unique")
	}
}
