package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Radpid/radGPT/pkg/common/models"
	"github.com/google/uuid"
)

func testManager(t *testing.T) *JWTManager {
	t.Helper()
	manager, err := NewJWTManager("unit-test-secret-key", "radgpt", "radgpt-api", 30*time.Minute)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return manager
}

func TestJWTRoundTrip(t *testing.T) {
	manager := testManager(t)
	user := models.User{
		ID:    uuid.New(),
		Email: "dr.schmidt@klinik.de",
		Role:  "clinician",
	}

	token, err := manager.IssueToken(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims, err := manager.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if claims.Email != user.Email || claims.Role != user.Role {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "radgpt" || claims.Audience != "radgpt-api" {
		t.Fatalf("unexpected issuer/audience: %+v", claims)
	}
}

func TestJWTExpiry(t *testing.T) {
	manager := testManager(t)

	issued := time.Now()
	manager.nowFunc = func() time.Time { return issued }
	token, err := manager.IssueToken(models.User{ID: uuid.New()})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	manager.nowFunc = func() time.Time { return issued.Add(31 * time.Minute) }
	if _, err := manager.ValidateToken(context.Background(), token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestJWTTamperedSignature(t *testing.T) {
	manager := testManager(t)
	token, err := manager.IssueToken(models.User{ID: uuid.New()})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]
	if _, err := manager.ValidateToken(context.Background(), tampered); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestJWTWrongIssuer(t *testing.T) {
	issuing, err := NewJWTManager("unit-test-secret-key", "other-service", "radgpt-api", time.Minute)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	token, err := issuing.IssueToken(models.User{ID: uuid.New()})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := testManager(t).ValidateToken(context.Background(), token); err == nil {
		t.Fatal("expected token from wrong issuer to be rejected")
	}
}

func TestJWTShortSecretRejected(t *testing.T) {
	if _, err := NewJWTManager("short", "radgpt", "radgpt-api", time.Minute); err == nil {
		t.Fatal("expected short secret to be rejected")
	}
}
