package token

import (
	"context"
	"testing"
	"time"

	"github.com/muss3ab/tsh/internal/models"

	"github.com/google/uuid"
)

func TestHSProvider_RoundTrip(t *testing.T) {
	p := NewHSProvider("test-secret", "tsh", "tsh-api")
	ctx := context.Background()
	userID := uuid.New()

	signed, jti, exp, err := p.SignAccess(ctx, userID, string(models.RoleAdmin), time.Hour)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if jti == "" {
		t.Fatalf("expected a token id")
	}

	claims, err := p.ParseAndValidateAccess(ctx, signed)
	if err != nil {
		t.Fatalf("ParseAndValidateAccess: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("subject mismatch: %s", claims.UserID)
	}
	if claims.Role != string(models.RoleAdmin) {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
	if claims.JTI != jti {
		t.Fatalf("jti mismatch: %s != %s", claims.JTI, jti)
	}
	if !claims.Exp.Equal(exp.Truncate(time.Second)) {
		t.Fatalf("exp mismatch: %v != %v", claims.Exp, exp)
	}
}

func TestHSProvider_RejectsForeignTokens(t *testing.T) {
	p := NewHSProvider("test-secret", "tsh", "tsh-api")
	ctx := context.Background()

	other := NewHSProvider("other-secret", "tsh", "tsh-api")
	signed, _, _, err := other.SignAccess(ctx, uuid.New(), "ROLE_CUSTOMER", time.Hour)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := p.ParseAndValidateAccess(ctx, signed); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}

	wrongAud := NewHSProvider("test-secret", "tsh", "someone-else")
	signed, _, _, err = wrongAud.SignAccess(ctx, uuid.New(), "ROLE_CUSTOMER", time.Hour)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := p.ParseAndValidateAccess(ctx, signed); err == nil {
		t.Fatalf("token for another audience must be rejected")
	}

	if _, err := p.ParseAndValidateAccess(ctx, "not-a-jwt"); err == nil {
		t.Fatalf("garbage must be rejected")
	}
}

func TestHSProvider_RejectsExpired(t *testing.T) {
	p := NewHSProvider("test-secret", "tsh", "tsh-api")
	p.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, _, _, err := p.SignAccess(context.Background(), uuid.New(), "ROLE_CUSTOMER", time.Hour)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}

	verifier := NewHSProvider("test-secret", "tsh", "tsh-api")
	if _, err := verifier.ParseAndValidateAccess(context.Background(), signed); err == nil {
		t.Fatalf("expired token must be rejected")
	}
}
