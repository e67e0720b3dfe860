package auth

import (
	"testing"
	"time"

	"babysteps/internal/common"
)

func TestGenerateAndParseInvite_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	inviteID := "invite-123"

	tok, err := GenerateInviteToken(inviteID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateInviteToken error: %v", err)
	}

	gotID, err := GetInviteIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetInviteIDFromToken error: %v", err)
	}
	if gotID != inviteID {
		t.Fatalf("inviteID mismatch: got %q want %q", gotID, inviteID)
	}
}

func TestGetInviteIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateInviteToken("i1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateInviteToken error: %v", err)
	}

	_, err = GetInviteIDFromToken(tok, secret)
	if err != common.ErrInviteExpired {
		t.Fatalf("expected common.ErrInviteExpired, got %v", err)
	}
}

func TestGetInviteIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateInviteToken("i2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateInviteToken error: %v", err)
	}

	_, err = GetInviteIDFromToken(tok, []byte("wrong-secret"))
	if err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestGetInviteIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetInviteIDFromToken("not.a.jwt", []byte("k"))
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestShareCode_RoundTrip(t *testing.T) {
	t.Parallel()

	code, err := NewShareCode()
	if err != nil {
		t.Fatalf("NewShareCode error: %v", err)
	}
	if len(code) != shareCodeDigits {
		t.Fatalf("code length: got %d want %d", len(code), shareCodeDigits)
	}

	hash, err := HashShareCode(code)
	if err != nil {
		t.Fatalf("HashShareCode error: %v", err)
	}

	if err := VerifyShareCode(hash, code); err != nil {
		t.Fatalf("VerifyShareCode error: %v", err)
	}
	if err := VerifyShareCode(hash, "000000x"); err != common.ErrInvalidInvite {
		t.Fatalf("expected common.ErrInvalidInvite, got %v", err)
	}
}
