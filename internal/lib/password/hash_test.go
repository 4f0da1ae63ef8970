package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *Hasher {
	return NewHasher(bcrypt.MinCost)
}

func TestGetHash(t *testing.T) {
	h := newTestHasher()

	tests := []struct {
		name     string
		password string
	}{
		{name: "regular password", password: "password123"},
		{name: "password with special chars", password: "p@ssw0rd!@#$%^&*()"},
		{name: "short password", password: "pw123"},
		{name: "longer than 72 bytes", password: strings.Repeat("x", 200)},
		{name: "unicode", password: "пароль-密码-🔑"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := h.GetHash(tt.password)
			if err != nil {
				t.Fatalf("GetHash() error = %v", err)
			}
			if !strings.HasPrefix(gotHash, prefix) {
				t.Errorf("GetHash() = %q, want prefix %q", gotHash, prefix)
			}
			if err := h.CompareHash(gotHash, tt.password); err != nil {
				t.Errorf("Generated hash doesn't work with original password: %v", err)
			}
		})
	}
}

func TestCompareHash_LongPasswordsAreNotTruncated(t *testing.T) {
	h := newTestHasher()
	base := strings.Repeat("a", 72)

	hash, err := h.GetHash(base + "first-suffix")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}

	if err := h.CompareHash(hash, base+"other-suffix"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("passwords sharing a 72-byte prefix must not match, got %v", err)
	}
}

func TestCompareHash(t *testing.T) {
	h := newTestHasher()

	correctHash, err := h.GetHash("correct_password")
	if err != nil {
		t.Fatalf("Failed to create test hash: %v", err)
	}
	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy_password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to create legacy hash: %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
	}{
		{name: "matching password", hash: correctHash, password: "correct_password"},
		{name: "wrong password", hash: correctHash, password: "wrong_password", wantErr: ErrMismatch},
		{name: "empty password", hash: correctHash, password: "", wantErr: ErrMismatch},
		{name: "legacy bcrypt hash", hash: string(legacy), password: "legacy_password"},
		{name: "legacy bcrypt wrong password", hash: string(legacy), password: "nope", wantErr: ErrMismatch},
		{name: "legacy bcrypt too long", hash: string(legacy), password: strings.Repeat("y", 73), wantErr: ErrTooLong},
		{name: "garbage hash", hash: "plaintext", password: "plaintext", wantErr: ErrInvalidHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.CompareHash(tt.hash, tt.password)
			if tt.wantErr == nil && err != nil {
				t.Errorf("CompareHash() should succeed, got error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("CompareHash() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetHash_SamePasswordProducesDifferentHashes(t *testing.T) {
	h := newTestHasher()

	hash1, err := h.GetHash("password")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}
	hash2, err := h.GetHash("password")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("salted hashes of the same password must differ")
	}
}

func TestNewHasher_InvalidCostFallsBackToDefault(t *testing.T) {
	if got := NewHasher(100).cost; got != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", got, bcrypt.DefaultCost)
	}
}
