package hashing

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify_RoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	digest, err := h.Hash("Secret1aa")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !LooksHashed(digest) {
		t.Fatalf("digest %q must carry the bcrypt marker", digest)
	}
	if !h.Verify("Secret1aa", digest) {
		t.Fatal("Verify must accept the original password")
	}
	if h.Verify("wrong", digest) {
		t.Fatal("Verify must reject a wrong password")
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if _, err := h.Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestHash_SaltedDigestsDiffer(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	a, err := h.Hash("Secret1aa")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("Secret1aa")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatal("two digests of the same password must differ (salt)")
	}
}

func TestLooksHashed(t *testing.T) {
	tests := []struct {
		stored string
		want   bool
	}{
		{"$2a$10$abcdefghijklmnopqrstuv", true},
		{"$2b$12$abcdefghijklmnopqrstuv", true},
		{"secret1", false},
		{"", false},
		{"2a$looksalmost", false},
	}
	for _, tc := range tests {
		if got := LooksHashed(tc.stored); got != tc.want {
			t.Fatalf("LooksHashed(%q) = %v, want %v", tc.stored, got, tc.want)
		}
	}
}

func TestNewHasher_CostOutOfRangeFallsBack(t *testing.T) {
	h := NewHasher(99)
	digest, err := h.Hash("Secret1aa")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("Cost error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}
