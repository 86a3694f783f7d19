// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("Expected 32 hex characters, got %d", len(id))
	}

	id2, _ := GenerateID(16)
	if id == id2 {
		t.Error("Expected distinct random IDs")
	}
}

func TestAdminKeyRoundTrip(t *testing.T) {
	key := GenerateAdminKey("general", "test-salt")
	if key == "" {
		t.Fatal("Expected non-empty admin key")
	}

	if err := ValidateAdminKey("general", key, "test-salt"); err != nil {
		t.Errorf("Expected valid admin key, got %v", err)
	}

	// Deterministic: same inputs, same key
	if key != GenerateAdminKey("general", "test-salt") {
		t.Error("Expected deterministic admin key")
	}
}

func TestValidateAdminKeyRejections(t *testing.T) {
	key := GenerateAdminKey("general", "test-salt")

	if err := ValidateAdminKey("general", key, "other-salt"); err == nil {
		t.Error("Expected rejection for wrong salt")
	}
	if err := ValidateAdminKey("other-election", key, "test-salt"); err == nil {
		t.Error("Expected rejection for wrong election")
	}
	if err := ValidateAdminKey("general", "garbage", "test-salt"); err == nil {
		t.Error("Expected rejection for garbage key")
	}
}

func TestVoterTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateVoterToken("alice", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateVoterToken failed: %v", err)
	}

	username, err := VoterFromToken(token, secret)
	if err != nil {
		t.Fatalf("VoterFromToken failed: %v", err)
	}
	if username != "alice" {
		t.Errorf("Expected username alice, got %s", username)
	}
}

func TestVoterTokenRejections(t *testing.T) {
	secret := []byte("test-secret")
	token, _ := GenerateVoterToken("alice", secret, time.Hour)

	if _, err := VoterFromToken(token, []byte("wrong-secret")); err == nil {
		t.Error("Expected rejection for wrong secret")
	}
	if _, err := VoterFromToken("not-a-token", secret); err == nil {
		t.Error("Expected rejection for malformed token")
	}

	expired, _ := GenerateVoterToken("alice", secret, -time.Minute)
	if _, err := VoterFromToken(expired, secret); err == nil {
		t.Error("Expected rejection for expired token")
	}
}
