package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password123", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash equals plain text")
	}
	if !VerifyPassword(hash, "password123") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordClampsCost(t *testing.T) {
	// An out-of-range cost must not error out; it falls back to the default.
	if _, err := HashPassword("x", 99); err != nil {
		t.Fatalf("hash with oversized cost: %v", err)
	}
}
