package utils

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "" {
		t.Error("HashPassword() returned empty string")
	}
	if hash == "hunter2hunter2" {
		t.Error("HashPassword() should not return the plaintext password")
	}
	if len(hash) < 50 {
		t.Errorf("hash seems too short: %d chars", len(hash))
	}
}

func TestHashPassword_Salted(t *testing.T) {
	hash1, _ := HashPassword("same-password")
	hash2, _ := HashPassword("same-password")

	if hash1 == hash2 {
		t.Error("same password should produce different hashes (salt)")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, _ := HashPassword("correct horse")

	tests := []struct {
		name     string
		password string
		expected bool
	}{
		{"correct password", "correct horse", true},
		{"wrong password", "battery staple", false},
		{"empty password", "", false},
		{"prefix only", "correct hors", false},
		{"case sensitive", "Correct Horse", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.password, hash); got != tt.expected {
				t.Errorf("CheckPassword(%q) = %v, expected %v", tt.password, got, tt.expected)
			}
		})
	}
}

func TestCheckPassword_BadHash(t *testing.T) {
	if CheckPassword("password", "not-a-bcrypt-hash") {
		t.Error("CheckPassword should return false for an invalid hash")
	}
	if CheckPassword("password", "") {
		t.Error("CheckPassword should return false for an empty hash")
	}
}
