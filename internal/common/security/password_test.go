package security

import "testing"

func TestHashPassword_DeterministicForSalt(t *testing.T) {
	hash, salt, err := HashPassword("hunter22", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if salt == "" || hash == "" {
		t.Fatalf("expected hash and salt, got %q %q", hash, salt)
	}

	again, sameSalt, err := HashPassword("hunter22", salt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != hash || sameSalt != salt {
		t.Fatalf("expected same digest for same salt")
	}
}

func TestHashPassword_FreshSaltPerCredential(t *testing.T) {
	_, first, _ := HashPassword("hunter22", "")
	_, second, _ := HashPassword("hunter22", "")
	if first == second {
		t.Fatalf("expected distinct salts, got %q twice", first)
	}
}

func TestCheckPassword(t *testing.T) {
	hash, salt, err := HashPassword("correct horse", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckPassword("correct horse", hash, salt) {
		t.Fatalf("expected password to verify")
	}

	password := []byte("correct horse")
	for i := range password {
		mutated := append([]byte(nil), password...)
		mutated[i] ^= 0x01
		if CheckPassword(string(mutated), hash, salt) {
			t.Fatalf("mutation at %d unexpectedly verified", i)
		}
	}
}

func TestCheckPassword_MalformedInput(t *testing.T) {
	if CheckPassword("pw", "hash", "***not base64***") {
		t.Fatalf("expected malformed salt to fail")
	}
	if CheckPassword("", "", "") {
		t.Fatalf("expected empty hash to fail")
	}
}
