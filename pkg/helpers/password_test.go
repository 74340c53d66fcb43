package helpers

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if digest == "correct horse battery staple" {
		t.Fatal("digest must not equal the plaintext")
	}
	if !CheckPassword(digest, "correct horse battery staple") {
		t.Error("CheckPassword = false for the original plaintext; want true")
	}
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	digest, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if CheckPassword(digest, "pw2") {
		t.Error("CheckPassword = true for a different plaintext; want false")
	}
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	for _, digest := range []string{"", "not-a-bcrypt-digest", "$2a$xx"} {
		if CheckPassword(digest, "anything") {
			t.Errorf("CheckPassword(%q) = true; want false for malformed digest", digest)
		}
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	d1, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	d2, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if d1 == d2 {
		t.Error("two digests of the same input are equal; salt is not being generated per call")
	}
}
