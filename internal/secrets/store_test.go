package secrets

import (
	"errors"
	"testing"

	"github.com/99designs/keyring"
)

func testStore() *Store {
	return newStore(keyring.NewArrayKeyring(nil))
}

func TestStore_SetAndGetToken(t *testing.T) {
	s := testStore()

	if err := s.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	got, err := s.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got != "tok-123" {
		t.Errorf("Token = %q, want tok-123", got)
	}
}

func TestStore_TokenNotFound(t *testing.T) {
	s := testStore()

	_, err := s.Token()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteToken(t *testing.T) {
	s := testStore()

	if err := s.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteToken(); err != nil {
		t.Fatalf("DeleteToken: %v", err)
	}
	if _, err := s.Token(); !errors.Is(err, ErrNotFound) {
		t.Errorf("token survived delete: %v", err)
	}
}

func TestStore_DeleteMissingTokenIsNoError(t *testing.T) {
	s := testStore()
	if err := s.DeleteToken(); err != nil {
		t.Errorf("DeleteToken on empty store: %v", err)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open("vault"); err == nil {
		t.Error("expected error for unknown backend")
	}
}
