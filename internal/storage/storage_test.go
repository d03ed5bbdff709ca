package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "test.db"), filepath.Join(dir, "test.key"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := setupTestStore(t)

	v, err := s.Get("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "" {
		t.Errorf("value = %q, want empty", v)
	}
}

func TestSetGetDelete(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}

	v, err := s.Get(KeyTheme)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "dark" {
		t.Errorf("value = %q, want %q", v, "dark")
	}

	// Overwrite
	if err := s.Set(KeyTheme, "light"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _ = s.Get(KeyTheme)
	if v != "light" {
		t.Errorf("value after overwrite = %q, want %q", v, "light")
	}

	if err := s.Delete(KeyTheme); err != nil {
		t.Fatalf("delete: %v", err)
	}
	v, _ = s.Get(KeyTheme)
	if v != "" {
		t.Errorf("value after delete = %q, want empty", v)
	}

	// Deleting again should not fail
	if err := s.Delete(KeyTheme); err != nil {
		t.Errorf("delete absent key: %v", err)
	}
}

func TestSecretRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SetSecret(KeyAuthToken, "tok-12345"); err != nil {
		t.Fatalf("set secret: %v", err)
	}

	// The raw stored value must not contain the plaintext
	raw, _ := s.Get(KeyAuthToken)
	if raw == "" || raw == "tok-12345" {
		t.Fatalf("stored value = %q, want sealed", raw)
	}

	got, err := s.Secret(KeyAuthToken)
	if err != nil {
		t.Fatalf("secret: %v", err)
	}
	if got != "tok-12345" {
		t.Errorf("secret = %q, want %q", got, "tok-12345")
	}
}

func TestSecretMissing(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.Secret(KeyAuthToken)
	if err != nil {
		t.Fatalf("secret: %v", err)
	}
	if got != "" {
		t.Errorf("secret = %q, want empty", got)
	}
}

func TestSecretCorruptDegradesToEmpty(t *testing.T) {
	s := setupTestStore(t)

	// Garbage under the token key must read back as absent, not error.
	if err := s.Set(KeyAuthToken, "not-a-sealed-value"); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.Secret(KeyAuthToken)
	if err != nil {
		t.Fatalf("secret: %v", err)
	}
	if got != "" {
		t.Errorf("secret = %q, want empty", got)
	}
}

func TestSealerKeyFileReuse(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "k")

	s1, err := loadSealer(keyPath)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	s2, err := loadSealer(keyPath)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if s1.passphrase != s2.passphrase {
		t.Error("expected key file to be reused across loads")
	}

	info, err := os.Stat(keyPath)
	if err != nil {
		t.Fatalf("stat key file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("key file mode = %o, want 0600", perm)
	}
}

func TestSealOpenAcrossStores(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "s.db")
	keyPath := filepath.Join(dir, "s.key")

	s1, err := Open(dbPath, keyPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s1.SetSecret(KeyAuthToken, "persisted"); err != nil {
		t.Fatalf("set secret: %v", err)
	}
	s1.Close()

	// Reopen: same key file, secret must survive.
	s2, err := Open(dbPath, keyPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { s2.Close() })

	got, err := s2.Secret(KeyAuthToken)
	if err != nil {
		t.Fatalf("secret: %v", err)
	}
	if got != "persisted" {
		t.Errorf("secret = %q, want %q", got, "persisted")
	}
}
