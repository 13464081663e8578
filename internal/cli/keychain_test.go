package cli

import "testing"

func TestFileKeychainRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	kc, err := NewFileKeychain()
	if err != nil {
		t.Fatalf("NewFileKeychain() error: %v", err)
	}

	if _, ok, err := kc.Get("figx", "acme"); err != nil || ok {
		t.Fatalf("Get on empty keychain = (_, %v, %v), want (_, false, nil)", ok, err)
	}

	if err := kc.Set("figx", "acme", "secret-token"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	token, ok, err := kc.Get("figx", "acme")
	if err != nil || !ok || token != "secret-token" {
		t.Fatalf("Get() = (%q, %v, %v), want (\"secret-token\", true, nil)", token, ok, err)
	}

	// Overwriting an existing entry replaces its token rather than duplicating it.
	if err := kc.Set("figx", "acme", "rotated-token"); err != nil {
		t.Fatalf("Set() overwrite error: %v", err)
	}
	token, ok, err = kc.Get("figx", "acme")
	if err != nil || !ok || token != "rotated-token" {
		t.Fatalf("Get() after overwrite = (%q, %v, %v), want (\"rotated-token\", true, nil)", token, ok, err)
	}

	if err := kc.Delete("figx", "acme"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := kc.Get("figx", "acme"); ok {
		t.Fatal("Get() after Delete() still found an entry")
	}

	// Deleting an absent entry is not an error.
	if err := kc.Delete("figx", "missing"); err != nil {
		t.Fatalf("Delete() on absent entry error: %v", err)
	}
}

func TestFileKeychainPersistsAcrossInstances(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	kc1, err := NewFileKeychain()
	if err != nil {
		t.Fatalf("NewFileKeychain() error: %v", err)
	}
	if err := kc1.Set("figx", "remote-a", "token-a"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	kc2, err := NewFileKeychain()
	if err != nil {
		t.Fatalf("NewFileKeychain() error: %v", err)
	}
	token, ok, err := kc2.Get("figx", "remote-a")
	if err != nil || !ok || token != "token-a" {
		t.Fatalf("Get() from second instance = (%q, %v, %v), want (\"token-a\", true, nil)", token, ok, err)
	}
}
