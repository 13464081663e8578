package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileKeychain implements codec.Keychain as a JSON file under the user's
// config directory, one entry per (service, account) pair. No keyring
// library is part of this stack, so tokens are stored the way sessions
// were: a single file at 0600, guarded by a mutex against concurrent CLI
// invocations touching the same process.
type FileKeychain struct {
	mu   sync.Mutex
	path string
}

type keychainEntry struct {
	Service string `json:"service"`
	Account string `json:"account"`
	Token   string `json:"token"`
}

// NewFileKeychain opens (without yet creating) the keychain file under
// ~/.config/figx/keychain.json, or $XDG_CONFIG_HOME/figx/keychain.json
// when set.
func NewFileKeychain() (*FileKeychain, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &FileKeychain{path: filepath.Join(dir, "keychain.json")}, nil
}

func configDir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

func (k *FileKeychain) load() ([]keychainEntry, error) {
	data, err := os.ReadFile(k.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read keychain: %w", err)
	}
	var entries []keychainEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse keychain: %w", err)
	}
	return entries, nil
}

func (k *FileKeychain) save(entries []keychainEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal keychain: %w", err)
	}
	if err := os.WriteFile(k.path, data, 0600); err != nil {
		return fmt.Errorf("write keychain: %w", err)
	}
	return nil
}

// Get implements codec.Keychain.
func (k *FileKeychain) Get(service, account string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	entries, err := k.load()
	if err != nil {
		return "", false, err
	}
	for _, e := range entries {
		if e.Service == service && e.Account == account {
			return e.Token, e.Token != "", nil
		}
	}
	return "", false, nil
}

// Set stores token under service/account, overwriting any prior entry.
// Not part of codec.Keychain (spec's core never writes tokens), only the
// auth command uses it.
func (k *FileKeychain) Set(service, account, token string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	entries, err := k.load()
	if err != nil {
		return err
	}
	for i, e := range entries {
		if e.Service == service && e.Account == account {
			entries[i].Token = token
			return k.save(entries)
		}
	}
	return k.save(append(entries, keychainEntry{Service: service, Account: account, Token: token}))
}

// Delete implements codec.Keychain. Deleting an absent entry is not an error.
func (k *FileKeychain) Delete(service, account string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	entries, err := k.load()
	if err != nil {
		return err
	}
	out := entries[:0]
	for _, e := range entries {
		if e.Service == service && e.Account == account {
			continue
		}
		out = append(out, e)
	}
	return k.save(out)
}
