package config

import (
	"fmt"
	"os"

	"github.com/matzehuels/figx/pkg/codec"
)

// AccessTokenSourceKind discriminates how one entry of an AccessToken's
// priority list resolves.
type AccessTokenSourceKind int

const (
	// AccessTokenLiteral holds the token directly in the workspace file.
	AccessTokenLiteral AccessTokenSourceKind = iota
	// AccessTokenEnv reads the token from an environment variable.
	AccessTokenEnv
	// AccessTokenKeychain reads the token from the Keychain passed to
	// Resolve.
	AccessTokenKeychain
)

// AccessTokenSource is one entry in an AccessToken's priority list.
type AccessTokenSource struct {
	Kind    AccessTokenSourceKind
	Literal string // AccessTokenLiteral
	EnvVar  string // AccessTokenEnv
}

// AccessToken is an ordered list of sources to try, in order, until one
// yields a nonempty value (spec §3, §4.2: "literal, environment variable,
// keychain — tried in order when a priority list is given").
type AccessToken struct {
	Sources []AccessTokenSource
}

// Resolve tries each source in order, returning the first nonempty value.
// keychainService/keychainAccount identify the entry to ask kc for when an
// AccessTokenKeychain source is tried; kc may be nil if no keychain source
// is present. When ignoreMissing is true (read-only commands that don't
// need to hit the remote API), a failed resolution returns ("", nil)
// instead of an error.
func (t AccessToken) Resolve(kc codec.Keychain, keychainService, keychainAccount string, ignoreMissing bool) (string, error) {
	for _, s := range t.Sources {
		switch s.Kind {
		case AccessTokenLiteral:
			if s.Literal != "" {
				return s.Literal, nil
			}
		case AccessTokenEnv:
			if v := os.Getenv(s.EnvVar); v != "" {
				return v, nil
			}
		case AccessTokenKeychain:
			if kc == nil {
				continue
			}
			if v, ok, err := kc.Get(keychainService, keychainAccount); err != nil {
				return "", err
			} else if ok && v != "" {
				return v, nil
			}
		}
	}
	if ignoreMissing {
		return "", nil
	}
	return "", fmt.Errorf("no access token source yielded a value")
}
