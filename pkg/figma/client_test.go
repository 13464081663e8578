package figma

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientWhoAmI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/me" {
			t.Errorf("request path = %q, want /v1/me", r.URL.Path)
		}
		if got := r.Header.Get("X-Figma-Token"); got != "tok-123" {
			t.Errorf("X-Figma-Token header = %q, want tok-123", got)
		}
		json.NewEncoder(w).Encode(User{ID: "1", Email: "a@example.com", Handle: "acme"})
	}))
	defer srv.Close()

	client := NewClient(http.DefaultClient)
	client.BaseURL = srv.URL

	user, err := client.WhoAmI(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("WhoAmI() error: %v", err)
	}
	if user.Handle != "acme" || user.Email != "a@example.com" {
		t.Errorf("WhoAmI() = %+v, want Handle=acme Email=a@example.com", user)
	}
}

func TestClientWhoAmIRejectsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(http.DefaultClient)
	client.BaseURL = srv.URL

	if _, err := client.WhoAmI(context.Background(), "bad-token"); err == nil {
		t.Error("WhoAmI() with rejected token should error")
	}
}
