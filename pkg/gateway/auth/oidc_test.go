package auth

import (
	"strings"
	"testing"
)

func TestOIDCAuthenticator(t *testing.T) {
	sso, err := NewOIDCAuthenticator("https://sso.klinik.de", "radgpt-client", "secret")
	if err != nil {
		t.Fatalf("failed to create authenticator: %v", err)
	}
	if sso.Issuer() != "https://sso.klinik.de" {
		t.Fatalf("unexpected issuer: %q", sso.Issuer())
	}

	url := sso.AuthCodeURL("state-123")
	if !strings.HasPrefix(url, "https://sso.klinik.de/authorize") {
		t.Fatalf("unexpected authorize URL: %q", url)
	}
	if !strings.Contains(url, "state=state-123") || !strings.Contains(url, "client_id=radgpt-client") {
		t.Fatalf("missing state or client id in URL: %q", url)
	}
}

func TestOIDCAuthenticatorIncompleteConfig(t *testing.T) {
	if _, err := NewOIDCAuthenticator("", "radgpt-client", "secret"); err == nil {
		t.Fatal("expected error for missing issuer")
	}
	if _, err := NewOIDCAuthenticator("https://sso.klinik.de", "", "secret"); err == nil {
		t.Fatal("expected error for missing client id")
	}
}
