package google

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestTokenFilePath(t *testing.T) {
	tests := []struct {
		name    string
		account string
		want    string
	}{
		{"default account", "default", "google-default.token"},
		{"empty falls back to default", "", "google-default.token"},
		{"work account", "work", "google-work.token"},
		{"email account", "jane@example.com", "google-jane_at_example.com.token"},
		{"slash is sanitized", "work/personal", "google-work_personal.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenFilePath(tt.account)
			if filepath.Base(got) != tt.want {
				t.Errorf("tokenFilePath() = %v, want base %v", got, tt.want)
			}
			if !strings.Contains(got, cacheDirName) {
				t.Errorf("tokenFilePath() = %v, should live under the %s cache dir", got, cacheDirName)
			}
		})
	}
}

func TestHasTokenForAccount_Missing(t *testing.T) {
	if HasTokenForAccount("nonexistent-test-account-xyz") {
		t.Error("HasTokenForAccount() should return false for a missing token file")
	}
}

func TestHasToken_UsesDefaultAccount(t *testing.T) {
	if HasToken() != HasTokenForAccount(DefaultAccount) {
		t.Error("HasToken() should match HasTokenForAccount(DefaultAccount)")
	}
}

func TestGetOAuthConfig_MissingCredentials(t *testing.T) {
	t.Setenv(envClientID, "")
	t.Setenv(envClientSecret, "")

	if _, err := GetOAuthConfig(); err == nil {
		t.Error("GetOAuthConfig() should fail without client credentials")
	}
}

func TestGetOAuthConfig_FromEnv(t *testing.T) {
	t.Setenv(envClientID, "test-client-id")
	t.Setenv(envClientSecret, "test-client-secret")

	conf, err := GetOAuthConfig()
	if err != nil {
		t.Fatalf("GetOAuthConfig() error = %v", err)
	}
	if conf.ClientID != "test-client-id" {
		t.Errorf("ClientID = %q, want test-client-id", conf.ClientID)
	}
	if len(conf.Scopes) != len(DefaultOAuthScopes) {
		t.Errorf("got %d scopes, want %d", len(conf.Scopes), len(DefaultOAuthScopes))
	}
	for _, scope := range conf.Scopes {
		if strings.Contains(scope, "gmail") || strings.Contains(scope, "drive") {
			t.Errorf("unexpected non-calendar scope %q", scope)
		}
	}
}

func TestGetAuthenticationErrorMessage(t *testing.T) {
	t.Setenv(envClientID, "test-client-id")
	t.Setenv(envClientSecret, "test-client-secret")

	for _, account := range []string{"default", "work"} {
		msg := GetAuthenticationErrorMessage(account)
		if msg == "" {
			t.Error("GetAuthenticationErrorMessage() should return non-empty message")
		}
		if !strings.Contains(msg, account) {
			t.Errorf("message should mention account %q", account)
		}
		if !strings.Contains(msg, "slotwise auth") {
			t.Error("message should point at the auth command")
		}
	}
}

func TestSanitizeAccount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"work", "work"},
		{"jane@example.com", "jane_at_example.com"},
		{"a/b\\c:d", "a_b_c_d"},
	}
	for _, tt := range tests {
		if got := sanitizeAccount(tt.in); got != tt.want {
			t.Errorf("sanitizeAccount(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUserCacheDirNotEmpty(t *testing.T) {
	if userCacheDir() == "" {
		t.Error("userCacheDir() should never be empty")
	}
}
