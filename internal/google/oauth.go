package google

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// DefaultAccount is the token slot used when no account is named.
	DefaultAccount = "default"

	cacheDirName = "slotwise"

	envClientID     = "GOOGLE_CLIENT_ID"
	envClientSecret = "GOOGLE_CLIENT_SECRET"
)

// GetOAuthConfig returns the OAuth2 configuration for Google Calendar
// access. Client credentials come from the GOOGLE_CLIENT_ID and
// GOOGLE_CLIENT_SECRET environment variables.
func GetOAuthConfig() (*oauth2.Config, error) {
	clientID := os.Getenv(envClientID)
	clientSecret := os.Getenv(envClientSecret)
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("missing Google OAuth credentials: set %s and %s", envClientID, envClientSecret)
	}

	const oob = "urn:ietf:wg:oauth:2.0:oob"
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  oob,
		Scopes:       DefaultOAuthScopes,
	}, nil
}

// GetAuthURL returns the OAuth URL for user authorization.
func GetAuthURL() (string, error) {
	conf, err := GetOAuthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state"), nil
}

// HasTokenForAccount checks if a stored OAuth token exists for the account.
func HasTokenForAccount(account string) bool {
	_, err := os.ReadFile(tokenFilePath(account))
	return err == nil
}

// HasToken checks if a token exists for the default account.
func HasToken() bool {
	return HasTokenForAccount(DefaultAccount)
}

// SaveTokenForAccount exchanges an authorization code for tokens and
// stores them under the account's token file.
func SaveTokenForAccount(ctx context.Context, account, authCode string) error {
	conf, err := GetOAuthConfig()
	if err != nil {
		return err
	}

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	tokenFile := tokenFilePath(account)
	if err := os.MkdirAll(filepath.Dir(tokenFile), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(tokenFile, []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// SaveToken stores a token for the default account.
func SaveToken(ctx context.Context, authCode string) error {
	return SaveTokenForAccount(ctx, DefaultAccount, authCode)
}

// GetTokenSourceForAccount returns an OAuth2 token source backed by the
// account's stored token, refreshing through the configured client.
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	conf, err := GetOAuthConfig()
	if err != nil {
		return nil, err
	}

	slurp, err := os.ReadFile(tokenFilePath(account))
	if err != nil {
		return nil, fmt.Errorf("no Google OAuth token found for account %q", account)
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format for account %q", account)
	}

	// Expiry in the past forces a refresh on first use, validating the
	// refresh token early.
	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("cached token for account %q is invalid: %w", account, err)
	}

	return ts, nil
}

// GetHTTPClientForAccount returns an HTTP client with OAuth2 authentication
// for the account. The client is configured to use HTTP/1.1 to avoid
// HTTP/2 protocol errors against the Google APIs.
func GetHTTPClientForAccount(ctx context.Context, account string) (*http.Client, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, ts)

	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client, nil
}

// GetAuthenticationErrorMessage returns the guidance shown when an
// account has no usable token. Tool handlers surface it verbatim.
func GetAuthenticationErrorMessage(account string) string {
	authURL, err := GetAuthURL()
	if err != nil {
		return fmt.Sprintf("No Google OAuth credentials configured for account %q: %v", account, err)
	}
	return fmt.Sprintf("No Google OAuth token found for account %q.\n\n"+
		"To authenticate:\n"+
		"1. Visit: %s\n"+
		"2. Authorize access and copy the code\n"+
		"3. Run: slotwise auth --account %s <code>",
		account, authURL, account)
}

func tokenFilePath(account string) string {
	if account == "" {
		account = DefaultAccount
	}
	name := "google-" + sanitizeAccount(account) + ".token"
	return filepath.Join(userCacheDir(), cacheDirName, name)
}

// sanitizeAccount keeps the token filename safe for accounts given as
// email addresses or arbitrary labels.
func sanitizeAccount(account string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "@", "_at_")
	return replacer.Replace(account)
}

func userCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), ".cache")
}
