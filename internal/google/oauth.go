package google

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// validAccountName restricts account names to filesystem-safe identifiers
var validAccountName = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateAccountName checks that an account name is safe to use in a file path
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name cannot be empty")
	}
	if !validAccountName.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, hyphens and underscores are allowed", account)
	}
	return nil
}

// getTokenFilePath returns the token cache file for an account
func getTokenFilePath(account string) string {
	cacheDir := filepath.Join(userCacheDir(), "mailsense")
	return filepath.Join(cacheDir, "google-"+account+".token")
}

// HasTokenForAccount checks if a cached OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	if err := validateAccountName(account); err != nil {
		return false
	}
	_, err := os.ReadFile(getTokenFilePath(account))
	return err == nil
}

// HasToken checks if a cached OAuth token exists for the default account
func HasToken() bool {
	return HasTokenForAccount("default")
}

// GetAuthURLForAccount returns the OAuth URL for user authorization of an account
func GetAuthURLForAccount(account string) string {
	conf := getOAuthConfig()
	return conf.AuthCodeURL("state-" + account)
}

// GetAuthURL returns the OAuth URL for user authorization of the default account
func GetAuthURL() string {
	return GetAuthURLForAccount("default")
}

// SaveTokenForAccount exchanges an authorization code for tokens and caches them
func SaveTokenForAccount(ctx context.Context, account, authCode string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}

	conf := getOAuthConfig()
	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	tokenFile := getTokenFilePath(account)
	if err := os.MkdirAll(filepath.Dir(tokenFile), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(tokenFile, []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// SaveToken exchanges an authorization code for the default account
func SaveToken(ctx context.Context, authCode string) error {
	return SaveTokenForAccount(ctx, "default", authCode)
}

// getOAuthConfig returns the OAuth2 configuration for Gmail access.
// Client credentials come from the environment so the binary carries no
// baked-in secret.
func getOAuthConfig() *oauth2.Config {
	const OOB = "urn:ietf:wg:oauth:2.0:oob"

	redirectURL := os.Getenv("GOOGLE_REDIRECT_URI")
	if redirectURL == "" {
		redirectURL = OOB
	}

	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       DefaultOAuthScopes,
	}
}

// GetTokenSourceForAccount returns an OAuth2 token source for the cached token
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}

	conf := getOAuthConfig()
	if conf.ClientID == "" || conf.ClientSecret == "" {
		return nil, fmt.Errorf("missing Google OAuth credentials: set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
	}

	slurp, err := os.ReadFile(getTokenFilePath(account))
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s", account)
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format for account %s", account)
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	// Validate the token
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("cached token for account %s is invalid: %w", account, err)
	}

	return ts, nil
}

// GetHTTPClientForAccount returns an HTTP client configured with OAuth2 authentication.
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors.
func GetHTTPClientForAccount(ctx context.Context, account string) (*http.Client, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, ts)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client, nil
}

// GetHTTPClient returns an authenticated HTTP client for the default account
func GetHTTPClient(ctx context.Context) (*http.Client, error) {
	return GetHTTPClientForAccount(ctx, "default")
}

// GetAuthenticationErrorMessage returns the user-facing instructions shown when
// no OAuth token exists for an account yet.
func GetAuthenticationErrorMessage(account string) string {
	return fmt.Sprintf(`Google OAuth token not found for account %q. To authorize access:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant access to Gmail
4. Copy the authorization code

5. Provide the authorization code to your AI agent
   The agent will use the google_save_auth_code tool with account=%q to complete authentication.

Note: You only need to authorize once. The tokens will be automatically refreshed.`, account, GetAuthURLForAccount(account), account)
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
		panic("No Windows TEMP or TMP environment variables found")
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
