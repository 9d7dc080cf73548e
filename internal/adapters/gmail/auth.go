package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

// AuthModeFile reads and persists the OAuth token in a local file,
// performing the authorization-code exchange on first run. AuthModeEnv reads
// a ready token from the environment and never writes anything, for
// headless runs.
const (
	AuthModeFile = "file"
	AuthModeEnv  = "env"

	// TokenEnvVar holds the token JSON in env auth mode.
	TokenEnvVar = "GMAIL_TOKEN_JSON"
)

// NewHTTPClient builds an authenticated HTTP client with read-only Gmail
// scope from the OAuth client credentials file and a token obtained per the
// configured auth mode.
func NewHTTPClient(ctx context.Context, credentialsFile, tokenFile, authMode string) (*http.Client, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read OAuth credentials file: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OAuth credentials: %w", err)
	}

	var token *oauth2.Token
	switch authMode {
	case AuthModeEnv:
		token, err = tokenFromEnv()
	case AuthModeFile:
		token, err = tokenFromFile(tokenFile)
		if err != nil {
			token, err = tokenFromWeb(ctx, oauthCfg)
			if err == nil {
				if saveErr := saveToken(tokenFile, token); saveErr != nil {
					return nil, saveErr
				}
			}
		}
	default:
		return nil, fmt.Errorf("unsupported gmail auth mode: %q", authMode)
	}
	if err != nil {
		return nil, err
	}

	return oauthCfg.Client(ctx, token), nil
}

func tokenFromEnv() (*oauth2.Token, error) {
	raw := os.Getenv(TokenEnvVar)
	if raw == "" {
		return nil, fmt.Errorf("%s not set", TokenEnvVar)
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal([]byte(raw), token); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", TokenEnvVar, err)
	}
	return token, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", path, err)
	}
	return token, nil
}

// tokenFromWeb runs the interactive authorization flow: print the consent
// URL, read the pasted code, exchange it for a token.
func tokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following link in your browser, then paste the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to save OAuth token: %w", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
