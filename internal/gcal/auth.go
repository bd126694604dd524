package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// credentialsFile is the downloaded Google API credentials.json,
	// expected in the dayflow config directory.
	credentialsFile = "credentials.json"

	// tokenFile caches the user's OAuth token next to the credentials.
	tokenFile = "token.json"

	// authPort is the local port that captures the OAuth redirect.
	authPort = "6789"
)

// configDir returns ~/.dayflow, creating it if needed.
func configDir() (string, error) {
	base, err := homedir.Expand("~/.dayflow")
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	if err := os.MkdirAll(base, 0755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}
	return base, nil
}

// oauthConfig builds an oauth2.Config from the client secrets file,
// forcing the redirect onto our local callback port.
func oauthConfig(scopes []string) (*oauth2.Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(dir, credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}
	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}
	config.RedirectURL = fmt.Sprintf("http://localhost:%s/oauth2callback", authPort)
	return config, nil
}

// httpClient returns an authenticated *http.Client, loading a cached
// token or running the browser authorization flow.
func httpClient(ctx context.Context, scopes []string) (*http.Client, error) {
	config, err := oauthConfig(scopes)
	if err != nil {
		return nil, err
	}
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, tokenFile)
	tok, err := tokenFromFile(path)
	if err != nil {
		tok, err = tokenFromWeb(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("failed to get token from web: %w", err)
		}
		saveToken(path, tok)
	}
	return config.Client(ctx, tok), nil
}

// tokenFromWeb runs the authorization-code flow: print the consent URL,
// capture the redirect on a local listener, exchange the code.
func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "localhost:"+authPort)
	if err != nil {
		return nil, fmt.Errorf("unable to listen on localhost:%s: %w", authPort, err)
	}
	defer listener.Close()

	codeCh := make(chan string, 1)
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authorization received. You can close this tab.")
		codeCh <- code
	})}
	go srv.Serve(listener)
	defer srv.Close()

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "Open the following URL in your browser to authorize dayflow:\n%s\n", authURL)

	select {
	case code := <-codeCh:
		return config.Exchange(ctx, code)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Minute):
		return nil, fmt.Errorf("timed out waiting for authorization")
	}
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	return tok, json.NewDecoder(f).Decode(tok)
}

func saveToken(path string, tok *oauth2.Token) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: unable to cache oauth token: %v\n", err)
		return
	}
	defer f.Close()
	json.NewEncoder(f).Encode(tok)
}
