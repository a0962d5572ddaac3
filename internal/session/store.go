// ABOUTME: Persistent store for the admin session credential pair
// ABOUTME: Keeps access/refresh tokens as JSON in the XDG config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Token lifetimes, matching the backend's cookie expirations
const (
	AccessTokenTTL  = 7 * 24 * time.Hour
	RefreshTokenTTL = 15 * 24 * time.Hour
)

// Store manages the credential file for one token prefix
type Store struct {
	configDir string
	prefix    string
}

type credentialData struct {
	AccessToken    string    `json:"access_token"`
	AccessExpires  time.Time `json:"access_expires"`
	RefreshToken   string    `json:"refresh_token"`
	RefreshExpires time.Time `json:"refresh_expires"`
}

// New creates a store rooted at the given config directory
func New(configDir, prefix string) *Store {
	return &Store{configDir: configDir, prefix: prefix}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "folio-admin")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "folio-admin")
}

// credentialFile returns the path to the credential JSON
func (s *Store) credentialFile() string {
	return filepath.Join(s.configDir, s.prefix+"_credentials.json")
}

// Save writes a fresh token pair with standard expirations
func (s *Store) Save(accessToken, refreshToken string) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}

	now := time.Now()
	data, err := json.MarshalIndent(credentialData{
		AccessToken:    accessToken,
		AccessExpires:  now.Add(AccessTokenTTL),
		RefreshToken:   refreshToken,
		RefreshExpires: now.Add(RefreshTokenTTL),
	}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.credentialFile(), data, 0600)
}

// load reads the credential file, tolerating absence and corruption
func (s *Store) load() credentialData {
	var creds credentialData

	data, err := os.ReadFile(s.credentialFile())
	if err != nil {
		return credentialData{}
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		// Invalid JSON, treat as logged out
		return credentialData{}
	}
	return creds
}

// AccessToken returns the stored access token, or "" if absent or expired
func (s *Store) AccessToken() string {
	creds := s.load()
	if creds.AccessToken == "" || time.Now().After(creds.AccessExpires) {
		return ""
	}
	return creds.AccessToken
}

// RefreshToken returns the stored refresh token, or "" if absent or expired
func (s *Store) RefreshToken() string {
	creds := s.load()
	if creds.RefreshToken == "" || time.Now().After(creds.RefreshExpires) {
		return ""
	}
	return creds.RefreshToken
}

// LoggedIn reports whether a usable access token is present
func (s *Store) LoggedIn() bool {
	return s.AccessToken() != ""
}

// Clear removes both tokens. Removing an absent file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.credentialFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
