package remote

import "errors"

// Config holds the remote catalog/inventory API settings.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string `mapstructure:"base_url" default:"https://app.ecwid.com/api/v3"`
	// StoreID identifies the store; every request path is scoped by it.
	StoreID string `mapstructure:"store_id" default:""`
	// Token is the bearer token for the store.
	Token string `mapstructure:"token" default:""`
	// PageLimit is the page size for catalog listing.
	PageLimit int `mapstructure:"page_limit" default:"100"`
	// TimeoutSeconds is the HTTP client timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// ErrMissingCredentials reports an unset store id or token. Any remote
// operation without credentials is a configuration error, not a per-record one.
var ErrMissingCredentials = errors.New("remote credentials not configured (store_id and token required)")

// Credentials returns the (storeID, token) pair, failing when either is unset.
func (c Config) Credentials() (string, string, error) {
	if c.StoreID == "" || c.Token == "" {
		return "", "", ErrMissingCredentials
	}
	return c.StoreID, c.Token, nil
}
