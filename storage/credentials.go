package storage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Credentials address the relational store: a Supabase project URL with its
// API key, or a Postgres URL with the key as its password.
type Credentials struct {
	URL string
	Key string
}

func (c Credentials) parse() (*url.URL, error) {
	raw := strings.TrimSpace(c.URL)
	if raw == "" || c.Key == "" {
		return nil, errors.New("store url and key are both required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid store url: %w", err)
	}
	return u, nil
}

// REST reports whether the store is reached over Supabase's REST API
// rather than a direct Postgres connection.
func (c Credentials) REST() bool {
	u, err := c.parse()
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// RestURL returns the PostgREST endpoint of a Supabase project.
//
//	https://<ref>.supabase.co        https://<ref>.supabase.co/rest/v1
//	https://host/custom/path         kept as is
func (c Credentials) RestURL() (string, error) {
	u, err := c.parse()
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported rest url scheme %q", u.Scheme)
	}
	if strings.Trim(u.Path, "/") == "" {
		u.Path = "/rest/v1"
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String(), nil
}

// DSN turns a Postgres URL into a lib/pq connection string. The key becomes
// the password when the URL carries none.
func (c Credentials) DSN() (string, error) {
	u, err := c.parse()
	if err != nil {
		return "", err
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("unsupported store url scheme %q", u.Scheme)
	}
	if u.User == nil {
		u.User = url.UserPassword("postgres", c.Key)
	} else if _, ok := u.User.Password(); !ok {
		u.User = url.UserPassword(u.User.Username(), c.Key)
	}
	return u.String(), nil
}
