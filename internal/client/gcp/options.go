// Package gcp builds client options for the Google Drive and Sheets APIs.
package gcp

import (
	"errors"
	"strings"

	"google.golang.org/api/option"
)

var ErrNoCredentials = errors.New("google credentials file not configured")

// Options authenticates with the service-account or OAuth client JSON at
// credentialsFile.
func Options(credentialsFile string, scopes ...string) ([]option.ClientOption, error) {
	credentialsFile = strings.TrimSpace(credentialsFile)
	if credentialsFile == "" {
		return nil, ErrNoCredentials
	}
	opts := []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
	if len(scopes) > 0 {
		opts = append(opts, option.WithScopes(scopes...))
	}
	return opts, nil
}
