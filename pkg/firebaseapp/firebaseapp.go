// Package firebaseapp builds the Firebase Admin app shared by the database
// backends and Cloud Messaging.
package firebaseapp

import (
	"context"
	"errors"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Config holds Firebase credentials (from env or config).
type Config struct {
	ServiceAccountPath string
	ProjectID          string
	DatabaseURL        string
}

var ErrNotConfigured = errors.New("firebase: no service account or project configured")

// New initializes the app. Without a service account path it falls back to
// application default credentials, which requires a project id.
func New(ctx context.Context, cfg Config) (*firebase.App, error) {
	if cfg.ServiceAccountPath == "" && cfg.ProjectID == "" {
		return nil, ErrNotConfigured
	}
	fbCfg := &firebase.Config{
		ProjectID:   cfg.ProjectID,
		DatabaseURL: cfg.DatabaseURL,
	}
	var opts []option.ClientOption
	if cfg.ServiceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	}
	return firebase.NewApp(ctx, fbCfg, opts...)
}
