// File: internal/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"b2mirror/pkg/b2"
)

// ErrSessionRequired means no 1Password session is signed in.
var ErrSessionRequired = errors.New("1Password session required, please run 'op signin' first")

// ErrAuthentication covers every other credential and authorization failure.
var ErrAuthentication = errors.New("authentication failed")

// Credentials holds the application key material fetched from the secrets
// manager. Never persisted, it lives only for the duration of one run.
type Credentials struct {
	KeyID          string
	KeyName        string
	Bucket         string
	ApplicationKey string
}

// Authenticator runs the sign-in flow against the storage CLI with
// credentials from 1Password.
type Authenticator struct {
	op         *OpClient
	client     *b2.Client
	itemName   string
	bucketName string
	logger     *slog.Logger
}

func NewAuthenticator(op *OpClient, client *b2.Client, itemName, bucketName string, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		op:         op,
		client:     client,
		itemName:   itemName,
		bucketName: bucketName,
		logger:     logger.With("component", "auth"),
	}
}

// Authenticate clears any cached authorization, fetches fresh credentials,
// authorizes the storage CLI and verifies the result. Every run authorizes
// from scratch.
func (a *Authenticator) Authenticate(ctx context.Context) (Credentials, error) {
	a.logger.Info("Starting B2 authentication flow")

	a.client.ClearAccount(ctx)

	if !a.op.SessionActive(ctx) {
		a.logger.Error("1Password CLI session not active")
		return Credentials{}, ErrSessionRequired
	}

	creds, err := a.op.Item(ctx, a.itemName)
	if err != nil {
		return Credentials{}, err
	}
	a.logger.Info("Successfully retrieved B2 credentials from 1Password")

	if err := a.client.Authorize(ctx, creds.KeyID, creds.ApplicationKey); err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	a.logger.Info("Successfully authorized B2 CLI")

	if !a.client.VerifyAuthorization(ctx) {
		return Credentials{}, fmt.Errorf("%w: verification failed after authorization", ErrAuthentication)
	}
	a.logger.Info("B2 authentication verified")

	return creds, nil
}

// ResolveBucket picks the bucket for this run. The configured name always
// wins; the secret's Bucket field only fills in when configuration leaves
// it unset.
func (a *Authenticator) ResolveBucket(creds Credentials) string {
	if a.bucketName != "" {
		return a.bucketName
	}
	return creds.Bucket
}
