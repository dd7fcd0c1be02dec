// File: internal/auth/opclient.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"b2mirror/internal/runner"
)

const (
	sessionTimeout = 10 * time.Second
	itemTimeout    = 30 * time.Second
)

// Field labels the secrets item must carry. keyID and applicationKey are
// mandatory, the others optional.
const (
	labelKeyID          = "keyID"
	labelKeyName        = "keyName"
	labelBucket         = "Bucket"
	labelApplicationKey = "applicationKey"
)

// OpClient wraps the 1Password CLI.
type OpClient struct {
	bin    string
	runner runner.Runner
	logger *slog.Logger
}

func NewOpClient(bin string, run runner.Runner, logger *slog.Logger) *OpClient {
	return &OpClient{
		bin:    bin,
		runner: run,
		logger: logger.With("component", "op"),
	}
}

// SessionActive checks if a 1Password CLI session is signed in. Any
// failure, including a timeout, just means no.
func (o *OpClient) SessionActive(ctx context.Context) bool {
	res := o.runner.Run(ctx, []string{o.bin, "account", "list"}, sessionTimeout)
	return res.Code == 0
}

type opItem struct {
	Fields []struct {
		Label string `json:"label"`
		Value string `json:"value"`
	} `json:"fields"`
}

// Item fetches the named item and extracts the credential fields from its
// labeled entries.
func (o *OpClient) Item(ctx context.Context, name string) (Credentials, error) {
	res := o.runner.Run(ctx, []string{o.bin, "item", "get", name, "--format", "json"}, itemTimeout)
	if res.Code != 0 {
		o.logger.Error("Failed to retrieve item from 1Password", "item", name, "stderr", res.Stderr)
		return Credentials{}, fmt.Errorf("%w: 1Password item %q not found", ErrAuthentication, name)
	}

	var item opItem
	if err := json.Unmarshal([]byte(res.Stdout), &item); err != nil {
		return Credentials{}, fmt.Errorf("%w: invalid 1Password response format: %v", ErrAuthentication, err)
	}

	var creds Credentials
	for _, field := range item.Fields {
		switch field.Label {
		case labelKeyID:
			creds.KeyID = field.Value
		case labelKeyName:
			creds.KeyName = field.Value
		case labelBucket:
			creds.Bucket = field.Value
		case labelApplicationKey:
			creds.ApplicationKey = field.Value
		}
	}

	var missing []string
	if creds.KeyID == "" {
		missing = append(missing, labelKeyID)
	}
	if creds.ApplicationKey == "" {
		missing = append(missing, labelApplicationKey)
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("%w: missing required fields in 1Password item: %v", ErrAuthentication, missing)
	}

	return creds, nil
}
