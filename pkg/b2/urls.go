// File: pkg/b2/urls.go
package b2

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// DefaultEndpoint is the download endpoint used when the real one cannot
// be determined from account metadata.
const DefaultEndpoint = "f003"

var endpointPattern = regexp.MustCompile(`https://([^.]+)\.backblazeb2\.com`)

// DownloadURL builds the public friendly URL for a file in the bucket.
func DownloadURL(endpoint, bucket, path string) string {
	return fmt.Sprintf("https://%s.backblazeb2.com/file/%s/%s", endpoint, bucket, path)
}

// ResolveDownloadURLs lists every file in the bucket and pairs it with its
// public download URL. A listing failure yields an empty result; a failure
// to determine the endpoint falls back to DefaultEndpoint. Directory
// entries (trailing slash) are skipped.
func (c *Client) ResolveDownloadURLs(ctx context.Context, bucket string) []LinkPair {
	res := c.runner.Run(ctx, []string{c.bin, "ls", "--recursive", "b2://" + bucket}, defaultTimeout)
	if res.Code != 0 {
		c.logger.Error("Failed to list bucket contents", "stderr", res.Stderr)
		return nil
	}

	endpoint := c.resolveEndpoint(ctx)

	var pairs []LinkPair
	for _, line := range strings.Split(strings.TrimSpace(res.Stdout), "\n") {
		path := strings.TrimSpace(line)
		if path == "" || strings.HasSuffix(path, "/") {
			continue
		}
		pairs = append(pairs, LinkPair{URL: DownloadURL(endpoint, bucket, path), Path: path})
	}

	return pairs
}

// Extracts the short endpoint token (f003 and friends) from the account's
// download URL, falling back to the default on any failure.
func (c *Client) resolveEndpoint(ctx context.Context) string {
	res := c.runner.Run(ctx, []string{c.bin, "account", "get"}, accountTimeout)
	if res.Code != 0 {
		return DefaultEndpoint
	}

	var account struct {
		DownloadURL string `json:"downloadUrl"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &account); err != nil {
		return DefaultEndpoint
	}

	if match := endpointPattern.FindStringSubmatch(account.DownloadURL); match != nil {
		return match[1]
	}

	return DefaultEndpoint
}
