// File: pkg/b2/parse.go
package b2

import (
	"regexp"
	"strings"
	"time"
)

type syncPattern struct {
	action       string
	re           *regexp.Regexp
	hasLocalPath bool
}

// Ordered the way the tool prints them; the first match wins. The patterns
// are mutually exclusive since each requires its own action prefix.
var syncPatterns = []syncPattern{
	{ActionUpload, regexp.MustCompile(`^upload:\s+(.+?)\s+->\s+b2://[^/]+/(.+)`), true},
	{ActionUpdate, regexp.MustCompile(`^update:\s+(.+?)\s+->\s+b2://[^/]+/(.+)`), true},
	{ActionDelete, regexp.MustCompile(`^delete:\s+b2://[^/]+/(.+)`), false},
	{ActionSkip, regexp.MustCompile(`^skip:\s+(.+?)\s+->\s+b2://[^/]+/(.+)`), true},
}

// ParseSyncOutput extracts one Record per recognized line of sync output.
// Blank lines and lines matching no pattern are dropped. Every record from
// a single call carries the same timestamp.
func ParseSyncOutput(output string) []Record {
	var records []Record
	syncTime := time.Now().Format(time.RFC3339)

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for _, p := range syncPatterns {
			match := p.re.FindStringSubmatch(line)
			if match == nil {
				continue
			}

			record := Record{
				Action:    p.action,
				Status:    StatusSuccess,
				Timestamp: syncTime,
			}
			if p.hasLocalPath {
				record.LocalPath = match[1]
				record.RemoteKey = match[2]
			} else {
				record.RemoteKey = match[1]
			}

			records = append(records, record)
			break
		}
	}

	return records
}
