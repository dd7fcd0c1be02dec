package b2

import "errors"

// Actions the sync tool reports for a file. ActionDeleteAll only appears in
// the synthetic record a clean run logs.
const (
	ActionUpload    = "upload"
	ActionUpdate    = "update"
	ActionDelete    = "delete"
	ActionSkip      = "skip"
	ActionDeleteAll = "delete_all"
)

// Record statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// ErrBucketAccess reports that the bucket could not be reached or listed
// with the current authorization.
var ErrBucketAccess = errors.New("bucket access failed")

// Record is one reconciled line of sync output. LocalPath is empty for
// deletes, which only name the remote side.
type Record struct {
	LocalPath     string `json:"local_path"`
	RemoteKey     string `json:"remote_key"`
	Action        string `json:"action"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp,omitempty"`
	FileSizeBytes int64  `json:"file_size_bytes,omitempty"`
	FileCount     int    `json:"file_count,omitempty"`
}

// LinkPair joins a public download URL with the bucket-relative path it
// points at.
type LinkPair struct {
	URL  string
	Path string
}
