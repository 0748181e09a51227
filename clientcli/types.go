package clientcli

import "time"

// DeleteOptions configures a delete operation.
type DeleteOptions struct {
	Kind string
	IDs  []int
}

// DeleteResult represents the result of deleting a single record.
type DeleteResult struct {
	Kind    string `json:"kind"`
	ID      int    `json:"id"`
	Deleted bool   `json:"deleted"`
	Err     error  `json:"-"` // nil on success
}

// PingResult describes a successful liveness check.
type PingResult struct {
	Endpoint string        `json:"endpoint"`
	Message  string        `json:"message"`
	Latency  time.Duration `json:"latency_ns"`
}
