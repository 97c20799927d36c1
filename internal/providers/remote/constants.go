package remote

import "time"

// ProviderName identifies this provider in logs and config.
const ProviderName = "remote"

const (
	defaultPerPage     = 100
	defaultHTTPTimeout = 30 * time.Second
	defaultMaxPages    = 500
)
