// Package lifecycle holds shared constants for process start and stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown steps such as the HTTP
// server drain and the database pool close.
const DefaultTimeout = 10 * time.Second
