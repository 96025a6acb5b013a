// Package lifecycle holds shared process lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown work such as server drain and
// database pings.
const DefaultTimeout = 30 * time.Second
