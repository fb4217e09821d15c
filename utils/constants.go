// File: utils/constants.go
package utils

import "time"

// AvailabilityCachePrefix is the prefix used for Redis availability cache keys.
const AvailabilityCachePrefix = "avail:"

// AvailabilityCacheTTL is the time-to-live for availability cache
// entries. Kept short because booking writes from other instances can
// make a cached answer stale.
const AvailabilityCacheTTL = 30 * time.Second
