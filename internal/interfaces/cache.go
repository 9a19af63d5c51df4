package interfaces

import "time"

// ResponseCache stores serialized API payloads with a TTL so repeated
// questions inside the window are served without a second upstream call.
type ResponseCache interface {
	// Get returns the cached payload for key, or false when the key is
	// missing or expired.
	Get(key string, out interface{}) (bool, error)

	// Set stores value under key for the given TTL.
	Set(key string, value interface{}, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error

	// Sweep removes all expired entries and returns how many were removed.
	Sweep() (int, error)
}
