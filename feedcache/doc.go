// Package feedcache bounds what the realtime vehicle-position fetch costs:
// at most one feed download per transport mode per minute, no matter how many
// trips are polled concurrently.
//
// Expiry is by construction: the cache key includes the current minute
// bucket, so an entry goes stale by its key no longer being looked up. Stale
// entries are pruned whenever a new one is inserted.
package feedcache
