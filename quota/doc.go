// Package quota throttles outbound calls to rate-limited model APIs across
// two windows: a trailing per-minute burst window and a per-calendar-day
// pool that empties at local midnight. Callers block in Acquire until the
// next call is permitted under both quotas; the limiter never rejects.
package quota
