// Package rate provides the Redis-backed login throttle.
//
// Failed login attempts are counted per identifier with a cooldown TTL;
// crossing the budget yields ErrRateLimited until the window expires or a
// successful login resets the counter. The throttle is optional: when no
// Redis backend is configured the auth service runs without it.
package rate
