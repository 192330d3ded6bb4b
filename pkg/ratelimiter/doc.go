// Package ratelimiter throttles requests with a token bucket kept in memory.
//
// The portal uses it to slow down password guessing on the login form:
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 30 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.ClientIPKey("login"))).Post("/login", login)
//
// A request is rejected once its key has used up the bucket. Tokens come back
// RefillRate at a time every RefillInterval, up to Capacity.
package ratelimiter
