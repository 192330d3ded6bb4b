// Package clientip resolves the address of the browser behind any reverse
// proxy and stores it in the request context for logging and throttling.
//
// Headers are checked in this order, first valid address wins:
//
//  1. CF-Connecting-IP
//  2. X-Forwarded-For (leftmost valid entry)
//  3. X-Real-IP
//  4. RemoteAddr
//
// The headers are client controlled unless a proxy overwrites them, so the
// result is a best-effort label, never an authorization input.
package clientip
