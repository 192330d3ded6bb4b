// Package requestid attaches a correlation identifier to every HTTP request.
//
// Middleware reuses a well-formed X-Request-ID header from the client or
// generates a UUID, stores it in the request context and echoes it back in the
// response. LoggerExtractor feeds the value into logger.WithContextExtractors so
// each log line of a request carries the same request_id.
package requestid
