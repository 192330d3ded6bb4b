// Package environment carries the deployment environment (development,
// staging, production) through context.Context and into structured logs.
//
// Parse normalizes APP_ENV style values, Middleware attaches the value to every
// request and LoggerExtractor exposes it to logger.WithContextExtractors.
package environment
