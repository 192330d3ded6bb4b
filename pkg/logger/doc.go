// Package logger builds *slog.Logger instances with functional options and
// injects request-scoped values stored in context.Context into every record.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler with LogHandlerDecorator, which runs the registered ContextExtractor
// callbacks on each Handle call.
//
// Attribute helpers in attr.go keep key names consistent across packages:
//
//	log := logger.New(
//		logger.WithEnvironment("production", "propdocs"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "archive served",
//		logger.Proposal("12345"),
//		logger.Count(len(keys)),
//		logger.Error(err),
//	)
//
// Error and UserID return an empty slog.Attr for nil input, so callers can pass
// them unconditionally.
package logger
