// Package logging provides a minimal logging facade for the poet wrapper.
//
// The Logger interface wraps a subset of log/slog so applications can route
// wrapper events through their own logging setup:
//
//	logger := logging.New(nil) // slog.Default()
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	custom := logging.New(slog.New(handler))
//
// Loggers are passed to the wrapper through poet.Config.Logger.
package logging
