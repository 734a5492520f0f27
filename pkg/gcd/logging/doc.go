// Package logging provides a minimal logging facade for the GCD engine.
//
// This package defines a Logger interface that wraps a subset of the standard
// library's log/slog functionality. The interface is intentionally small to
// allow applications to plug in their own implementation or route engine
// diagnostics into an existing logging system.
//
// # Default Implementation
//
//	// Use default logger (slog.Default())
//	logger := logging.New(nil)
//
//	// Use custom slog.Logger
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	engine, err := gcd.New(gcd.Config{Logger: logging.New(slog.New(handler))})
//
// # Operand Sizes
//
// The engine never logs operand values. Operands are described by their bit
// length only:
//
//	logger.Warn(ctx, "operand beyond watermark", logging.Bits("operand", a))
//	// Logs: operand_bits=1048577
//
// # What Gets Logged
//
//   - Kernel selection at engine construction (Debug, or Info when the
//     native kernel was requested but unavailable)
//   - Watermark crossings, once per watermark per engine (Warn)
//   - Internal consistency failures (Error) before they are returned
package logging
