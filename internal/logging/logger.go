// Package logging defines the structured logger the rest of the code
// depends on, decoupling packages from the concrete backend (slog here).
package logging

import "context"

// Logger writes structured, leveled log entries. Args are alternating
// key/value pairs, slog style:
//
//	log.Info(ctx, "login", "member_id", id, "admin", isAdmin)
//
// Credential material must never appear among the args.
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)

	// Warn records unusual but survivable conditions, such as a skipped
	// credential upgrade.
	Warn(ctx context.Context, msg string, args ...any)

	Error(ctx context.Context, msg string, args ...any)

	// With returns a derived logger that stamps the given pairs on every entry.
	With(args ...any) Logger
}
