package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry enables error reporting when dsn is set. It returns a flush
// function to call on shutdown; the function is a no-op when Sentry is off.
func InitSentry(dsn, environment string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		return func() {}, err
	}
	slog.Info("sentry enabled", "environment", environment)
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureRemoteFailure reports a refused remote call. The body is attached as
// extra data so it never reaches the user-facing message.
func CaptureRemoteFailure(ctx context.Context, op string, status int, body string) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("operation", op)
		scope.SetExtra("status", status)
		scope.SetExtra("response_body", body)
		if id := RequestID(ctx); id != "" {
			scope.SetTag("request_id", id)
		}
		hub.CaptureMessage("remote API rejected " + op)
	})
}
