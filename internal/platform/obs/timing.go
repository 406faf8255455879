package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Logger returns the logger attached to ctx, or zerolog's default context
// logger when there is none.
func Logger(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// Time logs the duration of an operation when the returned func runs.
// Typical use: defer obs.Time(ctx, "op")(&err).
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)
		l := Logger(ctx)

		if errp != nil && *errp != nil {
			l.Warn().Str("req_id", RequestID(ctx)).Str("op", name).
				Int64("dur_ms", dur.Milliseconds()).Err(*errp).Msg("op failed")
			return
		}
		l.Debug().Str("req_id", RequestID(ctx)).Str("op", name).
			Int64("dur_ms", dur.Milliseconds()).Msg("op done")
	}
}
