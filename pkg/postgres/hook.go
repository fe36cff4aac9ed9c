package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
)

// QueryHook logs every statement at debug level, slow ones at warn level and
// failed ones at error level. Missing rows are not failures. Query text is
// only logged at debug level since it carries bound customer data.
type QueryHook struct {
	slow time.Duration
}

var _ bun.QueryHook = (*QueryHook)(nil)

func NewQueryHook() *QueryHook {
	return &QueryHook{slow: 500 * time.Millisecond}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	h.log(log.Logger, event)
}

func (h *QueryHook) log(logger zerolog.Logger, event *bun.QueryEvent) {
	elapsed := time.Since(event.StartTime)

	var e *zerolog.Event
	switch {
	case event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows):
		e = logger.Error().Err(event.Err)
	case elapsed >= h.slow:
		e = logger.Warn()
	default:
		e = logger.Debug().Str("query", event.Query)
	}

	e.Str("operation", event.Operation()).
		Dur("duration", elapsed).
		Msg("sql")
}
