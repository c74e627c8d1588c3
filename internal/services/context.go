package services

import "context"

type ctxKey int

const (
	entryIDKey ctxKey = iota
	stageKey
	requestIDKey
)

// WithEntryID records the catalog entry (Steam appid) being processed.
func WithEntryID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, entryIDKey, id)
}

// EntryIDFromContext returns the entry id set by WithEntryID.
func EntryIDFromContext(ctx context.Context) (int64, bool) {
	return lookup[int64](ctx, entryIDKey)
}

// WithStage records the pipeline operation name. Empty names are ignored.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

func StageFromContext(ctx context.Context) (string, bool) {
	return lookup[string](ctx, stageKey)
}

// WithRequestID records the correlation id of one command run.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	return lookup[string](ctx, requestIDKey)
}

func lookup[T comparable](ctx context.Context, key ctxKey) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Value(key).(T)
	if !ok || v == zero {
		return zero, false
	}
	return v, true
}
