package services_test

import (
	"context"
	"testing"

	"gamecat/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := services.WithEntryID(context.Background(), 10)
	ctx = services.WithStage(ctx, "enrich")
	ctx = services.WithRequestID(ctx, "run-1")

	if id, ok := services.EntryIDFromContext(ctx); !ok || id != 10 {
		t.Fatalf("unexpected entry id %d (%v)", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "enrich" {
		t.Fatalf("unexpected stage %q", stage)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "run-1" {
		t.Fatalf("unexpected request id %q", rid)
	}
	if _, ok := services.StageFromContext(services.WithStage(context.Background(), "")); ok {
		t.Fatal("expected empty stage to be ignored")
	}
}
