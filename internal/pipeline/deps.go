package pipeline

import (
	"context"

	"gamecat/internal/catalog"
	"gamecat/internal/steam"
)

// RemoteCatalog is the upstream directory and storefront.
type RemoteCatalog interface {
	AppList(ctx context.Context) ([]steam.App, error)
	AppDetails(ctx context.Context, id int64) (*steam.AppDetails, error)
}

// SyncStore is the store surface used by catalog sync.
type SyncStore interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, entry *catalog.Entry) error
}

// EnrichStore is the store surface used by enrichment.
type EnrichStore interface {
	FindByID(ctx context.Context, id int64) (*catalog.Entry, error)
	Delete(ctx context.Context, id int64) (bool, error)
	UpsertDetail(ctx context.Context, detail *catalog.Detail) (bool, error)
}

// CleanupStore is the store surface used by cleanup.
type CleanupStore interface {
	FindNonGameDetails(ctx context.Context) ([]catalog.Detail, error)
	List(ctx context.Context, filter catalog.ListFilter) ([]catalog.Entry, error)
	DeleteDetail(ctx context.Context, entryID int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// SearchStore is the store surface used by search and batch enrichment.
type SearchStore interface {
	FindByNameContains(ctx context.Context, substring string) ([]catalog.Entry, error)
	ListUnenriched(ctx context.Context, limit int) ([]catalog.Entry, error)
}

var (
	_ SyncStore    = (*catalog.Store)(nil)
	_ EnrichStore  = (*catalog.Store)(nil)
	_ CleanupStore = (*catalog.Store)(nil)
	_ SearchStore  = (*catalog.Store)(nil)

	_ RemoteCatalog = (*steam.Client)(nil)
)
