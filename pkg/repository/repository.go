package repository

import (
	"context"

	"github.com/basedlist/directory/internal/models"
)

// Repository interfaces for the two profile collections. These are the
// public contracts consumers should depend on; concrete implementations
// live under internal/.

type ENSProfileRepo interface {
	// UpsertENSProfile inserts the profile or, if a row with the same name
	// exists, updates its resolved fields and touches the updated timestamp
	// while leaving the created timestamp alone.
	UpsertENSProfile(ctx context.Context, p *models.ENSProfile) error
	GetENSProfileByName(ctx context.Context, name string) (*models.ENSProfile, error)
	// ListENSProfileSummaries returns one lightweight entry per stored
	// profile, used to enrich autocomplete results.
	ListENSProfileSummaries(ctx context.Context) ([]models.SearchResult, error)
}

type BuilderProfileRepo interface {
	CreateBuilderProfile(ctx context.Context, b *models.BuilderProfile) (int64, error)
	UpdateBuilderProfile(ctx context.Context, b *models.BuilderProfile) error
	// FindBuilderByNameOrENS matches either the display name or the full
	// ENS name, tolerating whichever field was the original match key.
	FindBuilderByNameOrENS(ctx context.Context, name string) (*models.BuilderProfile, error)
	ListBuilders(ctx context.Context) ([]models.BuilderProfile, error)
}
