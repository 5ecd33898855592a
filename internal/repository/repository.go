package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/hydrosite/internal/models"
)

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	FetchSitesForEnrichment(ctx context.Context, limit int) ([]models.Site, error)
	UpdateSiteMetadata(ctx context.Context, site models.Site, meta models.SiteMetadata) error
	IncrementFailureCount(ctx context.Context, siteID int, errMsg string) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
