// Package archive persists fetched race-day weather history. Two
// backends are provided: a local SQLite file for single-user fetch
// runs and a Postgres database for hosted deployments. The static
// JSON dataset served to the frontend is exported from whichever
// backend holds the archive.
package archive

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/marathonwx/raceday/internal/types"
	"github.com/marathonwx/raceday/pkg/config"
)

// Store is a race-history archive backend.
type Store interface {
	// SaveYear replaces the archived record for (raceID, year).
	// runID ties the write to a fetch run for bookkeeping.
	SaveYear(raceID string, ys types.YearSeries, runID string) error

	// LoadHistory returns all archived years for a race, ordered
	// ascending by year.
	LoadHistory(raceID string) ([]types.YearSeries, error)

	Close() error
}

// New opens the archive backend selected by the fetch configuration.
func New(fc *config.FetchData, logger *zap.SugaredLogger) (Store, error) {
	switch fc.ArchiveBackend {
	case "", "sqlite":
		path := fc.SQLitePath
		if path == "" {
			path = "raceday-archive.db"
		}
		return NewSQLiteStore(path, logger)
	case "postgres":
		if fc.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres archive backend requires fetch.postgres_dsn")
		}
		return NewPostgresStore(fc.PostgresDSN, logger)
	default:
		return nil, fmt.Errorf("unsupported archive backend: %s. Use 'sqlite' or 'postgres'", fc.ArchiveBackend)
	}
}
