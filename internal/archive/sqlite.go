package archive

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/marathonwx/raceday/internal/types"
)

// SQLiteStore archives race history in a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	logger *zap.SugaredLogger
}

// NewSQLiteStore opens (and if needed initializes) a SQLite archive.
func NewSQLiteStore(dbPath string, logger *zap.SugaredLogger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath, logger: logger}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS year_series (
			race_id                TEXT NOT NULL,
			year                   INTEGER NOT NULL,
			race_date              TEXT NOT NULL,
			start_time_mass        TEXT NOT NULL,
			start_time_elite_men   TEXT NOT NULL DEFAULT '',
			start_time_elite_women TEXT NOT NULL DEFAULT '',
			start_time_elite       TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (race_id, year)
		)`,
		`CREATE TABLE IF NOT EXISTS samples (
			race_id    TEXT NOT NULL,
			year       INTEGER NOT NULL,
			datetime   TEXT NOT NULL,
			temp       REAL NOT NULL,
			dew        REAL NOT NULL,
			windspeed  REAL NOT NULL,
			conditions TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_race_year ON samples (race_id, year)`,
		`CREATE TABLE IF NOT EXISTS fetch_runs (
			id         TEXT PRIMARY KEY,
			race_id    TEXT NOT NULL,
			year       INTEGER NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize archive schema: %w", err)
		}
	}
	return nil
}

// SaveYear replaces any existing record for the (race, year) pair and
// records the fetch run, all within one transaction.
func (s *SQLiteStore) SaveYear(raceID string, ys types.YearSeries, runID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM year_series WHERE race_id = ? AND year = ?`, raceID, ys.Year); err != nil {
		return fmt.Errorf("failed to delete existing year: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM samples WHERE race_id = ? AND year = ?`, raceID, ys.Year); err != nil {
		return fmt.Errorf("failed to delete existing samples: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO year_series
		 (race_id, year, race_date, start_time_mass, start_time_elite_men, start_time_elite_women, start_time_elite)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		raceID, ys.Year, ys.RaceDate, ys.StartTimeMass, ys.StartTimeEliteMen, ys.StartTimeEliteWomen, ys.StartTimeElite,
	)
	if err != nil {
		return fmt.Errorf("failed to insert year: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO samples (race_id, year, datetime, temp, dew, windspeed, conditions)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for _, sample := range ys.Samples {
		if _, err := stmt.Exec(raceID, ys.Year, sample.Time, sample.TempF, sample.DewPointF, sample.WindSpeed, sample.Conditions); err != nil {
			return fmt.Errorf("failed to insert sample: %w", err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO fetch_runs (id, race_id, year, fetched_at) VALUES (?, ?, ?, ?)`,
		runID, raceID, ys.Year, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record fetch run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debugf("archived %d samples for %s %d", len(ys.Samples), raceID, ys.Year)
	return nil
}

// LoadHistory returns all archived years for a race, ascending by year.
func (s *SQLiteStore) LoadHistory(raceID string) ([]types.YearSeries, error) {
	rows, err := s.db.Query(
		`SELECT year, race_date, start_time_mass, start_time_elite_men, start_time_elite_women, start_time_elite
		 FROM year_series WHERE race_id = ? ORDER BY year`,
		raceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query years: %w", err)
	}
	defer rows.Close()

	var history []types.YearSeries
	for rows.Next() {
		var ys types.YearSeries
		if err := rows.Scan(&ys.Year, &ys.RaceDate, &ys.StartTimeMass, &ys.StartTimeEliteMen, &ys.StartTimeEliteWomen, &ys.StartTimeElite); err != nil {
			return nil, fmt.Errorf("failed to scan year row: %w", err)
		}
		history = append(history, ys)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating year rows: %w", err)
	}

	for i := range history {
		samples, err := s.loadSamples(raceID, history[i].Year)
		if err != nil {
			return nil, err
		}
		history[i].Samples = samples
	}
	return history, nil
}

func (s *SQLiteStore) loadSamples(raceID string, year int) ([]types.WeatherSample, error) {
	rows, err := s.db.Query(
		`SELECT datetime, temp, dew, windspeed, conditions
		 FROM samples WHERE race_id = ? AND year = ? ORDER BY datetime`,
		raceID, year,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var samples []types.WeatherSample
	for rows.Next() {
		var ws types.WeatherSample
		if err := rows.Scan(&ws.Time, &ws.TempF, &ws.DewPointF, &ws.WindSpeed, &ws.Conditions); err != nil {
			return nil, fmt.Errorf("failed to scan sample row: %w", err)
		}
		samples = append(samples, ws)
	}
	return samples, rows.Err()
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
