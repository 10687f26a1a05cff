package archive

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/marathonwx/raceday/internal/log"
	"github.com/marathonwx/raceday/internal/types"
)

// YearRecord is the gorm model for one archived race year.
type YearRecord struct {
	RaceID              string `gorm:"primaryKey;column:race_id"`
	Year                int    `gorm:"primaryKey"`
	RaceDate            string
	StartTimeMass       string
	StartTimeEliteMen   string
	StartTimeEliteWomen string
	StartTimeElite      string
}

func (YearRecord) TableName() string { return "year_series" }

// SampleRecord is the gorm model for one archived weather observation.
type SampleRecord struct {
	ID         uint   `gorm:"primaryKey"`
	RaceID     string `gorm:"index:idx_samples_race_year;column:race_id"`
	Year       int    `gorm:"index:idx_samples_race_year"`
	Datetime   string
	Temp       float64
	Dew        float64
	WindSpeed  float64 `gorm:"column:windspeed"`
	Conditions string
}

func (SampleRecord) TableName() string { return "samples" }

// FetchRun records one acquisition run for audit.
type FetchRun struct {
	ID        string `gorm:"primaryKey"`
	RaceID    string `gorm:"column:race_id"`
	Year      int
	FetchedAt time.Time
}

func (FetchRun) TableName() string { return "fetch_runs" }

// PostgresStore archives race history in a Postgres database.
type PostgresStore struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewPostgresStore connects to Postgres and migrates the archive schema.
func NewPostgresStore(dsn string, logger *zap.SugaredLogger) (*PostgresStore, error) {
	// Route gorm's logging through zap.
	dbLogger := gormlogger.New(
		zap.NewStdLog(log.GetZapLogger()),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Warn,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("unable to connect to Postgres archive: %w", err)
	}

	if err := db.AutoMigrate(&YearRecord{}, &SampleRecord{}, &FetchRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate archive schema: %w", err)
	}

	logger.Info("Postgres archive connection successful")
	return &PostgresStore{db: db, logger: logger}, nil
}

// SaveYear replaces the archived record for the (race, year) pair and
// records the fetch run in a single transaction.
func (p *PostgresStore) SaveYear(raceID string, ys types.YearSeries, runID string) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("race_id = ? AND year = ?", raceID, ys.Year).Delete(&YearRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete existing year: %w", err)
		}
		if err := tx.Where("race_id = ? AND year = ?", raceID, ys.Year).Delete(&SampleRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete existing samples: %w", err)
		}

		rec := YearRecord{
			RaceID:              raceID,
			Year:                ys.Year,
			RaceDate:            ys.RaceDate,
			StartTimeMass:       ys.StartTimeMass,
			StartTimeEliteMen:   ys.StartTimeEliteMen,
			StartTimeEliteWomen: ys.StartTimeEliteWomen,
			StartTimeElite:      ys.StartTimeElite,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to insert year: %w", err)
		}

		if len(ys.Samples) > 0 {
			records := make([]SampleRecord, 0, len(ys.Samples))
			for _, s := range ys.Samples {
				records = append(records, SampleRecord{
					RaceID:     raceID,
					Year:       ys.Year,
					Datetime:   s.Time,
					Temp:       s.TempF,
					Dew:        s.DewPointF,
					WindSpeed:  s.WindSpeed,
					Conditions: s.Conditions,
				})
			}
			if err := tx.Create(&records).Error; err != nil {
				return fmt.Errorf("failed to insert samples: %w", err)
			}
		}

		run := FetchRun{ID: runID, RaceID: raceID, Year: ys.Year, FetchedAt: time.Now().UTC()}
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("failed to record fetch run: %w", err)
		}
		return nil
	})
}

// LoadHistory returns all archived years for a race, ascending by year.
func (p *PostgresStore) LoadHistory(raceID string) ([]types.YearSeries, error) {
	var years []YearRecord
	if err := p.db.Where("race_id = ?", raceID).Order("year").Find(&years).Error; err != nil {
		return nil, fmt.Errorf("failed to query years: %w", err)
	}

	history := make([]types.YearSeries, 0, len(years))
	for _, yr := range years {
		var records []SampleRecord
		if err := p.db.Where("race_id = ? AND year = ?", raceID, yr.Year).Order("datetime").Find(&records).Error; err != nil {
			return nil, fmt.Errorf("failed to query samples: %w", err)
		}

		samples := make([]types.WeatherSample, 0, len(records))
		for _, r := range records {
			samples = append(samples, types.WeatherSample{
				Time:       r.Datetime,
				TempF:      r.Temp,
				DewPointF:  r.Dew,
				WindSpeed:  r.WindSpeed,
				Conditions: r.Conditions,
			})
		}

		history = append(history, types.YearSeries{
			Year:                yr.Year,
			RaceDate:            yr.RaceDate,
			StartTimeMass:       yr.StartTimeMass,
			StartTimeEliteMen:   yr.StartTimeEliteMen,
			StartTimeEliteWomen: yr.StartTimeEliteWomen,
			StartTimeElite:      yr.StartTimeElite,
			Samples:             samples,
		})
	}
	return history, nil
}

// Close closes the underlying connection pool.
func (p *PostgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
