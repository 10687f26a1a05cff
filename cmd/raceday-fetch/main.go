// raceday-fetch pulls race-day hourly weather from the Visual Crossing
// timeline API into the local archive and exports the static JSON
// dataset served by raceday. It is run manually or on a periodic
// cadence after each race edition.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/marathonwx/raceday/internal/archive"
	"github.com/marathonwx/raceday/internal/log"
	"github.com/marathonwx/raceday/internal/types"
	"github.com/marathonwx/raceday/internal/vcross"
	"github.com/marathonwx/raceday/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "raceday.yaml", "Path to YAML configuration file")
	raceID := flag.String("race", "", "Stable race identifier to fetch (required unless -export-only)")
	raceDate := flag.String("date", "", "Race date YYYY-MM-DD (required with -race)")
	startMass := flag.String("start-time", "", "Mass start clock time HH:MM")
	startEliteMen := flag.String("start-time-elite-men", "", "Elite men start clock time HH:MM")
	startEliteWomen := flag.String("start-time-elite-women", "", "Elite women start clock time HH:MM")
	startElite := flag.String("start-time-elite", "", "Combined elite start clock time HH:MM")
	exportPath := flag.String("export", "", "Write the dataset JSON to this path after fetching")
	exportOnly := flag.Bool("export-only", false, "Skip fetching; just export the archive as dataset JSON")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	filename, _ := filepath.Abs(*cfgFile)
	provider := config.NewYAMLProvider(filename)
	cfgData, err := provider.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := archive.New(&cfgData.Fetch, log.GetSugaredLogger())
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	defer store.Close()

	if !*exportOnly {
		if *raceID == "" || *raceDate == "" {
			log.Fatal("-race and -date are required (or pass -export-only)")
		}
		race := cfgData.RaceByID(*raceID)
		if race == nil {
			log.Fatalf("Race %q is not configured", *raceID)
		}

		year, err := yearOf(*raceDate)
		if err != nil {
			log.Fatalf("Bad -date: %v", err)
		}

		client := vcross.New(cfgData.Fetch.APIEndpoint, cfgData.Fetch.APIKey)
		samples, err := client.DayHours(context.Background(), race.Location, *raceDate)
		if err != nil {
			log.Fatalf("Fetch failed: %v", err)
		}

		runID := uuid.New().String()
		ys := types.YearSeries{
			Year:                year,
			RaceDate:            *raceDate,
			StartTimeMass:       *startMass,
			StartTimeEliteMen:   *startEliteMen,
			StartTimeEliteWomen: *startEliteWomen,
			StartTimeElite:      *startElite,
			Samples:             samples,
		}
		if err := store.SaveYear(race.ID, ys, runID); err != nil {
			log.Fatalf("Archive write failed: %v", err)
		}
		log.Infof("Archived %d samples for %s %d (run %s)", len(samples), race.ID, year, runID)
	}

	if *exportPath != "" || *exportOnly {
		path := *exportPath
		if path == "" {
			path = cfgData.Server.DatasetPath
		}
		if path == "" {
			log.Fatal("No export path: pass -export or set server.dataset_path")
		}
		if err := exportDataset(store, cfgData.Races, path); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		log.Infof("Exported dataset to %s", path)
	}
}

// yearOf extracts the year from a YYYY-MM-DD date string.
func yearOf(date string) (int, error) {
	parts := strings.SplitN(date, "-", 2)
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1800 {
		return 0, fmt.Errorf("expected YYYY-MM-DD, got %q", date)
	}
	return year, nil
}

// exportDataset writes every configured race's archived history as the
// static dataset JSON consumed by the server.
func exportDataset(store archive.Store, races []config.RaceData, path string) error {
	out := make([]types.RaceDataset, 0, len(races))
	for _, race := range races {
		history, err := store.LoadHistory(race.ID)
		if err != nil {
			return fmt.Errorf("loading history for %s: %w", race.ID, err)
		}
		out = append(out, types.RaceDataset{
			ID:       race.ID,
			Race:     race.Name,
			Location: race.Location,
			History:  history,
		})
	}

	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}
