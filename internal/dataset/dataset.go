// Package dataset loads the static race-history JSON file produced by
// raceday-fetch into an immutable in-memory index. The index is built
// once at startup and read-only for the lifetime of the process.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/marathonwx/raceday/internal/types"
)

// Dataset is the loaded race history, indexed by stable race ID.
type Dataset struct {
	races []types.RaceDataset
	byID  map[string]*types.RaceDataset
}

// Load reads and indexes a dataset file (a JSON array of race
// histories).
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return Parse(raw)
}

// Parse indexes dataset JSON. Races without an ID are rejected: every
// downstream lookup (metadata, footnotes, flags) keys off the ID.
func Parse(raw []byte) (*Dataset, error) {
	var races []types.RaceDataset
	if err := json.Unmarshal(raw, &races); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	ds := &Dataset{
		races: races,
		byID:  make(map[string]*types.RaceDataset, len(races)),
	}
	for i := range ds.races {
		r := &ds.races[i]
		if r.ID == "" {
			return nil, fmt.Errorf("race %q has no id", r.Race)
		}
		if _, dup := ds.byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate race id %q", r.ID)
		}
		ds.byID[r.ID] = r
	}
	return ds, nil
}

// Races returns all loaded race histories in file order.
func (d *Dataset) Races() []types.RaceDataset {
	return d.races
}

// Race returns the history for a race ID, or nil if unknown.
func (d *Dataset) Race(id string) *types.RaceDataset {
	return d.byID[id]
}
