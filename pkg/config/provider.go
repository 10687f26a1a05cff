package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetRaces() ([]RaceData, error)
	GetServerConfig() (*ServerData, error)
	GetFetchConfig() (*FetchData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Races  []RaceData `json:"races"`
	Server ServerData `json:"server,omitempty"`
	Fetch  FetchData  `json:"fetch,omitempty"`
}

// RaceData is the per-race metadata record. Display behavior (flag,
// footnote, wave offset) keys off the stable ID here, never off
// substring matches against the human-facing name.
type RaceData struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Location          string `json:"location"`
	Flag              string `json:"flag,omitempty"`     // flag emoji shown beside the name
	Footnote          string `json:"footnote,omitempty"` // e.g. course-change or altitude notes
	MassOffsetMinutes int    `json:"mass_offset_minutes,omitempty"`
}

// ServerData holds the HTTP API server configuration
type ServerData struct {
	ListenAddr  string `json:"listen_addr,omitempty"`
	HTTPPort    int    `json:"http_port,omitempty"`
	DatasetPath string `json:"dataset_path"`
}

// FetchData holds the weather-acquisition configuration
type FetchData struct {
	APIKey         string `json:"api_key,omitempty"`
	APIEndpoint    string `json:"api_endpoint,omitempty"`
	ArchiveBackend string `json:"archive_backend,omitempty"` // "sqlite" or "postgres"
	SQLitePath     string `json:"sqlite_path,omitempty"`
	PostgresDSN    string `json:"postgres_dsn,omitempty"`
}

// RaceByID returns the race record for a stable race identifier.
func (c *ConfigData) RaceByID(id string) *RaceData {
	for i := range c.Races {
		if c.Races[i].ID == id {
			return &c.Races[i]
		}
	}
	return nil
}
