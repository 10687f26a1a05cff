package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Races []struct {
			ID                string `yaml:"id"`
			Name              string `yaml:"name"`
			Location          string `yaml:"location"`
			Flag              string `yaml:"flag,omitempty"`
			Footnote          string `yaml:"footnote,omitempty"`
			MassOffsetMinutes int    `yaml:"mass_offset_minutes,omitempty"`
		} `yaml:"races"`
		Server struct {
			ListenAddr  string `yaml:"listen_addr,omitempty"`
			HTTPPort    int    `yaml:"http_port,omitempty"`
			DatasetPath string `yaml:"dataset_path"`
		} `yaml:"server,omitempty"`
		Fetch struct {
			APIKey         string `yaml:"api_key,omitempty"`
			APIEndpoint    string `yaml:"api_endpoint,omitempty"`
			ArchiveBackend string `yaml:"archive_backend,omitempty"`
			SQLitePath     string `yaml:"sqlite_path,omitempty"`
			PostgresDSN    string `yaml:"postgres_dsn,omitempty"`
		} `yaml:"fetch,omitempty"`
	}

	err = yaml.Unmarshal(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		Races: make([]RaceData, len(yamlConfig.Races)),
		Server: ServerData{
			ListenAddr:  yamlConfig.Server.ListenAddr,
			HTTPPort:    yamlConfig.Server.HTTPPort,
			DatasetPath: yamlConfig.Server.DatasetPath,
		},
		Fetch: FetchData{
			APIKey:         yamlConfig.Fetch.APIKey,
			APIEndpoint:    yamlConfig.Fetch.APIEndpoint,
			ArchiveBackend: yamlConfig.Fetch.ArchiveBackend,
			SQLitePath:     yamlConfig.Fetch.SQLitePath,
			PostgresDSN:    yamlConfig.Fetch.PostgresDSN,
		},
	}

	for i, race := range yamlConfig.Races {
		config.Races[i] = RaceData{
			ID:                race.ID,
			Name:              race.Name,
			Location:          race.Location,
			Flag:              race.Flag,
			Footnote:          race.Footnote,
			MassOffsetMinutes: race.MassOffsetMinutes,
		}
	}

	y.config = config
	return config, nil
}

// GetRaces returns the race metadata records
func (y *YAMLProvider) GetRaces() ([]RaceData, error) {
	if y.config == nil {
		if _, err := y.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return y.config.Races, nil
}

// GetServerConfig returns the server configuration section
func (y *YAMLProvider) GetServerConfig() (*ServerData, error) {
	if y.config == nil {
		if _, err := y.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return &y.config.Server, nil
}

// GetFetchConfig returns the fetch configuration section
func (y *YAMLProvider) GetFetchConfig() (*FetchData, error) {
	if y.config == nil {
		if _, err := y.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return &y.config.Fetch, nil
}

// IsReadOnly returns true; YAML files are not modified at runtime
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}
