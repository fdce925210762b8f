// Package config provides configuration structures and loading for flightdq.
package config

// Config represents the complete application configuration.
type Config struct {
	Source    DatabaseConfig  `yaml:"source" mapstructure:"source"`
	Table     string          `yaml:"table" mapstructure:"table"`
	Analysis  AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig represents the connection to the data source holding the flight table.
type DatabaseConfig struct {
	Driver         string `yaml:"driver" mapstructure:"driver"` // sqlite, mysql, postgres
	Path           string `yaml:"path" mapstructure:"path"`     // sqlite file path
	Host           string `yaml:"host" mapstructure:"host"`
	Port           int    `yaml:"port" mapstructure:"port"`
	User           string `yaml:"user" mapstructure:"user"`
	Password       string `yaml:"password" mapstructure:"password"`
	Database       string `yaml:"database" mapstructure:"database"`
	TLS            string `yaml:"tls" mapstructure:"tls"`         // mysql: disable, preferred, required
	SSLMode        string `yaml:"sslmode" mapstructure:"sslmode"` // postgres sslmode
	MaxConnections int    `yaml:"max_connections" mapstructure:"max_connections"`
}

// AnalysisConfig holds thresholds for the analyzers.
type AnalysisConfig struct {
	MissingThreshold float64 `yaml:"missing_threshold" mapstructure:"missing_threshold"`
	OutlierThreshold float64 `yaml:"outlier_threshold" mapstructure:"outlier_threshold"`
	IDColumn         string  `yaml:"id_column" mapstructure:"id_column"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	Path           string `yaml:"path" mapstructure:"path"`
	XLSXPath       string `yaml:"xlsx_path" mapstructure:"xlsx_path"`
	DetailedLimit  int    `yaml:"detailed_limit" mapstructure:"detailed_limit"`
	DuplicateLimit int    `yaml:"duplicate_limit" mapstructure:"duplicate_limit"`
	Color          bool   `yaml:"color" mapstructure:"color"`
	Schedule       string `yaml:"schedule" mapstructure:"schedule"`
}

// DashboardConfig holds the HTTP dashboard settings.
type DashboardConfig struct {
	Listen string `yaml:"listen" mapstructure:"listen"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Source: DatabaseConfig{
			Driver:         "sqlite",
			Path:           "data/airport_data.db",
			MaxConnections: 1,
		},
		Table: "MOCK_DATA",
		Analysis: AnalysisConfig{
			MissingThreshold: 10.0,
			OutlierThreshold: 1.5,
			IDColumn:         "Flight Number",
		},
		Report: ReportConfig{
			Path:           "data_quality_report.md",
			DetailedLimit:  5,
			DuplicateLimit: 20,
			Color:          true,
			Schedule:       "@every 1h",
		},
		Dashboard: DashboardConfig{
			Listen: ":8501",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// SourceName returns a human-readable name for the configured data source.
func (d *DatabaseConfig) SourceName() string {
	if d.Driver == "sqlite" || d.Driver == "" {
		return d.Path
	}
	return d.Driver + "://" + d.Host + "/" + d.Database
}
