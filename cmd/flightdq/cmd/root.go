package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// defaultConfigFile is read when present; without it the built-in defaults apply.
const defaultConfigFile = "flightdq.yaml"

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	tableName string
	dbPath    string
)

var rootCmd = &cobra.Command{
	Use:   "flightdq",
	Short: "Data quality checks for the airport flight table",
	Long: `flightdq loads the airport flight table from SQLite, MySQL or PostgreSQL
and reports on its data quality.

Checks:
  - Missing values per column
  - IQR outliers (all numeric columns, and Flight Duration in detail)
  - Exact duplicate rows and duplicate flight numbers
  - Code format validation (airport, GPS, region, airline, flight number)
  - Summary statistics per country, city and airline

Reports are printed to the console, written as Markdown or XLSX, or served
by an interactive dashboard.`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Source overrides
	rootCmd.PersistentFlags().StringVarP(&tableName, "table", "t", "",
		"Override the table to analyze")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"Analyze this SQLite file instead of the configured source")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// configFileExplicit reports whether --config was given on the command line.
func configFileExplicit() bool {
	return rootCmd.PersistentFlags().Changed("config")
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	Table     string
	DBPath    string
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Table:     tableName,
		DBPath:    dbPath,
	}
}
