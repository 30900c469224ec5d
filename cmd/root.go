package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"parking-cli/metrics"
	"parking-cli/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envConnectionString = "PARKING_DB_CONNECTION_STRING"
	envDataFile         = "PARKING_DATA_FILE"
	envMetricsFile      = "PARKING_METRICS_FILE"
)

var (
	outputJSON bool
	verbose    bool
	cfg        Config
	logger     = slog.Default()
	recorder   = metrics.NewRecorder()
)

type Config struct {
	DataFile         string `json:"data_file"`
	ConnectionString string `json:"connection_string"`
	LogLevel         string `json:"log_level"`
	MetricsFile      string `json:"metrics_file"`
}

var rootCmd = &cobra.Command{
	Use:   "parking",
	Short: "Book visitor parking for a two-week allotment",
	Long: `Book visitor parking for a two-week allotment of 14 days with 20 spaces
per day, the first 5 of which are accessible. Without a subcommand an
interactive menu is started.`,
	Args:         cobra.NoArgs,
	RunE:         runSession,
	SilenceUsage: true,
}

func Execute() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(bookCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(resetCmd())

	err := rootCmd.Execute()
	flushMetrics()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
}

func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	loaded, err := loadConfig()
	if err == nil {
		cfg = loaded
	}
	applyEnv(&cfg)

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger = newLogger(os.Stderr, level)
	if err != nil {
		logger.Warn("ignoring config file", slog.Any("error", err))
	}
}

func loadConfig() (Config, error) {
	path, err := storage.ConfigPath()
	if err != nil {
		return Config{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	if info.IsDir() {
		return Config{}, fmt.Errorf("config path is a directory: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var conf Config
	if err := json.NewDecoder(file).Decode(&conf); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func applyEnv(conf *Config) {
	conf.ConnectionString = getEnv(envConnectionString, conf.ConnectionString)
	conf.DataFile = getEnv(envDataFile, conf.DataFile)
	conf.MetricsFile = getEnv(envMetricsFile, conf.MetricsFile)
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func flushMetrics() {
	if cfg.MetricsFile == "" {
		return
	}
	if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
		logger.Warn("write metrics textfile", slog.String("path", cfg.MetricsFile), slog.Any("error", err))
	}
}
