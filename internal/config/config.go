package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config holds the tool settings. Values come from an optional locdb.yaml,
// with environment variables (and a .env file) taking precedence.
type Config struct {
	TextProject     string `yaml:"text_project"`
	SubtitleProject string `yaml:"subtitle_project"`
	GroupAssetFile  string `yaml:"group_asset_file"`
	OutputDir       string `yaml:"output_dir"`
	DatabaseURL     string `yaml:"database_url"`
	WorkerCount     int    `yaml:"worker_count"`
}

// DefaultConfigFile is read when LOCDB_CONFIG is unset.
const DefaultConfigFile = "locdb.yaml"

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		OutputDir:   "out",
		DatabaseURL: "postgres://localhost:5432/locdb?sslmode=disable",
		WorkerCount: 8,
	}

	path := getEnv("LOCDB_CONFIG", DefaultConfigFile)
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Ignoring unreadable config file")
		}
	}

	cfg.TextProject = getEnv("LOCDB_TEXT_PROJECT", cfg.TextProject)
	cfg.SubtitleProject = getEnv("LOCDB_SUBTITLE_PROJECT", cfg.SubtitleProject)
	cfg.GroupAssetFile = getEnv("LOCDB_GROUP_ASSET_FILE", cfg.GroupAssetFile)
	cfg.OutputDir = getEnv("LOCDB_OUTPUT_DIR", cfg.OutputDir)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.WorkerCount = getEnvInt("LOCDB_WORKER_COUNT", cfg.WorkerCount)

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
