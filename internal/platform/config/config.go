package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	DataDir     string
	Backend     string
	VaultPath   string
	Env         string
	EntriesPath string
	GoalsPath   string
	DBPath      string
	LogPath     string
}

// Overrides carries values from command-line flags; empty fields defer to the environment.
type Overrides struct {
	DataDir   string
	Backend   string
	VaultPath string
}

// New derives every storage path from the data directory.
func New(dataDir, backend string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	switch backend {
	case "":
		backend = BackendFile
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unsupported backend %q", backend)
	}
	return Config{
		DataDir:     dataDir,
		Backend:     backend,
		Env:         "production",
		EntriesPath: filepath.Join(dataDir, "entries.json"),
		GoalsPath:   filepath.Join(dataDir, "goals.json"),
		DBPath:      filepath.Join(dataDir, "fittrack.db"),
		LogPath:     filepath.Join(dataDir, "fittrack.log"),
	}, nil
}

// Load reads an optional .env file, then the FITTRACK_* environment, then flag overrides.
func Load(o Overrides) (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	dataDir := firstNonEmpty(o.DataDir, os.Getenv("FITTRACK_DATA_DIR"), defaultDataDir())
	backend := firstNonEmpty(o.Backend, os.Getenv("FITTRACK_BACKEND"), BackendFile)
	cfg, err := New(dataDir, backend)
	if err != nil {
		return Config{}, err
	}
	cfg.VaultPath = firstNonEmpty(o.VaultPath, os.Getenv("FITTRACK_VAULT"))
	cfg.Env = firstNonEmpty(os.Getenv("FITTRACK_ENV"), cfg.Env)
	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "fittrack")
	}
	return ".fittrack"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
