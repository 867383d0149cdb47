package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"fjacquet/butterfly-ledger/internal/logging"
)

// LoadEnv loads a .env file from the working directory or its parent, if one
// exists, so BUTTERFLY_* variables can live next to the data. It returns the
// file that was loaded, or "" when none was found.
func LoadEnv() (string, error) {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			return "", err
		}
		return candidate, nil
	}
	return "", nil
}

// NewLogger builds the process logger from the log section.
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
