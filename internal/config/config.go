package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	fserrors "github.com/jscyril/freesound_cli/pkg/errors"
)

const (
	defaultBaseURL  = "https://freesound.org/apiv2"
	defaultPageSize = 30
)

// Config holds application configuration. Constructed once at startup,
// read-only thereafter.
type Config struct {
	APIKey          string
	BaseURL         string
	PageSize        int
	DownloadDir     string
	SearchTimeout   time.Duration
	PreviewTimeout  time.Duration
	DownloadTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first if present, which is where users
// typically keep their FreeSound API key.
func Load() (*Config, error) {
	// Missing .env is fine; the key may come from the environment proper.
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:          os.Getenv("FREESOUND_API_KEY"),
		BaseURL:         defaultBaseURL,
		PageSize:        defaultPageSize,
		DownloadDir:     ".",
		SearchTimeout:   10 * time.Second,
		PreviewTimeout:  10 * time.Second,
		DownloadTimeout: 30 * time.Second,
	}

	if cfg.APIKey == "" {
		return nil, fserrors.ErrUnconfigured
	}

	if base := os.Getenv("FREESOUND_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	if dir := os.Getenv("FREESOUND_DOWNLOAD_DIR"); dir != "" {
		cfg.DownloadDir = dir
	}
	if size := os.Getenv("FREESOUND_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}

	return cfg, nil
}
