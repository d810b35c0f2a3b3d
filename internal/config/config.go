// Package config loads process configuration from the environment. No
// global mutable state: the parsed struct is injected into whatever needs
// it at construction time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all SOLOFORGE_* settings.
type Config struct {
	// CampaignsDir is the root under which campaign directories live.
	// Point it inside a cloud-synced folder to share campaigns.
	CampaignsDir string `env:"SOLOFORGE_CAMPAIGNS_DIR"`

	// Player overrides the player identity (defaults to the character name
	// chosen at campaign create/join time).
	Player string `env:"SOLOFORGE_PLAYER"`

	// Backup settings. Backups are off unless an interval and at least one
	// destination are configured.
	BackupInterval   time.Duration `env:"SOLOFORGE_BACKUP_INTERVAL" envDefault:"0"`
	BackupS3Bucket   string        `env:"SOLOFORGE_BACKUP_S3_BUCKET"`
	BackupS3Endpoint string        `env:"SOLOFORGE_BACKUP_S3_ENDPOINT"`
	BackupS3Region   string        `env:"SOLOFORGE_BACKUP_S3_REGION" envDefault:"us-east-1"`
	// BackupS3Key and BackupGitFile default per campaign: the export is
	// written under the campaign slug unless overridden.
	BackupS3Key   string `env:"SOLOFORGE_BACKUP_S3_KEY"`
	BackupGitRepo string `env:"SOLOFORGE_BACKUP_GIT_REPO"`
	BackupGitFile string `env:"SOLOFORGE_BACKUP_GIT_FILE"`
	BackupGitBranch  string        `env:"SOLOFORGE_BACKUP_GIT_BRANCH" envDefault:"main"`
}

// Load parses the environment and fills in the campaigns-dir default.
func Load() (*Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if c.CampaignsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.CampaignsDir = filepath.Join(home, ".local", "share", "soloforge", "campaigns")
	}
	return &c, nil
}
