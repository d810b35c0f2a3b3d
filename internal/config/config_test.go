package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SOLOFORGE_CAMPAIGNS_DIR",
		"SOLOFORGE_PLAYER",
		"SOLOFORGE_BACKUP_INTERVAL",
		"SOLOFORGE_BACKUP_S3_BUCKET",
		"SOLOFORGE_BACKUP_GIT_REPO",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CampaignsDir == "" {
		t.Fatal("campaigns dir default not filled in")
	}
	if cfg.BackupInterval != 0 {
		t.Fatalf("backup interval = %v, want disabled", cfg.BackupInterval)
	}
	if cfg.BackupS3Region != "us-east-1" {
		t.Fatalf("s3 region = %q", cfg.BackupS3Region)
	}
	if cfg.BackupGitBranch != "main" {
		t.Fatalf("git branch = %q", cfg.BackupGitBranch)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SOLOFORGE_CAMPAIGNS_DIR", "/tmp/campaigns")
	t.Setenv("SOLOFORGE_PLAYER", "ari")
	t.Setenv("SOLOFORGE_BACKUP_INTERVAL", "15m")
	t.Setenv("SOLOFORGE_BACKUP_S3_BUCKET", "journals")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CampaignsDir != "/tmp/campaigns" {
		t.Fatalf("campaigns dir = %q", cfg.CampaignsDir)
	}
	if cfg.Player != "ari" {
		t.Fatalf("player = %q", cfg.Player)
	}
	if cfg.BackupInterval != 15*time.Minute {
		t.Fatalf("backup interval = %v", cfg.BackupInterval)
	}
	if cfg.BackupS3Bucket != "journals" {
		t.Fatalf("s3 bucket = %q", cfg.BackupS3Bucket)
	}
}

func TestLoadRejectsBadInterval(t *testing.T) {
	t.Setenv("SOLOFORGE_BACKUP_INTERVAL", "not-a-duration")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
