package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, "responses.json", cfg.Storage.DataFile)
	assert.False(t, cfg.SMTP.Configured())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATA_FILE", "/var/lib/survey/responses.json")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_SECURE", "true")
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("MAIL_FROM", "noreply@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/var/lib/survey/responses.json", cfg.Storage.DataFile)
	assert.True(t, cfg.SMTP.Configured())
	assert.True(t, cfg.SMTP.Secure)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, "noreply@example.com", cfg.SMTP.Sender())
}

func TestSMTPConfigured(t *testing.T) {
	assert.False(t, (&SMTPConfig{}).Configured())
	assert.False(t, (&SMTPConfig{Host: "smtp.example.com"}).Configured())
	assert.False(t, (&SMTPConfig{Port: 587}).Configured())
	assert.True(t, (&SMTPConfig{Host: "smtp.example.com", Port: 587}).Configured())
}

func TestSMTPSenderFallsBackToUser(t *testing.T) {
	cfg := SMTPConfig{User: "mailer@example.com"}
	assert.Equal(t, "mailer@example.com", cfg.Sender())

	cfg.From = "noreply@example.com"
	assert.Equal(t, "noreply@example.com", cfg.Sender())
}

func TestConfigValidation(t *testing.T) {
	config := &Config{
		Server:  ServerConfig{Port: "3001"},
		Storage: StorageConfig{DataFile: "responses.json"},
	}
	assert.NoError(t, config.Validate())

	invalid := &Config{Storage: StorageConfig{DataFile: "responses.json"}}
	assert.Error(t, invalid.Validate())

	noFile := &Config{Server: ServerConfig{Port: "3001"}}
	assert.Error(t, noFile.Validate())

	noSender := &Config{
		Server:  ServerConfig{Port: "3001"},
		Storage: StorageConfig{DataFile: "responses.json"},
		SMTP:    SMTPConfig{Host: "smtp.example.com", Port: 587},
	}
	assert.Error(t, noSender.Validate())
}
