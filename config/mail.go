// config/mail.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// SMTPConfig holds the mail-relay credentials, loaded once at startup and
// injected into the mail service rather than read from the environment per
// send.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// LoadSMTPConfig reads SMTP settings from the environment. Missing values
// are a startup error so delivery failures don't surface one request at a
// time.
func LoadSMTPConfig() (SMTPConfig, error) {
	cfg := SMTPConfig{
		Host: os.Getenv("SMTP_HOST"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		From: os.Getenv("FROM_EMAIL"),
	}

	portStr := os.Getenv("SMTP_PORT")
	if cfg.Host == "" || portStr == "" || cfg.User == "" || cfg.Pass == "" {
		return SMTPConfig{}, fmt.Errorf("missing SMTP configuration")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return SMTPConfig{}, fmt.Errorf("invalid SMTP port: %v", err)
	}
	cfg.Port = port

	if cfg.From == "" {
		cfg.From = cfg.User
	}

	return cfg, nil
}
