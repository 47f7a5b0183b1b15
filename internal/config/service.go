package config

import "time"

type ServiceConfig struct {
	Name        string       `yaml:"name"`
	Environment string       `yaml:"environment"`
	Version     string       `yaml:"version"`
	BaseURL     string       `yaml:"base_url"`
	ClientURL   string       `yaml:"client_url"`
	Currency    string       `yaml:"currency"`
	Stripe      StripeConfig `yaml:"stripe"`
}

type StripeConfig struct {
	SecretKey string `yaml:"secret_key"`
	// Timeout bounds every remote call to the processor. Zero means the
	// 15 second default.
	Timeout time.Duration `yaml:"timeout"`
}

type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	AccessTTL  time.Duration `yaml:"access_ttl"`
	RefreshTTL time.Duration `yaml:"refresh_ttl"`
}

type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}
