package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yml"

type AppConfig struct {
	Port        int    `yaml:"port" env:"APP_PORT"`
	GinMode     string `yaml:"gin_mode" env:"GIN_MODE"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat   string `yaml:"log_format" env:"LOG_FORMAT"`
	CORSOrigins string `yaml:"cors_origins" env:"CORS_ORIGINS"`
}

type DatabaseConfig struct {
	DSN     string `yaml:"dsn" env:"DATABASE_DSN"`
	Migrate bool   `yaml:"migrate" env:"DATABASE_MIGRATE"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

type JWTConfig struct {
	Secret          string `yaml:"secret" env:"JWT_SECRET"`
	Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
	AccessTTL       string `yaml:"access_ttl" env:"JWT_ACCESS_TTL"`
	VerificationTTL string `yaml:"verification_ttl" env:"JWT_VERIFICATION_TTL"`
}

type OTPConfig struct {
	TTL    string `yaml:"ttl" env:"OTP_TTL"`
	Length int    `yaml:"length" env:"OTP_LENGTH"`
}

type SMTPConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM"`
	Timeout  string `yaml:"timeout" env:"SMTP_TIMEOUT"`
}

type MediaHostConfig struct {
	Endpoint      string `yaml:"endpoint" env:"MEDIA_ENDPOINT"`
	Region        string `yaml:"region" env:"MEDIA_REGION"`
	Bucket        string `yaml:"bucket" env:"MEDIA_BUCKET"`
	AccessKey     string `yaml:"access_key" env:"MEDIA_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" env:"MEDIA_SECRET_KEY"`
	PublicBaseURL string `yaml:"public_base_url" env:"MEDIA_PUBLIC_BASE_URL"`
	UploadTTL     string `yaml:"upload_ttl" env:"MEDIA_UPLOAD_TTL"`
	Timeout       string `yaml:"timeout" env:"MEDIA_TIMEOUT"`
}

type StorageConfig struct {
	UploadDir      string `yaml:"upload_dir" env:"UPLOAD_DIR"`
	PublicPrefix   string `yaml:"public_prefix" env:"UPLOAD_PUBLIC_PREFIX"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"UPLOAD_MAX_BYTES"`
}

type RegistrationConfig struct {
	RequireVerification string `yaml:"require_verification" env:"REGISTRATION_REQUIRE_VERIFICATION"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path" env:"CASBIN_MODEL_PATH"`
}

type ConfigFile struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	OTP          OTPConfig          `yaml:"otp"`
	SMTP         SMTPConfig         `yaml:"smtp"`
	MediaHost    MediaHostConfig    `yaml:"media_host"`
	Storage      StorageConfig      `yaml:"storage"`
	Registration RegistrationConfig `yaml:"registration"`
	Casbin       CasbinConfig       `yaml:"casbin"`
}

// SMTP holds the outbound email transport settings
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// MediaHost holds the cloud media host settings
type MediaHost struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	UploadTTL     time.Duration
	Timeout       time.Duration
}

// Enabled reports whether a bucket has been configured
func (m MediaHost) Enabled() bool {
	return m.Bucket != ""
}

type Config struct {
	Port                string
	GinMode             string
	LogLevel            string
	LogFormat           string
	CORSOrigins         []string
	DSN                 string
	Migrate             bool
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	JWTSecret           string
	JWTIssuer           string
	AccessTTL           time.Duration
	VerificationTTL     time.Duration
	OTP_TTL             time.Duration
	OTP_Length          int
	SMTP                SMTP
	MediaHost           MediaHost
	UploadDir           string
	UploadPublicPrefix  string
	MaxUploadBytes      int64
	RequireVerification bool
	CasbinModelPath     string
}

// Load reads the YAML config at path, then applies environment overrides.
// A missing file is not an error; environment variables alone are enough.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := cleanenv.ReadEnv(configFile); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	applyDefaults(configFile)
	return build(configFile)
}

func loadConfigFile(path string) (*ConfigFile, error) {
	var config ConfigFile

	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func applyDefaults(c *ConfigFile) {
	if c.App.Port == 0 {
		c.App.Port = 5000
	}
	if c.App.GinMode == "" {
		c.App.GinMode = "release"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.LogFormat == "" {
		c.App.LogFormat = "json"
	}
	if c.App.CORSOrigins == "" {
		c.App.CORSOrigins = "*"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "assetsvc"
	}
	if c.JWT.AccessTTL == "" {
		c.JWT.AccessTTL = "720h"
	}
	if c.JWT.VerificationTTL == "" {
		c.JWT.VerificationTTL = "15m"
	}
	if c.OTP.TTL == "" {
		c.OTP.TTL = "300s"
	}
	if c.OTP.Length == 0 {
		c.OTP.Length = 6
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.Timeout == "" {
		c.SMTP.Timeout = "10s"
	}
	if c.MediaHost.Region == "" {
		c.MediaHost.Region = "us-east-1"
	}
	if c.MediaHost.UploadTTL == "" {
		c.MediaHost.UploadTTL = "15m"
	}
	if c.MediaHost.Timeout == "" {
		c.MediaHost.Timeout = "10s"
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "uploads"
	}
	if c.Storage.PublicPrefix == "" {
		c.Storage.PublicPrefix = "/uploads/"
	}
	if c.Storage.MaxUploadBytes == 0 {
		c.Storage.MaxUploadBytes = 100 << 20
	}
	if c.Registration.RequireVerification == "" {
		c.Registration.RequireVerification = "true"
	}
	if c.Casbin.ModelPath == "" {
		c.Casbin.ModelPath = "config/rbac_model.conf"
	}
}

func build(c *ConfigFile) (*Config, error) {
	durations := map[string]string{
		"JWT access TTL":       c.JWT.AccessTTL,
		"JWT verification TTL": c.JWT.VerificationTTL,
		"OTP TTL":              c.OTP.TTL,
		"SMTP timeout":         c.SMTP.Timeout,
		"media upload TTL":     c.MediaHost.UploadTTL,
		"media timeout":        c.MediaHost.Timeout,
	}
	parsed := make(map[string]time.Duration, len(durations))
	for name, raw := range durations {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		parsed[name] = d
	}

	requireVerification, err := strconv.ParseBool(c.Registration.RequireVerification)
	if err != nil {
		return nil, fmt.Errorf("invalid registration.require_verification: %w", err)
	}

	if c.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	prefix := c.Storage.PublicPrefix
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &Config{
		Port:            fmt.Sprintf("%d", c.App.Port),
		GinMode:         c.App.GinMode,
		LogLevel:        c.App.LogLevel,
		LogFormat:       c.App.LogFormat,
		CORSOrigins:     splitList(c.App.CORSOrigins),
		DSN:             c.Database.DSN,
		Migrate:         c.Database.Migrate,
		RedisAddr:       c.Redis.Addr,
		RedisPassword:   c.Redis.Password,
		RedisDB:         c.Redis.DB,
		JWTSecret:       c.JWT.Secret,
		JWTIssuer:       c.JWT.Issuer,
		AccessTTL:       parsed["JWT access TTL"],
		VerificationTTL: parsed["JWT verification TTL"],
		OTP_TTL:         parsed["OTP TTL"],
		OTP_Length:      c.OTP.Length,
		SMTP: SMTP{
			Host:     c.SMTP.Host,
			Port:     c.SMTP.Port,
			Username: c.SMTP.Username,
			Password: c.SMTP.Password,
			From:     c.SMTP.From,
			Timeout:  parsed["SMTP timeout"],
		},
		MediaHost: MediaHost{
			Endpoint:      c.MediaHost.Endpoint,
			Region:        c.MediaHost.Region,
			Bucket:        c.MediaHost.Bucket,
			AccessKey:     c.MediaHost.AccessKey,
			SecretKey:     c.MediaHost.SecretKey,
			PublicBaseURL: strings.TrimRight(c.MediaHost.PublicBaseURL, "/"),
			UploadTTL:     parsed["media upload TTL"],
			Timeout:       parsed["media timeout"],
		},
		UploadDir:           c.Storage.UploadDir,
		UploadPublicPrefix:  prefix,
		MaxUploadBytes:      c.Storage.MaxUploadBytes,
		RequireVerification: requireVerification,
		CasbinModelPath:     c.Casbin.ModelPath,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
