package config

import (
	"strings"
	"time"

	"github.com/labstack/gommon/log"
)

const EnvProduction = "production"

type Config struct {
	App      AppConfig      `env-prefix:"APP_"`
	HTTP     HTTPConfig     `env-prefix:"HTTP_"`
	Database DatabaseConfig `env-prefix:"DB_"`
	JWT      JWTConfig      `env-prefix:"JWT_"`
	AWS      AWSConfig      `env-prefix:"AWS_"`
	Page     PageConfig     `env-prefix:"PAGE_"`
}

type AppConfig struct {
	Env      string `env:"ENV" env-default:"development"`
	Name     string `env:"NAME" env-default:"tagnotes"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Addr        string   `env:"ADDR" env-default:":7070"`
	BodyLimit   string   `env:"BODY_LIMIT" env-default:"2M"`
	CORSOrigins []string `env:"CORS_ORIGINS" env-default:"*" env-separator:","`
}

type DatabaseConfig struct {
	Path            string        `env:"PATH" env-default:"database.db"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" env-default:"1"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" env-default:"1h"`
}

// JWTConfig enables bearer token checks on /api. With neither value set
// the API is open.
type JWTConfig struct {
	Base64Secret string `env:"BASE64_SECRET"`
	JWKSURL      string `env:"JWKS_URL"`
}

type AWSConfig struct {
	Region    string `env:"REGION" env-default:"us-east-2"`
	SSMPrefix string `env:"SSM_PREFIX" env-default:"/tagnotes/prod/"`
}

type PageConfig struct {
	MaxSize int `env:"MAX_SIZE" env-default:"2000"`
}

func (a AppConfig) IsProduction() bool {
	return a.Env == EnvProduction
}

// Level maps LogLevel onto gommon levels, defaulting to INFO.
func (a AppConfig) Level() log.Lvl {
	switch strings.ToLower(strings.TrimSpace(a.LogLevel)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off", "none":
		return log.OFF
	default:
		return log.INFO
	}
}

func (j JWTConfig) Enabled() bool {
	return j.Base64Secret != "" || j.JWKSURL != ""
}
