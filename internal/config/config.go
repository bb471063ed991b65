// Package config carga la configuración del servicio desde YAML con
// overrides por variables de entorno.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sender configura el driver de email saliente.
type Sender struct {
	// Driver: "resend" | "smtp" | "simulated"
	Driver string `yaml:"driver"`
	From   string `yaml:"from"`

	Resend struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"resend"`

	SMTP struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		User    string `yaml:"user"`
		Pass    string `yaml:"pass"`
		TLSMode string `yaml:"tls"` // auto | starttls | ssl | none
	} `yaml:"smtp"`
}

// Formatter configura el servicio remoto de formateo de nombres.
type Formatter struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Storage struct {
		// DataDir es el directorio del documento events.json.
		DataDir string `yaml:"data_dir"`
	} `yaml:"storage"`

	Sender Sender `yaml:"sender"`

	Delivery struct {
		// SendDelay es el throttle fijo entre envíos individuales.
		SendDelay time.Duration `yaml:"send_delay"`
		// RenderConcurrency limita el fan-out de renders por batch.
		RenderConcurrency int `yaml:"render_concurrency"`
	} `yaml:"delivery"`

	Formatter Formatter `yaml:"formatter"`
}

// Load lee el YAML en path (opcional: path vacío usa solo defaults+env) y
// aplica defaults y overrides de entorno.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "./data/eventeye"
	}
	if c.Sender.Driver == "" {
		c.Sender.Driver = "resend"
	}
	if c.Sender.From == "" {
		c.Sender.From = "EventEye Certificates <onboarding@resend.dev>"
	}
	if c.Sender.SMTP.TLSMode == "" {
		c.Sender.SMTP.TLSMode = "auto"
	}
	if c.Delivery.SendDelay == 0 {
		c.Delivery.SendDelay = 500 * time.Millisecond
	}
	if c.Delivery.RenderConcurrency == 0 {
		c.Delivery.RenderConcurrency = 8
	}
	if c.Formatter.Model == "" {
		c.Formatter.Model = "gpt-5-mini"
	}

	c.applyEnvOverrides()

	return &c, nil
}

func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("DATA_DIR"); ok {
		c.Storage.DataDir = v
	}
	if v, ok := getEnvStr("EMAIL_DRIVER"); ok {
		c.Sender.Driver = v
	}
	if v, ok := getEnvStr("EMAIL_FROM"); ok {
		c.Sender.From = v
	}
	if v, ok := getEnvStr("RESEND_API_KEY"); ok {
		c.Sender.Resend.APIKey = v
	}
	if v, ok := getEnvStr("SMTP_HOST"); ok {
		c.Sender.SMTP.Host = v
	}
	if v, ok := getEnvInt("SMTP_PORT"); ok {
		c.Sender.SMTP.Port = v
	}
	if v, ok := getEnvStr("SMTP_USER"); ok {
		c.Sender.SMTP.User = v
	}
	if v, ok := getEnvStr("SMTP_PASS"); ok {
		c.Sender.SMTP.Pass = v
	}
	if v, ok := getEnvStr("SEND_DELAY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.Delivery.SendDelay = d
		}
	}
	if v, ok := getEnvStr("OPENAI_API_KEY"); ok {
		c.Formatter.APIKey = v
	}
	if v, ok := getEnvStr("FORMATTER_BASE_URL"); ok {
		c.Formatter.BaseURL = v
	}
	if v, ok := getEnvStr("FORMATTER_MODEL"); ok {
		c.Formatter.Model = v
	}
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
