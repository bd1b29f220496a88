package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 1.0 / 60
	DefaultMaxTime   = 30.0
	DefaultAddr      = ":8000"
	DefaultTick      = 16 * time.Millisecond
	DefaultBaseURL   = "https://ollama.com/api"
	DefaultModel     = "kimi-k2.5:cloud"
	DefaultTimeout   = 60 * time.Second
	DefaultAPIKeyEnv = "API_KEY"
	DefaultDataDir   = ".mechsim"
	DefaultLogLevel  = "info"
)

type Config struct {
	Sim     SimConfig     `yaml:"sim"`
	Server  ServerConfig  `yaml:"server"`
	Parser  ParserConfig  `yaml:"parser"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type SimConfig struct {
	Dt      float64 `yaml:"dt"`
	MaxTime float64 `yaml:"max_time"`
}

type ServerConfig struct {
	Addr string        `yaml:"addr"`
	Tick time.Duration `yaml:"tick"`
}

// ParserConfig configures the remote text-to-scenario service. The key
// itself is never written to disk; it is read from APIKeyEnv.
type ParserConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	APIKeyEnv string        `yaml:"api_key_env"`
	APIKey    string        `yaml:"-"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Sim: SimConfig{
			Dt:      DefaultDt,
			MaxTime: DefaultMaxTime,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
			Tick: DefaultTick,
		},
		Parser: ParserConfig{
			BaseURL:   DefaultBaseURL,
			Model:     DefaultModel,
			Timeout:   DefaultTimeout,
			APIKeyEnv: DefaultAPIKeyEnv,
		},
		Storage: StorageConfig{DataDir: DefaultDataDir},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv fills values that come from the environment.
func (c *Config) ApplyEnv() {
	if c.Parser.APIKeyEnv == "" {
		c.Parser.APIKeyEnv = DefaultAPIKeyEnv
	}
	if key := os.Getenv(c.Parser.APIKeyEnv); key != "" {
		c.Parser.APIKey = key
	}
}
