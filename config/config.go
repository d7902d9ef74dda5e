package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Simulator  SimulatorConfig  `yaml:"simulator"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Registry   RegistryConfig   `yaml:"registry"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RequestIPHeader string  `yaml:"request_ip_header"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// SimulatorConfig holds tick cadences and the endpoints of the local
// simulated-service surface.
type SimulatorConfig struct {
	UploadTickMillis     int    `yaml:"upload_tick_millis"`
	DronePollMillis      int    `yaml:"drone_poll_millis"`
	AnalysisPollMillis   int    `yaml:"analysis_poll_millis"`
	ProcessingStepMillis int    `yaml:"processing_step_millis"`
	DronePort            int    `yaml:"drone_port"`
	AnalysisPort         int    `yaml:"analysis_port"`
	DroneBaseURL         string `yaml:"drone_base_url"`
	AnalysisBaseURL      string `yaml:"analysis_base_url"`

	UploadTick             time.Duration `yaml:"-"`
	DronePollInterval      time.Duration `yaml:"-"`
	AnalysisPollInterval   time.Duration `yaml:"-"`
	ProcessingStepInterval time.Duration `yaml:"-"`
}

// AuthConfig holds the demo credentials and the admin delete secret. These
// are cosmetic gates, not a security mechanism.
type AuthConfig struct {
	LoginEmail        string `yaml:"login_email"`
	LoginPassword     string `yaml:"login_password"`
	AdminSecret       string `yaml:"admin_secret"`
	AdminSecretHash   string `yaml:"admin_secret_hash"`
	DeleteDelayMillis int    `yaml:"delete_delay_millis"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	Enabled    bool   `yaml:"enabled"`
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// RegistryConfig controls the in-memory device registry. The default
// instrument set is seeded unless skip_seed is set.
type RegistryConfig struct {
	SkipSeed bool `yaml:"skip_seed"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with all defaults applied, used when no
// config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Simulator.UploadTickMillis <= 0 {
		cfg.Simulator.UploadTickMillis = 200
	}
	if cfg.Simulator.DronePollMillis <= 0 {
		cfg.Simulator.DronePollMillis = 500
	}
	if cfg.Simulator.AnalysisPollMillis <= 0 {
		cfg.Simulator.AnalysisPollMillis = 800
	}
	if cfg.Simulator.ProcessingStepMillis <= 0 {
		cfg.Simulator.ProcessingStepMillis = 400
	}
	if cfg.Simulator.DronePort <= 0 {
		cfg.Simulator.DronePort = 5001
	}
	if cfg.Simulator.AnalysisPort <= 0 {
		cfg.Simulator.AnalysisPort = 5002
	}
	if cfg.Simulator.DroneBaseURL == "" {
		cfg.Simulator.DroneBaseURL = fmt.Sprintf("http://localhost:%d", cfg.Simulator.DronePort)
	}
	if cfg.Simulator.AnalysisBaseURL == "" {
		cfg.Simulator.AnalysisBaseURL = fmt.Sprintf("http://localhost:%d", cfg.Simulator.AnalysisPort)
	}
	cfg.Simulator.UploadTick = time.Duration(cfg.Simulator.UploadTickMillis) * time.Millisecond
	cfg.Simulator.DronePollInterval = time.Duration(cfg.Simulator.DronePollMillis) * time.Millisecond
	cfg.Simulator.AnalysisPollInterval = time.Duration(cfg.Simulator.AnalysisPollMillis) * time.Millisecond
	cfg.Simulator.ProcessingStepInterval = time.Duration(cfg.Simulator.ProcessingStepMillis) * time.Millisecond

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "rockfall.db"
	}

	if cfg.Auth.LoginEmail == "" {
		cfg.Auth.LoginEmail = "RockfallPrediction@gmail.com"
	}
	if cfg.Auth.LoginPassword == "" {
		cfg.Auth.LoginPassword = "admin123"
	}
	if cfg.Auth.AdminSecret == "" && cfg.Auth.AdminSecretHash == "" {
		cfg.Auth.AdminSecret = "admintime"
	}
	if cfg.Auth.DeleteDelayMillis <= 0 {
		cfg.Auth.DeleteDelayMillis = 1500
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
}
