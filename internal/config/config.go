package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSalesAPIURL = "https://singularsystems-tech-assessment-sales-api2.azurewebsites.net"

type Config struct {
	Server    ServerConfig
	Proxy     ProxyConfig
	Dashboard DashboardConfig
	Logger    LoggerConfig
	Security  SecurityConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// ProxyConfig configures the relay in front of the external sales API.
type ProxyConfig struct {
	Host            string
	Port            int
	UpstreamURL     string
	UpstreamTimeout time.Duration
}

// DashboardConfig configures how the dashboard reaches the proxy and shapes its views.
type DashboardConfig struct {
	ProxyURL         string
	RequestTimeout   time.Duration
	FetchConcurrency int
	PageSize         int
	ViewTTL          time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

type SecurityConfig struct {
	AllowedOrigins []string
	TrustedProxies []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "localhost"),
			Port:            getEnvInt("SERVER_PORT", 3000),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Proxy: ProxyConfig{
			Host:            getEnvString("PROXY_HOST", "localhost"),
			Port:            getEnvInt("PROXY_PORT", 5050),
			UpstreamURL:     getEnvString("SALES_API_BASE_URL", defaultSalesAPIURL),
			UpstreamTimeout: getEnvDuration("SALES_API_TIMEOUT", 30*time.Second),
		},
		Dashboard: DashboardConfig{
			ProxyURL:         getEnvString("PROXY_BASE_URL", "http://localhost:5050"),
			RequestTimeout:   getEnvDuration("PROXY_TIMEOUT", 30*time.Second),
			FetchConcurrency: getEnvInt("DASHBOARD_FETCH_CONCURRENCY", 16),
			PageSize:         getEnvInt("DASHBOARD_PAGE_SIZE", 8),
			ViewTTL:          getEnvDuration("DASHBOARD_VIEW_TTL", 30*time.Minute),
		},
		Logger: LoggerConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "json"),
		},
		Security: SecurityConfig{
			AllowedOrigins: getEnvStringSlice("SECURITY_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			TrustedProxies: getEnvStringSlice("SECURITY_TRUSTED_PROXIES", []string{"127.0.0.1"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Proxy.Port < 1 || c.Proxy.Port > 65535 {
		return fmt.Errorf("proxy port must be between 1 and 65535, got %d", c.Proxy.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if err := validateBaseURL("sales API base URL", c.Proxy.UpstreamURL); err != nil {
		return err
	}

	if err := validateBaseURL("proxy base URL", c.Dashboard.ProxyURL); err != nil {
		return err
	}

	if c.Proxy.UpstreamTimeout <= 0 || c.Dashboard.RequestTimeout <= 0 {
		return fmt.Errorf("upstream timeouts must be positive")
	}

	if c.Dashboard.FetchConcurrency <= 0 {
		return fmt.Errorf("fetch concurrency must be positive")
	}

	if c.Dashboard.PageSize <= 0 {
		return fmt.Errorf("page size must be positive")
	}

	if c.Dashboard.ViewTTL <= 0 {
		return fmt.Errorf("view TTL must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	return nil
}

func validateBaseURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", name, raw)
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// Address is the listen address of the dashboard.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ProxyAddress is the listen address of the relay.
func (c *Config) ProxyAddress() string {
	return fmt.Sprintf("%s:%d", c.Proxy.Host, c.Proxy.Port)
}
