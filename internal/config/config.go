package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort       = 5000
	DefaultChatModel  = "gpt-3.5-turbo"
	DefaultImageModel = "dall-e-2"
	DefaultImageSize  = "1024x1024"
	DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/87.0.4280.88 Safari/537.36"
)

type Config struct {
	Server struct {
		Port                int      `yaml:"port"`
		ReadTimeoutSeconds  int      `yaml:"readTimeoutSeconds"`
		WriteTimeoutSeconds int      `yaml:"writeTimeoutSeconds"`
		IdleTimeoutSeconds  int      `yaml:"idleTimeoutSeconds"`
		CORSOrigins         []string `yaml:"corsOrigins"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	OpenAI struct {
		APIKey     string `yaml:"apiKey"`
		BaseURL    string `yaml:"baseURL"`
		ChatModel  string `yaml:"chatModel"`
		ImageModel string `yaml:"imageModel"`
		ImageSize  string `yaml:"imageSize"`
	} `yaml:"openai"`

	Fetcher struct {
		UserAgent      string `yaml:"userAgent"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
		StrictURLs     bool   `yaml:"strictURLs"`
	} `yaml:"fetcher"`

	Database struct {
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	Minio struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Load reads the yaml file at path. A missing file is not an error, the
// service then runs on defaults plus OPENAI_API_KEY.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	// upstream calls are not time-boxed, so the write deadline stays generous
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 300
	}
	if c.Server.IdleTimeoutSeconds == 0 {
		c.Server.IdleTimeoutSeconds = 60
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.OpenAI.ChatModel == "" {
		c.OpenAI.ChatModel = DefaultChatModel
	}
	if c.OpenAI.ImageModel == "" {
		c.OpenAI.ImageModel = DefaultImageModel
	}
	if c.OpenAI.ImageSize == "" {
		c.OpenAI.ImageSize = DefaultImageSize
	}
	if c.Fetcher.UserAgent == "" {
		c.Fetcher.UserAgent = DefaultUserAgent
	}
	if c.Database.Port == 0 {
		switch c.Database.Driver {
		case "mysql":
			c.Database.Port = 3306
		case "postgres":
			c.Database.Port = 5432
		}
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
}

// Validate checks the values that would otherwise fail late.
// The OpenAI key is deliberately not checked.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Minio.Enabled && (c.Minio.Endpoint == "" || c.Minio.BucketName == "") {
		return fmt.Errorf("minio enabled but endpoint or bucketName is empty")
	}
	if c.Fetcher.TimeoutSeconds < 0 {
		return fmt.Errorf("fetcher.timeoutSeconds must not be negative")
	}
	return nil
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSeconds) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSeconds) * time.Second
}

func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeoutSeconds) * time.Second
}

// FetchTimeout of zero means no client timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetcher.TimeoutSeconds) * time.Second
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection string
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
