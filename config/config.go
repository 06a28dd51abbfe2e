package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	MongoURI   string           `yaml:"mongo_uri"`
	MongoDB    string           `yaml:"mongo_db"`
	Clustering ClusteringConfig `yaml:"clustering"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	API        APIConfig        `yaml:"api"`
	Assets     []AssetSource    `yaml:"assets"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ClusteringConfig struct {
	// WindowMinutes is the maximum gap between consecutive posts of one
	// author before a new Event opens. Reply-parent linkage overrides it.
	WindowMinutes int `yaml:"window_minutes"`
}

type ClassifierConfig struct {
	// ModelName is the Gemini model used for the fallback classifier.
	ModelName string `yaml:"model_name"`

	// MaxAttempts bounds retries for transient model-service failures.
	MaxAttempts int `yaml:"max_attempts"`

	// BackoffSeconds is the base delay between attempts; each retry doubles it.
	BackoffSeconds int `yaml:"backoff_seconds"`

	// Concurrency caps in-flight model calls per batch.
	Concurrency int `yaml:"concurrency"`
}

type KafkaConfig struct {
	Enabled bool   `yaml:"enabled"`
	Brokers string `yaml:"brokers"`
}

type APIConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// AssetSource is a single tracked asset and the accounts whose posts feed it.
type AssetSource struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Accounts []string `yaml:"accounts"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		c.MongoURI = uri
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
