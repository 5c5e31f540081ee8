package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string
	HTTPPort  int

	MongoURI      string
	MongoDatabase string
	StorageRoot   string
	KafkaBrokers  []string

	KafkaTopicSubmissionReceived string
	KafkaTopicGradesCreated      string

	JWTSecret string
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Dependencies struct {
		MongoURI                     string   `yaml:"mongo_uri"`
		MongoDatabase                string   `yaml:"mongo_database"`
		StorageRoot                  string   `yaml:"storage_root"`
		KafkaBrokers                 []string `yaml:"kafka_brokers"`
		KafkaTopicSubmissionReceived string   `yaml:"kafka_topic_submission_received"`
		KafkaTopicGradesCreated      string   `yaml:"kafka_topic_grades_created"`
	} `yaml:"dependencies"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                    "peer-review-service",
		HTTPPort:                     8080,
		MongoDatabase:                "assignments",
		StorageRoot:                  "data",
		KafkaTopicSubmissionReceived: "peer-review.submission-received",
		KafkaTopicGradesCreated:      "peer-review.grades-created",
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Dependencies.MongoURI != "" {
			cfg.MongoURI = f.Dependencies.MongoURI
		}
		if f.Dependencies.MongoDatabase != "" {
			cfg.MongoDatabase = f.Dependencies.MongoDatabase
		}
		if f.Dependencies.StorageRoot != "" {
			cfg.StorageRoot = f.Dependencies.StorageRoot
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaTopicSubmissionReceived != "" {
			cfg.KafkaTopicSubmissionReceived = f.Dependencies.KafkaTopicSubmissionReceived
		}
		if f.Dependencies.KafkaTopicGradesCreated != "" {
			cfg.KafkaTopicGradesCreated = f.Dependencies.KafkaTopicGradesCreated
		}
		if f.Auth.JWTSecret != "" {
			cfg.JWTSecret = f.Auth.JWTSecret
		}
	}

	cfg.MongoURI = envOrDefault("MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = envOrDefault("MONGO_DATABASE", cfg.MongoDatabase)
	cfg.StorageRoot = envOrDefault("STORAGE_ROOT", cfg.StorageRoot)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopicSubmissionReceived = envOrDefault("KAFKA_TOPIC_SUBMISSION_RECEIVED", cfg.KafkaTopicSubmissionReceived)
	cfg.KafkaTopicGradesCreated = envOrDefault("KAFKA_TOPIC_GRADES_CREATED", cfg.KafkaTopicGradesCreated)
	cfg.JWTSecret = envOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)

	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("missing MONGO_URI")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("missing JWT_SECRET")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
