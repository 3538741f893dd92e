package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"aamva-parser/logging"
	redis "aamva-parser/redis"
)

type Config struct {
	ServerConfig ServerConfig `json:"server_config"`
	LogLevel     string       `json:"log_level,omitempty"`
	LogFormat    string       `json:"log_format,omitempty"`

	JwtPrivateKeyPath string `json:"jwt_private_key_path,omitempty"`
	IssuerId          string `json:"issuer_id,omitempty"`

	StorageType         string                    `json:"storage_type"`
	RedisConfig         redis.RedisConfig         `json:"redis_config,omitempty"`
	RedisSentinelConfig redis.RedisSentinelConfig `json:"redis_sentinel_config,omitempty"`
}

func main() {
	var inputPath, format string
	flag.StringVar(&inputPath, "file", "", "Input file (defaults to stdin if not provided)")
	flag.StringVar(&inputPath, "f", "", "Shorthand for --file")
	flag.StringVar(&format, "format", "json", "Output format: json or yaml")
	flag.StringVar(&format, "o", "json", "Shorthand for --format")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	configPath := flag.String("config", "", "Path for the config.json to use; starts the HTTP service")
	flag.Parse()

	logging.InitLogger(*logLevel)

	if *configPath != "" {
		if err := runServer(*configPath, *logLevel); err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runCli(inputPath, format, os.Stdin, os.Stdout); err != nil {
		slog.Error("failed to parse licence payload", "error", err)
		os.Exit(1)
	}
}

// resolveLogLevel lets the config file override the --log-level flag only
// when it names a level itself
func resolveLogLevel(config Config, flagLevel string) string {
	if config.LogLevel != "" {
		return config.LogLevel
	}
	return flagLevel
}

func runServer(configPath, flagLogLevel string) error {
	slog.Info("using config", "path", configPath)

	config, err := readConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if config.LogLevel != "" || config.LogFormat != "" {
		logging.InitLoggerWithFormat(resolveLogLevel(config, flagLogLevel), config.LogFormat, os.Stderr)
	}

	scanStorage, err := createScanStorage(&config)
	if err != nil {
		return fmt.Errorf("failed to instantiate scan storage: %w", err)
	}

	jwtCreator, err := createJwtCreator(&config)
	if err != nil {
		return fmt.Errorf("failed to instantiate jwt creator: %w", err)
	}

	serverState := ServerState{
		scanStorage: scanStorage,
		jwtCreator:  jwtCreator,
		issuerId:    config.IssuerId,
	}

	server, err := NewServer(&serverState, config.ServerConfig)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to listen and serve: %w", err)
	}
	return nil
}

func readConfigFile(path string) (Config, error) {
	configBytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var config Config
	if err := json.Unmarshal(configBytes, &config); err != nil {
		return Config{}, err
	}

	return config, nil
}

func createScanStorage(config *Config) (ScanStorage, error) {
	switch config.StorageType {
	case "redis":
		slog.Info("Using redis scan storage")
		client, err := redis.NewRedisClient(&config.RedisConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisScanStorage(client, config.RedisConfig.Namespace), nil
	case "redis_sentinel":
		slog.Info("Using redis sentinel scan storage")
		client, err := redis.NewRedisSentinelClient(&config.RedisSentinelConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisScanStorage(client, config.RedisSentinelConfig.Namespace), nil
	case "memory":
		slog.Info("Using in memory scan storage")
		return NewInMemoryScanStorage(), nil
	default:
		return nil, fmt.Errorf("%v is not a valid storage type", config.StorageType)
	}
}

// createJwtCreator returns nil when no signing key is configured, which
// disables credential issuance.
func createJwtCreator(config *Config) (JwtCreator, error) {
	if config.JwtPrivateKeyPath == "" {
		slog.Warn("No jwt private key configured, licence issuance is disabled")
		return nil, nil
	}
	creator, err := NewLicenceJwtCreator(config.JwtPrivateKeyPath, config.IssuerId)
	if err != nil {
		return nil, err
	}
	return creator, nil
}
