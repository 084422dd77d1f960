package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/aokiyuki/cocoro/backend/internal/core"
	"github.com/aokiyuki/cocoro/backend/pkg/redisx"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Env      core.Environment
	Server   ServerConfig
	Engine   EngineConfig
	Dialogue DialogueConfig
	Redis    redisx.Config
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	engine, err := loadEngineConfig()
	if err != nil {
		return nil, err
	}

	var rc redisx.Config
	if err := envconfig.Process("redis", &rc); err != nil {
		return nil, fmt.Errorf("invalid redis configuration: %w", err)
	}

	return &Config{
		Env:      core.ParseEnvironment(strings.TrimSpace(os.Getenv("APP_ENV"))),
		Server:   server,
		Engine:   engine,
		Dialogue: DialogueConfig{DataPath: strings.TrimSpace(os.Getenv("DIALOGUE_DATA_PATH"))},
		Redis:    rc,
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// EngineConfig 描述对话引擎的运行参数。
type EngineConfig struct {
	RetentionCap  int
	SessionTTL    time.Duration
	TranscriptTTL time.Duration
}

// DialogueConfig 描述对话数据文件的位置。空路径表示使用内置数据。
type DialogueConfig struct {
	DataPath string
}

func loadEngineConfig() (EngineConfig, error) {
	retention := 10
	if override, err := parseOptionalIntEnv("SESSION_RETENTION_CAP"); err != nil {
		return EngineConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return EngineConfig{}, fmt.Errorf("SESSION_RETENTION_CAP must be at least 1, got %d", *override)
		}
		retention = *override
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return EngineConfig{}, err
	}

	transcriptTTL, err := parseDurationEnv("TRANSCRIPT_TTL", 72*time.Hour)
	if err != nil {
		return EngineConfig{}, err
	}

	return EngineConfig{
		RetentionCap:  retention,
		SessionTTL:    sessionTTL,
		TranscriptTTL: transcriptTTL,
	}, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
