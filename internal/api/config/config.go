package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/go-idgen-service/pkg/idgen"
	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	WorkerStrategyHardware = "hardware"
	WorkerStrategyHostname = "hostname"

	ClockSourceSystem = "system"
	ClockSourceRedis  = "redis"
)

// Config holds ID Service configuration
type Config struct {
	Server ServerConfig  `json:"server" yaml:"server"`
	IDGen  IDGenConfig   `json:"idgen" yaml:"idgen"`
	Clock  ClockConfig   `json:"clock" yaml:"clock"`
	Redis  RedisConfig   `json:"redis" yaml:"redis"`
	Gossip GossipConfig  `json:"gossip" yaml:"gossip"`
	Logger logger.Config `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	HTTPAddr string `json:"http_addr" yaml:"http_addr"`
	GRPCPort int    `json:"grpc_port" yaml:"grpc_port"`
	// AdvertiseHost is the host peers use to reach the gRPC server.
	AdvertiseHost string `json:"advertise_host" yaml:"advertise_host"`
}

type IDGenConfig struct {
	// Epoch in Unix milliseconds. Never change it for a live partition.
	Epoch       int64 `json:"epoch" yaml:"epoch"`
	PartitionID int64 `json:"partition_id" yaml:"partition_id"`
	// WorkerID overrides WorkerStrategy when set.
	WorkerID       *int64 `json:"worker_id" yaml:"worker_id"`
	WorkerStrategy string `json:"worker_strategy" yaml:"worker_strategy"` // "hardware", "hostname"
	WaitIntervalUS int    `json:"wait_interval_us" yaml:"wait_interval_us"`
	MaxBatch       int    `json:"max_batch" yaml:"max_batch"`
}

type ClockConfig struct {
	Source    string `json:"source" yaml:"source"` // "system", "redis"
	TimeoutMS int    `json:"timeout_ms" yaml:"timeout_ms"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

type GossipConfig struct {
	Enabled  bool     `json:"enabled" yaml:"enabled"`
	NodeName string   `json:"node_name" yaml:"node_name"`
	BindAddr string   `json:"bind_addr" yaml:"bind_addr"`
	Port     int      `json:"port" yaml:"port"`
	Seeds    []string `json:"seeds" yaml:"seeds"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:      ":8090",
			GRPCPort:      9090,
			AdvertiseHost: "127.0.0.1",
		},
		IDGen: IDGenConfig{
			Epoch:          idgen.DefaultEpoch,
			PartitionID:    5,
			WorkerStrategy: WorkerStrategyHardware,
			WaitIntervalUS: 100,
			MaxBatch:       1000,
		},
		Clock: ClockConfig{
			Source:    ClockSourceSystem,
			TimeoutMS: 50,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Gossip: GossipConfig{
			BindAddr: "0.0.0.0",
			Port:     7946,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Validate rejects settings the generator cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.IDGen.Epoch < 0 {
		errs = append(errs, fmt.Errorf("idgen.epoch must not be negative, got %d", c.IDGen.Epoch))
	} else if now := time.Now().UnixMilli(); c.IDGen.Epoch > now {
		errs = append(errs, fmt.Errorf("idgen.epoch %d is in the future (now %d)", c.IDGen.Epoch, now))
	}
	if c.IDGen.PartitionID < 0 || c.IDGen.PartitionID > idgen.MaxPartitionID {
		errs = append(errs, fmt.Errorf("idgen.partition_id must be in [0, %d], got %d", idgen.MaxPartitionID, c.IDGen.PartitionID))
	}
	if c.IDGen.WorkerID != nil && (*c.IDGen.WorkerID < 0 || *c.IDGen.WorkerID > idgen.MaxWorkerID) {
		errs = append(errs, fmt.Errorf("idgen.worker_id must be in [0, %d], got %d", idgen.MaxWorkerID, *c.IDGen.WorkerID))
	}
	switch c.IDGen.WorkerStrategy {
	case WorkerStrategyHardware, WorkerStrategyHostname:
	default:
		errs = append(errs, fmt.Errorf("idgen.worker_strategy %q is not supported", c.IDGen.WorkerStrategy))
	}
	if c.IDGen.MaxBatch <= 0 {
		errs = append(errs, fmt.Errorf("idgen.max_batch must be positive, got %d", c.IDGen.MaxBatch))
	}
	switch c.Clock.Source {
	case ClockSourceSystem:
	case ClockSourceRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required when clock.source is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("clock.source %q is not supported", c.Clock.Source))
	}
	if c.Server.GRPCPort <= 0 && c.Server.HTTPAddr == "" {
		errs = append(errs, errors.New("at least one of server.grpc_port and server.http_addr is required"))
	}

	return errors.Join(errs...)
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "api", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		// Logger is not initialised yet, so fall back to the standard logger.
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		parsedCfg = cfg
	}

	if err := parsedCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
