// Package config loads the link's tunables from YAML, falling back to the
// defaults spec.md pins for each timing constant.
package config

import (
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable the link needs at startup. Zero-value fields
// left unset by the loaded YAML keep their Default() value.
type Config struct {
	// Serial names the serial device (e.g. "/dev/ttyUSB0"); Baud its rate.
	Serial string `yaml:"serial"`
	Baud   int    `yaml:"baud"`

	// Logging controls the structured logger's minimum level.
	Logging struct {
		Level zapcore.Level `yaml:"level"`
	} `yaml:"logging"`

	// MetricsAddr, if non-empty, is the listen address for the Prometheus
	// exposition endpoint.
	MetricsAddr string `yaml:"metrics_addr"`

	// UpdateInterval is how long the writer sleeps after draining an empty
	// queue.
	UpdateInterval time.Duration `yaml:"update_interval"`
	// PostReceiveDelay is how long the writer sleeps after each transmitted
	// frame, to let the peer release its request-to-send line.
	PostReceiveDelay time.Duration `yaml:"post_receive_delay"`
	// Timeout is how long a pending-ack entry waits before it is resent.
	Timeout time.Duration `yaml:"timeout"`
	// MaxRetries bounds how many times a pending-ack entry is resent before
	// being dropped.
	MaxRetries int `yaml:"max_retries"`
	// MaxQueueSize bounds the outbound write queue.
	MaxQueueSize int `yaml:"max_queue_size"`
	// MaxBufferSize bounds the rolling inbound read buffer.
	MaxBufferSize int `yaml:"max_buffer_size"`
	// ReviveDelay is how long a faulted reader/writer sleeps before
	// resuming.
	ReviveDelay time.Duration `yaml:"revive_delay"`
	// FetchInterval is the period of the optional FETCH_VALUES broadcaster.
	FetchInterval time.Duration `yaml:"fetch_interval"`
}

// Default returns spec.md's pinned timing constants with no serial device
// or metrics endpoint configured.
func Default() Config {
	return Config{
		Baud:             115200,
		UpdateInterval:   2 * time.Millisecond,
		PostReceiveDelay: 4 * time.Millisecond,
		Timeout:          10 * time.Millisecond,
		MaxRetries:       3,
		MaxQueueSize:     512,
		MaxBufferSize:    2048,
		ReviveDelay:      1 * time.Second,
		FetchInterval:    100 * time.Millisecond,
	}
}

// Load reads path as YAML over Default(), so any field the file omits keeps
// its spec-mandated default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
