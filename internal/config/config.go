// Package config loads mudra settings from an optional YAML file, a .env
// file and MUDRA_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ayusman/mudra/internal/gesture"
)

type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Detector DetectorConfig `yaml:"detector"`
	Registry RegistryConfig `yaml:"registry"`
	Store    StoreConfig    `yaml:"store"`
	Server   ServerConfig   `yaml:"server"`
}

type CameraConfig struct {
	Device int  `yaml:"device"`
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	FPS    int  `yaml:"fps"`
	Mirror bool `yaml:"mirror"` // flip frames horizontally, selfie view
}

type DetectorConfig struct {
	MaxHands     int     `yaml:"max_hands"`
	MinDetection float64 `yaml:"min_detection"`
	MinTracking  float64 `yaml:"min_tracking"`
	Script       string  `yaml:"script"` // path to the MediaPipe helper, searched for if empty
}

type RegistryConfig struct {
	Policy string `yaml:"policy"` // permissive or strict
}

type StoreConfig struct {
	Path string `yaml:"path"` // SQLite file; empty keeps gestures in memory only
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			Width:  640,
			Height: 480,
			FPS:    30,
			Mirror: true,
		},
		Detector: DetectorConfig{
			MaxHands:     1,
			MinDetection: 0.5,
			MinTracking:  0.5,
		},
		Registry: RegistryConfig{
			Policy: string(gesture.PolicyPermissive),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (if path is
// non-empty), .env and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	set := func(e error) {
		if err == nil {
			err = e
		}
	}

	set(envInt("MUDRA_CAMERA_DEVICE", &c.Camera.Device))
	set(envInt("MUDRA_CAMERA_WIDTH", &c.Camera.Width))
	set(envInt("MUDRA_CAMERA_HEIGHT", &c.Camera.Height))
	set(envInt("MUDRA_CAMERA_FPS", &c.Camera.FPS))
	set(envBool("MUDRA_CAMERA_MIRROR", &c.Camera.Mirror))
	set(envInt("MUDRA_DETECTOR_MAX_HANDS", &c.Detector.MaxHands))
	set(envFloat("MUDRA_DETECTOR_MIN_DETECTION", &c.Detector.MinDetection))
	set(envFloat("MUDRA_DETECTOR_MIN_TRACKING", &c.Detector.MinTracking))
	envString("MUDRA_DETECTOR_SCRIPT", &c.Detector.Script)
	envString("MUDRA_REGISTRY_POLICY", &c.Registry.Policy)
	envString("MUDRA_STORE_PATH", &c.Store.Path)
	envString("MUDRA_SERVER_ADDR", &c.Server.Addr)

	return err
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		return fmt.Errorf("camera size must be positive, got %dx%d", c.Camera.Width, c.Camera.Height)
	}
	if c.Camera.FPS <= 0 {
		return fmt.Errorf("camera fps must be positive, got %d", c.Camera.FPS)
	}
	if c.Detector.MaxHands < 1 {
		return fmt.Errorf("detector max_hands must be at least 1, got %d", c.Detector.MaxHands)
	}
	if !unit(c.Detector.MinDetection) || !unit(c.Detector.MinTracking) {
		return fmt.Errorf("detector confidences must be within [0,1]")
	}
	if _, err := gesture.ParsePolicy(c.Registry.Policy); err != nil {
		return err
	}
	return nil
}

// Policy returns the parsed registry policy. Call after Validate.
func (c *Config) Policy() gesture.Policy {
	p, _ := gesture.ParsePolicy(c.Registry.Policy)
	return p
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func envString(key string, dst *string) {
	if s, ok := os.LookupEnv(key); ok {
		*dst = s
	}
}

func envInt(key string, dst *int) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func envBool(key string, dst *bool) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
