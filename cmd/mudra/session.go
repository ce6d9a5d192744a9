package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cyclopcam/logs"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/store"
)

const windowTitle = "mudra"

// session bundles what every camera command sets up and tears down.
type session struct {
	log   logs.Log
	cfg   *config.Config
	store *store.Store
	app   *app.App
}

// openSession loads config, opens the optional store, builds the app and
// starts the camera. Registry contents are loaded from the store if one is set.
func openSession(display app.Display) (*session, error) {
	log, err := logs.NewLog()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	s := &session{log: log, cfg: cfg}

	if cfg.Store.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		s.store, err = store.New(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize store: %w", err)
		}
		log.Infof("Using gesture database %v", cfg.Store.Path)
	}

	det, err := detector.NewMediaPipeDetector(log, detector.Config{
		MaxHands:        cfg.Detector.MaxHands,
		MinConfidence:   cfg.Detector.MinDetection,
		MinTrackingConf: cfg.Detector.MinTracking,
		Script:          cfg.Detector.Script,
	})
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("hand detector unavailable: %w", err)
	}

	camera := capture.NewCamera(capture.Config{
		DeviceID: cfg.Camera.Device,
		Width:    cfg.Camera.Width,
		Height:   cfg.Camera.Height,
		FPS:      cfg.Camera.FPS,
		Mirror:   cfg.Camera.Mirror,
	})

	s.app = app.New(log, camera, det, display, app.Config{
		Store:    s.store,
		Policy:   cfg.Policy(),
		MaxHands: cfg.Detector.MaxHands,
	})

	if err := s.app.LoadGestures(); err != nil {
		s.app.Stop()
		s.closeStore()
		return nil, fmt.Errorf("failed to load gestures: %w", err)
	}

	if err := s.app.Start(); err != nil {
		s.app.Stop()
		s.closeStore()
		return nil, err
	}

	return s, nil
}

func (s *session) Close() {
	s.app.Stop()
	s.closeStore()
	s.log.Close()
}

func (s *session) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.log.Warnf("Error closing store: %v", err)
	}
}
