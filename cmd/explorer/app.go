package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"SeasonalityExplorer/internal/config"
	"SeasonalityExplorer/internal/generator"
	"SeasonalityExplorer/internal/recorder"
	"SeasonalityExplorer/internal/selection"
	"SeasonalityExplorer/internal/session"
)

// app is the wiring shared by every command.
type app struct {
	cfg  *config.Config
	log  *logrus.Logger
	loc  *time.Location
	rec  recorder.Recorder
	sess *session.Session
}

func configPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

// newApp loads config and builds the session. adjust may tweak the config
// before it is validated.
func newApp(cmd *cobra.Command, adjust func(cfg *config.Config)) (*app, error) {
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if adjust != nil {
		adjust(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	logger := cfg.NewLogger()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(logger.Formatter)
	logrus.SetLevel(logger.GetLevel())

	loc, _ := cfg.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	gen := generator.New(generator.Options{
		BasePrice:  cfg.Generator.BasePrice,
		Indicators: cfg.Generator.Indicators,
		Seed:       cfg.Generator.Seed,
		Now:        clock,
	})

	state := selection.New(clock())
	state.ViewMode = cfg.Defaults.ViewMode
	state.Layer = cfg.Defaults.DataLayer
	state.Theme = cfg.Defaults.ColorTheme
	state.Filters = cfg.Filters()

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logger.WithError(err).Warn("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	sess := session.New(gen, state, session.Options{
		Days:     cfg.Generator.Days,
		Location: loc,
		Now:      clock,
		Recorder: rec,
		Logger:   logger,
	})
	logger.WithFields(logrus.Fields{
		"session":  sess.ID(),
		"source":   gen.Name(),
		"days":     cfg.Generator.Days,
		"timezone": loc.String(),
	}).Debug("session created")

	return &app{cfg: cfg, log: logger, loc: loc, rec: rec, sess: sess}, nil
}

func (a *app) Close() {
	if err := a.rec.Close(); err != nil {
		a.log.WithError(err).Warn("close recorder")
	}
}
