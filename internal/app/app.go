package app

import (
	"fmt"
	"io"

	"github.com/abhisek/prepengine/internal/config"
	"github.com/abhisek/prepengine/internal/exam"
	"github.com/abhisek/prepengine/internal/logging"
	"github.com/abhisek/prepengine/internal/mastery"
	"github.com/abhisek/prepengine/internal/rng"
	"github.com/abhisek/prepengine/internal/selector"
	"github.com/abhisek/prepengine/internal/session"
	"github.com/abhisek/prepengine/internal/store"
	"github.com/sirupsen/logrus"
)

// Container aggregates the application dependencies for one command run.
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Store   *store.Store
	Service *session.Service
}

// Options tune a Container beyond what the config file covers.
type Options struct {
	// Seed fixes the randomness of selection and exam assembly; zero
	// draws a fresh seed.
	Seed int64

	// LogOutput receives log lines.
	LogOutput io.Writer
}

// New opens the store and wires the engine into a session service.
func New(cfg *config.Config, opts Options) (*Container, error) {
	logger, err := logging.NewLogger(cfg.Log, opts.LogOutput)
	if err != nil {
		return nil, err
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	logger.WithField("db", dbPath).Debug("store opened")

	src := rng.Random()
	if opts.Seed != 0 {
		src = rng.Seeded(opts.Seed)
	}

	svc := session.NewService(session.Deps{
		Questions:  st.Questions(),
		SkillStats: st.SkillStats(),
		Attempts:   st.Attempts(),
		Sessions:   st.Sessions(),
		Estimator:  mastery.NewEstimator(cfg.Mastery),
		Selector: selector.New(
			selector.WithThresholds(cfg.Difficulty),
			selector.WithSource(src),
		),
		Assembler:    exam.NewAssembler(cfg.Exam, src),
		Scorer:       exam.NewScorer(cfg.Scoring.Scale(), cfg.Scoring.RevisingPrefix),
		RecentWindow: cfg.Practice.RecentWindow,
		Logger:       logger,
	})

	return &Container{Config: cfg, Logger: logger, Store: st, Service: svc}, nil
}

// Close releases the store.
func (c *Container) Close() error {
	return c.Store.Close()
}
