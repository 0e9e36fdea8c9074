// Package service implements the periodic ranking component: on every pass
// it obtains a fresh corpus, runs both PageRank estimators concurrently,
// cross-checks their agreement and persists the converged scores.
package service

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/websurf/surfrank/corpus"
	"github.com/websurf/surfrank/pagerank"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/websurf/surfrank/service CorpusAPI,ScoreSink

// defaultMaxDivergence is the largest per-page disagreement between the two
// estimators that is considered normal sampling noise.
const defaultMaxDivergence = 0.02

// CorpusAPI defines a set of API methods for obtaining the corpus whose
// pages are to be ranked.
type CorpusAPI interface {
	Corpus() (corpus.Corpus, error)
}

// ScoreSink defines a set of API methods for persisting calculated PageRank
// scores.
type ScoreSink interface {
	UpsertScore(page string, score float64) error
}

// Config encapsulates the settings for configuring the ranking service.
type Config struct {
	// An API for obtaining the corpus to rank.
	CorpusAPI CorpusAPI

	// An API for persisting the PageRank score of each page.
	ScoreSink ScoreSink

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The time between subsequent ranking passes.
	UpdateInterval time.Duration

	// The damping factor passed to both estimators. If not specified, the
	// estimator default (0.85) will be used instead.
	DampingFactor float64

	// The number of random walk steps for the sampling estimator. If not
	// specified, the estimator default (10000) will be used instead.
	Samples int

	// The largest per-page difference between the sampled and the iterated
	// scores before the service logs a divergence warning. If not specified,
	// a default value of 0.02 will be used instead.
	MaxDivergence float64

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.CorpusAPI == nil {
		err = multierror.Append(err, xerrors.Errorf("corpus API has not been provided"))
	}
	if cfg.ScoreSink == nil {
		err = multierror.Append(err, xerrors.Errorf("score sink has not been provided"))
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.UpdateInterval == 0 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for update interval"))
	}
	if cfg.MaxDivergence < 0 || cfg.MaxDivergence >= 1.0 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for max divergence"))
	} else if cfg.MaxDivergence == 0 {
		cfg.MaxDivergence = defaultMaxDivergence
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}

// Service implements the periodic PageRank scoring component.
type Service struct {
	cfg      Config
	sampler  *pagerank.Sampler
	iterator *pagerank.Iterator
}

// NewService creates a new ranking service instance with the specified config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("ranking service: config validation failed: %w", err)
	}

	sampler, err := pagerank.NewSampler(pagerank.SamplerConfig{
		DampingFactor: cfg.DampingFactor,
		Samples:       cfg.Samples,
	})
	if err != nil {
		return nil, xerrors.Errorf("ranking service: config validation failed: %w", err)
	}

	iterator, err := pagerank.NewIterator(pagerank.IteratorConfig{
		DampingFactor: cfg.DampingFactor,
	})
	if err != nil {
		return nil, xerrors.Errorf("ranking service: config validation failed: %w", err)
	}

	return &Service{
		cfg:      cfg,
		sampler:  sampler,
		iterator: iterator,
	}, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "PageRank ranker" }

// Run implements service.Service
func (svc *Service) Run(ctx context.Context) error {
	svc.cfg.Logger.WithField("update_interval", svc.cfg.UpdateInterval.String()).Info("starting service")
	defer svc.cfg.Logger.Info("stopped service")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-svc.cfg.Clock.After(svc.cfg.UpdateInterval):
			if err := svc.updateScores(ctx); err != nil {
				return err
			}
		}
	}
}

func (svc *Service) updateScores(ctx context.Context) error {
	logger := svc.cfg.Logger.WithField("pass_id", uuid.New().String())
	logger.Info("starting ranking pass")
	startAt := svc.cfg.Clock.Now()

	tick := startAt
	c, err := svc.cfg.CorpusAPI.Corpus()
	if err != nil {
		return xerrors.Errorf("ranking pass: unable to obtain corpus: %w", err)
	}
	corpusLoadTime := svc.cfg.Clock.Now().Sub(tick)

	// The corpus is read-only from here on so both estimators can safely
	// share it.
	tick = svc.cfg.Clock.Now()
	var sampled, iterated pagerank.Scores
	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		var estErr error
		sampled, estErr = svc.sampler.Estimate(c)
		return estErr
	})
	group.Go(func() error {
		var estErr error
		iterated, estErr = svc.iterator.Estimate(c)
		return estErr
	})
	if err := group.Wait(); err != nil {
		return xerrors.Errorf("ranking pass: %w", err)
	}
	scoreCalculationTime := svc.cfg.Clock.Now().Sub(tick)

	divergence := maxDivergence(sampled, iterated)
	if divergence > svc.cfg.MaxDivergence {
		logger.WithField("max_divergence", divergence).Warn("estimators disagree beyond the configured tolerance; consider increasing the sample count")
	}

	tick = svc.cfg.Clock.Now()
	for page, score := range iterated {
		if err := svc.cfg.ScoreSink.UpsertScore(page, score); err != nil {
			return xerrors.Errorf("ranking pass: unable to persist score for %q: %w", page, err)
		}
	}
	scorePersistTime := svc.cfg.Clock.Now().Sub(tick)

	passesTotalCounter.Inc()
	passDurationGauge.Set(svc.cfg.Clock.Now().Sub(startAt).Seconds())
	divergenceGauge.Set(divergence)
	iterationPassesGauge.Set(float64(svc.iterator.Passes()))

	logger.WithFields(logrus.Fields{
		"processed_pages":        len(iterated),
		"iteration_passes":       svc.iterator.Passes(),
		"corpus_load_time":       corpusLoadTime.String(),
		"score_calculation_time": scoreCalculationTime.String(),
		"score_persist_time":     scorePersistTime.String(),
		"total_pass_time":        svc.cfg.Clock.Now().Sub(startAt).String(),
		"max_divergence":         divergence,
	}).Info("completed ranking pass")
	return nil
}

// maxDivergence returns the largest absolute per-page difference between two
// rank vectors over the union of their pages.
func maxDivergence(a, b pagerank.Scores) float64 {
	var max float64
	for page, score := range a {
		if delta := math.Abs(score - b[page]); delta > max {
			max = delta
		}
	}
	for page, score := range b {
		if delta := math.Abs(score - a[page]); delta > max {
			max = delta
		}
	}
	return max
}
