package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/websurf/surfrank/corpus"
	"github.com/websurf/surfrank/pagerank"
	"github.com/websurf/surfrank/rankapi"
	"github.com/websurf/surfrank/scorestore"
	"github.com/websurf/surfrank/service"
)

var (
	appName = "surfrank"
	appSha  = "populated-at-link-time"
	logger  *logrus.Entry
)

func main() {
	_ = godotenv.Load()

	host, _ := os.Hostname()
	rootLogger := logrus.New()
	rootLogger.SetFormatter(new(logrus.JSONFormatter))
	logger = rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	if err := makeApp().Run(os.Args); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		_ = os.Stderr.Sync()
		os.Exit(1)
	}
}

func makeApp() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Version = appSha
	app.Usage = "estimate PageRank scores for a directory of hyperlinked HTML documents"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "corpus-dir",
			EnvVar: "CORPUS_DIR",
			Usage:  "The directory containing the HTML documents to rank",
		},
		cli.Float64Flag{
			Name:   "damping-factor",
			Value:  pagerank.DefaultDampingFactor,
			EnvVar: "DAMPING_FACTOR",
			Usage:  "The probability that the random surfer follows a link instead of teleporting",
		},
		cli.IntFlag{
			Name:   "samples",
			Value:  pagerank.DefaultSampleCount,
			EnvVar: "SAMPLES",
			Usage:  "The number of random walk steps for the sampling estimator",
		},
	}
	app.Action = runOnce
	app.Commands = []cli.Command{
		{
			Name:  "serve",
			Usage: "periodically re-rank the corpus and expose the scores over an HTTP API",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "listen-addr",
					Value:  ":8080",
					EnvVar: "LISTEN_ADDR",
					Usage:  "The address to listen for incoming API requests",
				},
				cli.DurationFlag{
					Name:   "update-interval",
					Value:  5 * time.Minute,
					EnvVar: "UPDATE_INTERVAL",
					Usage:  "The time between subsequent ranking passes",
				},
			},
			Action: runServe,
		},
	}
	return app
}

// runOnce builds a corpus from the flag-selected directory, runs both
// estimators and prints their rankings, mirroring the layout of the original
// demo tool.
func runOnce(appCtx *cli.Context) error {
	c, err := loadCorpus(appCtx.GlobalString("corpus-dir"))
	if err != nil {
		return err
	}

	sampler, err := pagerank.NewSampler(pagerank.SamplerConfig{
		DampingFactor: appCtx.GlobalFloat64("damping-factor"),
		Samples:       appCtx.GlobalInt("samples"),
	})
	if err != nil {
		return err
	}
	iterator, err := pagerank.NewIterator(pagerank.IteratorConfig{
		DampingFactor: appCtx.GlobalFloat64("damping-factor"),
	})
	if err != nil {
		return err
	}

	sampled, err := sampler.Estimate(c)
	if err != nil {
		return err
	}
	printScores(fmt.Sprintf("PageRank Results from Sampling (n = %d)", appCtx.GlobalInt("samples")), c, sampled)

	iterated, err := iterator.Estimate(c)
	if err != nil {
		return err
	}
	printScores("PageRank Results from Iteration", c, iterated)
	return nil
}

func runServe(appCtx *cli.Context) error {
	corpusDir := appCtx.GlobalString("corpus-dir")
	if _, err := loadCorpus(corpusDir); err != nil {
		// Surface corpus problems at startup rather than on the first pass.
		return err
	}

	var wg sync.WaitGroup
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	store := scorestore.NewInMemory()

	rankerCfg := service.Config{
		CorpusAPI:      dirCorpusSource{dir: corpusDir},
		ScoreSink:      store,
		UpdateInterval: appCtx.Duration("update-interval"),
		DampingFactor:  appCtx.GlobalFloat64("damping-factor"),
		Samples:        appCtx.GlobalInt("samples"),
		Logger:         logger,
	}
	rankerSvc, err := service.NewService(rankerCfg)
	if err != nil {
		return err
	}

	apiSvc, err := rankapi.NewService(rankapi.Config{
		ScoreAPI:   store,
		ListenAddr: appCtx.String("listen-addr"),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := rankerSvc.Run(ctx); err != nil {
			logger.WithField("err", err).Error("ranking service exited with error")
			cancelFn()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := apiSvc.Run(ctx); err != nil {
			logger.WithField("err", err).Error("score API service exited with error")
			cancelFn()
		}
	}()

	// Start signal watcher
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			logger.WithField("signal", s.String()).Infof("shutting down due to signal")
			cancelFn()
		case <-ctx.Done():
		}
	}()

	// Keep running until we receive a signal
	wg.Wait()
	return nil
}

// dirCorpusSource re-crawls a directory of HTML documents on every ranking
// pass so document edits are picked up without restarting the service.
type dirCorpusSource struct {
	dir string
}

func (s dirCorpusSource) Corpus() (corpus.Corpus, error) {
	return corpus.FromDirectory(s.dir)
}

func loadCorpus(dir string) (corpus.Corpus, error) {
	if dir == "" {
		return nil, xerrors.Errorf("corpus directory must be specified with --corpus-dir")
	}

	c, err := corpus.FromDirectory(dir)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func printScores(header string, c corpus.Corpus, scores pagerank.Scores) {
	fmt.Println(header)
	for _, page := range c.Pages() {
		fmt.Printf("  %s: %.4f\n", page, scores[page])
	}
}
