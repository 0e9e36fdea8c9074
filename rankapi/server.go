// Package rankapi exposes the most recently calculated PageRank scores over
// a small JSON HTTP API.
package rankapi

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/websurf/surfrank/pagerank"
	"github.com/websurf/surfrank/scorestore"
)

const (
	scoresEndpoint  = "/scores"
	scoreEndpoint   = "/scores/{page}"
	metricsEndpoint = "/metrics"
)

// ScoreAPI defines a set of API methods for reading calculated PageRank
// scores.
type ScoreAPI interface {
	Score(page string) (float64, error)
	Scores() (pagerank.Scores, error)
	UpdatedAt() time.Time
}

// Config encapsulates the settings for configuring the score API service.
type Config struct {
	// An API for reading the calculated PageRank scores.
	ScoreAPI ScoreAPI

	// The address to listen for incoming requests.
	ListenAddr string

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.ScoreAPI == nil {
		err = multierror.Append(err, xerrors.Errorf("score API has not been provided"))
	}
	if cfg.ListenAddr == "" {
		err = multierror.Append(err, xerrors.Errorf("listen address has not been specified"))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}

// pageScore is the JSON representation of a single ranked page.
type pageScore struct {
	Page  string  `json:"page"`
	Score float64 `json:"score"`
}

// scoreList is the JSON representation of a full ranking.
type scoreList struct {
	UpdatedAt time.Time   `json:"updated_at"`
	Results   []pageScore `json:"results"`
}

// Service implements the HTTP API for querying PageRank scores.
type Service struct {
	cfg    Config
	router *mux.Router
}

// NewService creates a new score API service instance with the specified
// config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("score API service: config validation failed: %w", err)
	}

	svc := &Service{
		cfg:    cfg,
		router: mux.NewRouter(),
	}

	svc.router.HandleFunc(scoresEndpoint, svc.listScores).Methods("GET")
	svc.router.HandleFunc(scoreEndpoint, svc.getScore).Methods("GET")
	svc.router.Handle(metricsEndpoint, promhttp.Handler()).Methods("GET")
	svc.router.NotFoundHandler = http.HandlerFunc(svc.notFound)
	return svc, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "score API" }

// Run implements service.Service
func (svc *Service) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", svc.cfg.ListenAddr)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	srv := &http.Server{
		Addr:    svc.cfg.ListenAddr,
		Handler: svc.router,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	svc.cfg.Logger.WithField("addr", svc.cfg.ListenAddr).Info("starting score API server")
	if err = srv.Serve(l); err == http.ErrServerClosed {
		// Ignore error when the server shuts down.
		err = nil
	}

	return err
}

func (svc *Service) listScores(w http.ResponseWriter, _ *http.Request) {
	scores, err := svc.cfg.ScoreAPI.Scores()
	if err != nil {
		svc.renderError(w, http.StatusInternalServerError, "unable to read scores")
		return
	}

	list := scoreList{
		UpdatedAt: svc.cfg.ScoreAPI.UpdatedAt(),
		Results:   make([]pageScore, 0, len(scores)),
	}
	for page, score := range scores {
		list.Results = append(list.Results, pageScore{Page: page, Score: score})
	}
	// Best-ranked pages first; page name breaks score ties.
	sort.Slice(list.Results, func(i, j int) bool {
		if list.Results[i].Score != list.Results[j].Score {
			return list.Results[i].Score > list.Results[j].Score
		}
		return list.Results[i].Page < list.Results[j].Page
	})

	svc.renderJSON(w, http.StatusOK, list)
}

func (svc *Service) getScore(w http.ResponseWriter, r *http.Request) {
	page := mux.Vars(r)["page"]
	score, err := svc.cfg.ScoreAPI.Score(page)
	if err != nil {
		if xerrors.Is(err, scorestore.ErrNotFound) {
			svc.renderError(w, http.StatusNotFound, "page not found")
			return
		}
		svc.renderError(w, http.StatusInternalServerError, "unable to read score")
		return
	}

	svc.renderJSON(w, http.StatusOK, pageScore{Page: page, Score: score})
}

func (svc *Service) notFound(w http.ResponseWriter, _ *http.Request) {
	svc.renderError(w, http.StatusNotFound, "endpoint not found")
}

func (svc *Service) renderJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		svc.cfg.Logger.WithField("err", err).Error("unable to encode response")
	}
}

func (svc *Service) renderError(w http.ResponseWriter, status int, message string) {
	svc.renderJSON(w, status, map[string]string{"error": message})
}
