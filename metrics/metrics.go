// Package metrics exports round statistics to Prometheus
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/simon/game"
	"github.com/lixenwraith/simon/play"
)

// Collector records play loop events into Prometheus metrics
type Collector struct {
	rounds   *prometheus.CounterVec
	answers  *prometheus.CounterVec
	steps    prometheus.Counter
	length   prometheus.Gauge
	final    prometheus.Histogram
	duration prometheus.Histogram

	now     func() time.Time
	started time.Time
	current int
}

// NewCollector creates the collectors and registers them with reg
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "simon_rounds_total",
			Help: "Finished rounds by outcome",
		}, []string{"outcome"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "simon_answers_total",
			Help: "Button answers by correctness",
		}, []string{"correct"}),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simon_steps_shown_total",
			Help: "Sequence steps played back",
		}),
		length: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "simon_sequence_length",
			Help: "Sequence length of the round in progress, grown after each fully correct turn",
		}),
		final: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "simon_final_length",
			Help:    "Sequence length when a round ended",
			Buckets: prometheus.LinearBuckets(game.InitialLength, 1, game.MaxLength-game.InitialLength+2),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "simon_round_duration_seconds",
			Help:    "Wall time from round start to end",
			Buckets: prometheus.ExponentialBuckets(5, 2, 8),
		}),
		now: time.Now,
	}

	for _, col := range []prometheus.Collector{c.rounds, c.answers, c.steps, c.length, c.final, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) RoundStarted(length int) {
	c.started = c.now()
	c.current = length
	c.length.Set(float64(length))
}

func (c *Collector) StepShown(int, game.Move) {
	c.steps.Inc()
}

func (c *Collector) AnswerGiven(index int, _ game.Move, correct bool) {
	if correct {
		c.answers.WithLabelValues("true").Inc()
		// The loop appends one step once the last answer of a turn is right
		if index == c.current-1 {
			c.current++
			c.length.Set(float64(c.current))
		}
		return
	}
	c.answers.WithLabelValues("false").Inc()
}

func (c *Collector) RoundEnded(o play.Outcome) {
	outcome := "loss"
	if o.Won {
		outcome = "win"
	}
	c.rounds.WithLabelValues(outcome).Inc()
	c.current = o.Length
	c.length.Set(float64(o.Length))
	c.final.Observe(float64(o.Length))
	if !c.started.IsZero() {
		c.duration.Observe(c.now().Sub(c.started).Seconds())
	}
}

var _ play.Observer = (*Collector)(nil)

// NewHandler serves /metrics for gatherer and a /healthz probe
func NewHandler(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	return r
}

// Server is the metrics HTTP listener
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Listen binds addr; Serve must be called to accept connections
func Listen(addr string, handler http.Handler) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		srv: &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}, nil
}

// Addr returns the bound address
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Serve blocks until Shutdown
func (s *Server) Serve() error {
	if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
