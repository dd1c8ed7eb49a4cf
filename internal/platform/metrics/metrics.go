package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives session lifecycle events.
type Recorder interface {
	SessionStarted(origin string)
	SessionFinished(outcome string)
	AlarmRaised()
	SetActive(active bool)
}

type Prometheus struct {
	started  *prometheus.CounterVec
	finished *prometheus.CounterVec
	alarms   prometheus.Counter
	active   prometheus.Gauge
}

func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		started: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "focusfence_sessions_started_total",
			Help: "Focus sessions started, by origin",
		}, []string{"origin"}),
		finished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "focusfence_sessions_finished_total",
			Help: "Focus sessions finished, by outcome",
		}, []string{"outcome"}),
		alarms: factory.NewCounter(prometheus.CounterOpts{
			Name: "focusfence_alarms_raised_total",
			Help: "Attention alarms raised during sessions",
		}),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Name: "focusfence_session_active",
			Help: "1 while a focus session is running",
		}),
	}
}

func (p *Prometheus) SessionStarted(origin string) {
	p.started.WithLabelValues(origin).Inc()
}

func (p *Prometheus) SessionFinished(outcome string) {
	p.finished.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) AlarmRaised() {
	p.alarms.Inc()
}

func (p *Prometheus) SetActive(active bool) {
	if active {
		p.active.Set(1)
		return
	}
	p.active.Set(0)
}

// Noop is used when metrics are disabled.
type Noop struct{}

func (Noop) SessionStarted(string)  {}
func (Noop) SessionFinished(string) {}
func (Noop) AlarmRaised()           {}
func (Noop) SetActive(bool)         {}

// Serve exposes reg on addr under /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve metrics: %w", err)
	}
}
