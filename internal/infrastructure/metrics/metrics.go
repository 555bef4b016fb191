package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/conversion"
)

const namespace = "produccion"

var _ conversion.Recorder = (*Recorder)(nil)

// Recorder métricas Prometheus del motor de conversión y del servidor HTTP.
type Recorder struct {
	registry *prometheus.Registry

	calculations  *prometheus.CounterVec
	commits       *prometheus.CounterVec
	commitSeconds prometheus.Histogram
	consumedTons  prometheus.Counter
	httpRequests  *prometheus.CounterVec
}

// New registra los colectores en un registro propio (más los de proceso y runtime de Go).
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversion_calculations_total",
			Help:      "Cálculos de conversión por resultado (feasible, blocked, error).",
		}, []string{"result"}),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversion_commits_total",
			Help:      "Confirmaciones de producción por resultado (committed, rejected, failed).",
		}, []string{"outcome"}),
		commitSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_commit_duration_seconds",
			Help:      "Duración de la transacción de confirmación.",
			Buckets:   prometheus.DefBuckets,
		}),
		consumedTons: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "raw_material_consumed_tons_total",
			Help:      "Toneladas de materia prima consumidas por producciones confirmadas.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		r.calculations, r.commits, r.commitSeconds, r.consumedTons, r.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// CalculationObserved cuenta un cálculo exitoso, factible o bloqueado por empaque.
func (r *Recorder) CalculationObserved(feasible bool) {
	result := "blocked"
	if feasible {
		result = "feasible"
	}
	r.calculations.WithLabelValues(result).Inc()
}

// CalculationFailed cuenta un cálculo que falló por infraestructura.
func (r *Recorder) CalculationFailed() {
	r.calculations.WithLabelValues("error").Inc()
}

// CommitObserved registra una confirmación y, si hubo commit, las toneladas consumidas.
func (r *Recorder) CommitObserved(outcome string, elapsed time.Duration, consumedTons decimal.Decimal) {
	r.commits.WithLabelValues(outcome).Inc()
	r.commitSeconds.Observe(elapsed.Seconds())
	if outcome == conversion.OutcomeCommitted && consumedTons.IsPositive() {
		r.consumedTons.Add(consumedTons.InexactFloat64())
	}
}

// HTTPRequestObserved cuenta un request ya respondido. route es el patrón, no la URL.
func (r *Recorder) HTTPRequestObserved(method, route string, status int) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler expone el registro en formato Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry para tests y colectores extra.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
