package session

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes Prometheus instrumentation for session lifecycle
// operations. A nil *Metrics disables all instrumentation, so the Manager
// can call its methods unconditionally.
type Metrics struct {
	created prometheus.Counter
	gets    *prometheus.CounterVec
	saves   prometheus.Counter
	deletes prometheus.Counter
	swept   prometheus.Counter
	errors  *prometheus.CounterVec
}

// NewMetrics builds and registers session metrics against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sessionstore_sessions_created_total",
			Help: "Total number of sessions created",
		}),
		gets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sessionstore_session_gets_total",
			Help: "Total number of session lookups by result",
		}, []string{"result"}), // result = "hit", "miss", "expired"
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sessionstore_session_saves_total",
			Help: "Total number of session saves",
		}),
		deletes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sessionstore_session_deletes_total",
			Help: "Total number of session deletions",
		}),
		swept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sessionstore_sessions_swept_total",
			Help: "Total number of expired sessions removed by cleanup",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sessionstore_storage_errors_total",
			Help: "Total number of storage failures by operation",
		}, []string{"operation"}),
	}

	reg.MustRegister(m.created, m.gets, m.saves, m.deletes, m.swept, m.errors)
	return m
}

func (m *Metrics) observeCreate() {
	if m == nil {
		return
	}
	m.created.Inc()
}

func (m *Metrics) observeGet(result string) {
	if m == nil {
		return
	}
	m.gets.WithLabelValues(result).Inc()
}

func (m *Metrics) observeSave() {
	if m == nil {
		return
	}
	m.saves.Inc()
}

func (m *Metrics) observeDelete() {
	if m == nil {
		return
	}
	m.deletes.Inc()
}

func (m *Metrics) observeSwept(count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.swept.Add(float64(count))
}

func (m *Metrics) observeError(operation string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(operation).Inc()
}
