// Package metrics объявляет счетчики prometheus сервиса заметок.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stickynotes"

// Значения метки result.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics - набор счетчиков, зарегистрированных в одном реестре.
type Metrics struct {
	registry        *prometheus.Registry
	storeOperations *prometheus.CounterVec
	noteMutations   *prometheus.CounterVec
	notesTotal      prometheus.Gauge
	httpRequests    *prometheus.CounterVec
}

// New создает отдельный реестр и регистрирует в нем счетчики.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		storeOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Store adapter reads and writes by operation and result.",
		}, []string{"op", "result"}),
		noteMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "note_mutations_total",
			Help:      "Notes repository mutations by operation.",
		}, []string{"op"}),
		notesTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notes",
			Help:      "Number of notes currently held in memory.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
	}
}

// Registry возвращает реестр для экспорта через HTTP.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// StoreOperation учитывает операцию адаптера хранилища.
func (m *Metrics) StoreOperation(op string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.storeOperations.WithLabelValues(op, result).Inc()
}

// NoteMutation учитывает изменение коллекции и ее новый размер.
func (m *Metrics) NoteMutation(op string, size int) {
	if m == nil {
		return
	}
	m.noteMutations.WithLabelValues(op).Inc()
	m.notesTotal.Set(float64(size))
}

// HTTPRequest учитывает обработанный HTTP запрос. route - шаблон маршрута, а не путь.
func (m *Metrics) HTTPRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
