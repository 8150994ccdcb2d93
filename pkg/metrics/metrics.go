package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas Prometheus de la aplicación, expuestas en /metrics.
var (
	// MovementsRecorded movimientos de bitácora confirmados, por tipo.
	MovementsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "almacen",
		Name:      "movements_recorded_total",
		Help:      "Movimientos de inventario confirmados (commit), por tipo.",
	}, []string{"kind"})

	// HTTPRequests peticiones HTTP atendidas, por método, ruta y estado.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "almacen",
		Name:      "http_requests_total",
		Help:      "Peticiones HTTP atendidas.",
	}, []string{"method", "route", "status"})
)
