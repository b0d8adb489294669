package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formapp", Name: "http_requests_total", Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	RecordsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formapp", Name: "records_created_total", Help: "Records accepted by form intake",
	}, []string{"kind"})
	FormRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formapp", Name: "form_rejections_total", Help: "Rejected form submissions",
	}, []string{"kind", "reason"})
	Evaluations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formapp", Name: "evaluations_total", Help: "Admin evaluation passes written",
	}, []string{"kind"})
	LoginFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "formapp", Name: "login_failures_total", Help: "Failed login attempts",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "formapp", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, RecordsCreated, FormRejections, Evaluations, LoginFailures, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveRequest(method, route string, status int) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
