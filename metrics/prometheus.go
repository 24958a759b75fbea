package metrics

import (
	"net/http"

	"go.uber.org/zap/zapcore"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	//promethus default namespace
	namespace = "respd"

	//promethues default label key
	command   = "command"
	kind      = "kind"
	labelName = "level"
)

var (
	//Label value slice when creating prometheus object
	commandLabel = []string{command}
	kindLabel    = []string{kind}

	// global prometheus object
	gm *Metrics
)

//Metrics prometheus statistics
type Metrics struct {
	//connection
	ConnectionOnlineGauge   prometheus.Gauge
	ConnectionTotalCounter  prometheus.Counter
	DecodeErrorsCounterVec  *prometheus.CounterVec
	ProtocolViolatedCounter prometheus.Counter

	//command
	CommandCallHistogramVec *prometheus.HistogramVec
	UnknownCommandCounter   prometheus.Counter

	//logger
	LogMetricsCounterVec *prometheus.CounterVec
}

//init create global object
func init() {
	gm = &Metrics{}

	gm.CommandCallHistogramVec = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_call_seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 20),
			Help:      "The cost times of command call",
		}, commandLabel)
	prometheus.MustRegister(gm.CommandCallHistogramVec)

	gm.UnknownCommandCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_commands_total",
			Help:      "The total of commands which are not recognized",
		})
	prometheus.MustRegister(gm.UnknownCommandCounter)

	gm.ConnectionOnlineGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connect_online_number",
			Help:      "The number of online connection",
		})
	prometheus.MustRegister(gm.ConnectionOnlineGauge)

	gm.ConnectionTotalCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "The total of accepted connections",
		})
	prometheus.MustRegister(gm.ConnectionTotalCounter)

	gm.DecodeErrorsCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "The total of connections closed by a decode error",
		}, kindLabel)
	prometheus.MustRegister(gm.DecodeErrorsCounterVec)

	gm.ProtocolViolatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_violations_total",
			Help:      "The total of requests which are not an array of bulk strings",
		})
	prometheus.MustRegister(gm.ProtocolViolatedCounter)

	gm.LogMetricsCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logs_entries_total",
			Help:      "Number of logs of certain level",
		},
		[]string{labelName},
	)
	prometheus.MustRegister(gm.LogMetricsCounterVec)

	http.Handle("/respd/metrics", promhttp.Handler())
}

//GetMetrics return metrics object
func GetMetrics() *Metrics {
	return gm
}

//Measure logger level rate
func Measure(e zapcore.Entry) error {
	label := e.LoggerName + "_" + e.Level.String()
	gm.LogMetricsCounterVec.WithLabelValues(label).Inc()
	return nil
}
