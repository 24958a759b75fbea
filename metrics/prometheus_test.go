package metrics

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestMetrics(t *testing.T) {
	assert := assert.New(t)

	before := testutil.ToFloat64(gm.DecodeErrorsCounterVec.WithLabelValues("truncated"))
	gm.DecodeErrorsCounterVec.WithLabelValues("truncated").Inc()
	assert.Equal(before+1, testutil.ToFloat64(gm.DecodeErrorsCounterVec.WithLabelValues("truncated")))

	gm.ConnectionOnlineGauge.Inc()
	gm.ConnectionOnlineGauge.Dec()
	gm.CommandCallHistogramVec.WithLabelValues("ping").Observe(0.001)
	gm.UnknownCommandCounter.Inc()
	gm.ProtocolViolatedCounter.Inc()

	level := testutil.ToFloat64(gm.LogMetricsCounterVec.WithLabelValues("respd_info"))
	assert.NoError(Measure(zapcore.Entry{LoggerName: "respd", Level: zapcore.InfoLevel}))
	assert.Equal(level+1, testutil.ToFloat64(gm.LogMetricsCounterVec.WithLabelValues("respd_info")))
}

func TestMetricsHandler(t *testing.T) {
	assert := assert.New(t)
	gm.UnknownCommandCounter.Inc()

	srv := httptest.NewServer(http.DefaultServeMux)
	defer srv.Close()

	rsp, err := http.Get(srv.URL + "/respd/metrics")
	assert.NoError(err)
	defer rsp.Body.Close()
	body, err := ioutil.ReadAll(rsp.Body)
	assert.NoError(err)
	assert.Contains(string(body), "respd_unknown_commands_total")
}
