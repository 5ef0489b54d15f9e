package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不应panic（promauto重复注册会panic）

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, ReviewsUpsertedTotal)
	assert.NotNil(t, RatingRecomputeDuration)
	assert.NotNil(t, CircuitBreakerState)
	assert.NotNil(t, SagaExecutionsTotal)
	assert.NotNil(t, MessagesPublishedTotal)
}

func TestCounter(t *testing.T) {
	InitMetrics()

	before := counterValue(t, SagaCompensationsTotal)
	IncCounter(SagaCompensationsTotal)
	IncCounter(SagaCompensationsTotal)

	assert.Equal(t, before+2, counterValue(t, SagaCompensationsTotal))
}

func TestCounterVec(t *testing.T) {
	InitMetrics()

	success := map[string]string{"result": "success"}
	failure := map[string]string{"result": "failure"}
	before := counterVecValue(t, ReviewsUpsertedTotal, success)

	IncCounterVec(ReviewsUpsertedTotal, success)
	IncCounterVec(ReviewsUpsertedTotal, failure)
	IncCounterVec(ReviewsUpsertedTotal, success)

	assert.Equal(t, before+2, counterVecValue(t, ReviewsUpsertedTotal, success))
}

func TestGauge(t *testing.T) {
	InitMetrics()

	SetGauge(HTTPRequestsInProgress, 0)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	assert.Equal(t, float64(2), gaugeValue(t, HTTPRequestsInProgress))

	DecGauge(HTTPRequestsInProgress)
	assert.Equal(t, float64(1), gaugeValue(t, HTTPRequestsInProgress))

	SetGauge(HTTPRequestsInProgress, 0)
}

func TestGaugeVec(t *testing.T) {
	InitMetrics()

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "stripe"}, 2)
	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "other"}, 0)

	g, err := CircuitBreakerState.GetMetricWithLabelValues("stripe")
	require.NoError(t, err)
	assert.Equal(t, float64(2), gaugeValue(t, g))
}

func TestHistogram(t *testing.T) {
	InitMetrics()

	beforeCount, beforeSum := histogramStats(t, RatingRecomputeDuration)
	ObserveHistogram(RatingRecomputeDuration, 0.01)
	ObserveHistogram(RatingRecomputeDuration, 0.04)

	count, sum := histogramStats(t, RatingRecomputeDuration)
	assert.Equal(t, beforeCount+2, count)
	assert.InDelta(t, beforeSum+0.05, sum, 1e-9)
}

func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "GET", "path": "/api/v1/reviews/list/:bookId"}
	obs, err := HTTPRequestDuration.GetMetricWith(labels)
	require.NoError(t, err)
	beforeCount, _ := histogramStats(t, obs.(prometheus.Histogram))

	ObserveHistogramVec(HTTPRequestDuration, labels, 0.05)
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.1)
	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "POST", "path": "/api/v1/reviews"}, 0.2)

	count, _ := histogramStats(t, obs.(prometheus.Histogram))
	assert.Equal(t, beforeCount+2, count)
}

func TestHelpersTolerateNil(t *testing.T) {
	assert.NotPanics(t, func() {
		IncCounter(nil)
		IncCounterVec(nil, nil)
		IncGauge(nil)
		DecGauge(nil)
		SetGauge(nil, 1)
		SetGaugeVec(nil, nil, 1)
		ObserveHistogram(nil, 1)
		ObserveHistogramVec(nil, nil, 1)
	})
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func counterVecValue(t *testing.T, vec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	c, err := vec.GetMetricWith(labels)
	require.NoError(t, err)
	return counterValue(t, c)
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func histogramStats(t *testing.T, h prometheus.Histogram) (uint64, float64) {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}
