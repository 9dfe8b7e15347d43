package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.ObserveBatch("genes", 3)
	r.ObserveBatch("genes", 2)
	r.ObserveRun(nil, time.Second)
	r.ObserveRun(errors.New("boom"), time.Second)

	assert.Equal(t, 5.0, testutil.ToFloat64(r.RowsWritten.WithLabelValues("genes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Runs.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Runs.WithLabelValues("failure")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveBatch("genes", 1)
		r.ObserveRun(nil, time.Second)
	})
}
