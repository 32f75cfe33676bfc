package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	rec := NewRecorder("run-1")
	rec.ObserveCall("/classrooms", OutcomeOK, 10*time.Millisecond)
	rec.ObserveCall("/classrooms", OutcomeOK, 20*time.Millisecond)
	rec.ObserveCall("/rate_limit", OutcomeExecError, time.Millisecond)
	rec.SetRateRemaining(4990)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.callTotal.WithLabelValues("/classrooms", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.callTotal.WithLabelValues("/rate_limit", OutcomeExecError)))
	assert.Equal(t, 4990.0, testutil.ToFloat64(rec.rateRemain))
}

func TestWriteTextfile(t *testing.T) {
	rec := NewRecorder("run-2")
	rec.ObserveCall("/classrooms", OutcomeOK, time.Millisecond)

	path := filepath.Join(t.TempDir(), "gc.prom")
	require.NoError(t, rec.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `gh_api_calls_total{endpoint="/classrooms",outcome="ok",run_id="run-2"} 1`))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.ObserveCall("/x", OutcomeOK, time.Second)
	rec.SetRateRemaining(1)
	assert.NoError(t, rec.WriteTextfile("/nonexistent/path"))
}
