package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mes/internal/adapters/out/metrics"
	"mes/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ commands.Recorder = (*metrics.Recorder)(nil)

// counterValues returns the values of counter family name keyed by their
// label values joined with ",".
func counterValues(t *testing.T, r *metrics.Recorder, name string) map[string]float64 {
	t.Helper()

	families, err := r.Registry().Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetValue())
			}
			values[strings.Join(labels, ",")] = m.GetCounter().GetValue()
		}
	}
	return values
}

func TestRecorder_Counters(t *testing.T) {
	r := metrics.NewRecorder()

	r.RecordSplit(3, 0)
	r.RecordSplit(1, 2)
	r.RecordSplitFailure()
	r.RecordRejection("update_task")
	r.RecordRejection("update_task")
	r.RecordRejection("delete_work_order")

	assert.Equal(t, map[string]float64{"": 2}, counterValues(t, r, "mes_work_order_splits_total"))
	assert.Equal(t, map[string]float64{"": 1}, counterValues(t, r, "mes_work_order_split_failures_total"))
	assert.Equal(t, map[string]float64{"": 4}, counterValues(t, r, "mes_tasks_created_total"))
	assert.Equal(t, map[string]float64{"": 2}, counterValues(t, r, "mes_tasks_deleted_total"))
	assert.Equal(t,
		map[string]float64{"update_task": 2, "delete_work_order": 1},
		counterValues(t, r, "mes_rule_rejections_total"),
	)
}

func TestRecorder_Handler(t *testing.T) {
	r := metrics.NewRecorder()
	r.RecordRequest(http.MethodGet, "/api/v1/workorders/:id", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body),
		`mes_http_request_duration_seconds_count{method="GET",route="/api/v1/workorders/:id",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
