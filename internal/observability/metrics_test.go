package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.RowsRead.Add(902297)
	m.RowsKept.Add(653530)
	m.RowsExcluded.WithLabelValues("before_cutoff").Add(248757)
	m.RowsExcluded.WithLabelValues("unparseable_date").Add(10)
	m.StageDuration.WithLabelValues("load").Observe(2.5)

	path := filepath.Join(t.TempDir(), "metrics", "storm_report.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "storm_report_rows_read_total 902297")
	assert.Contains(t, out, "storm_report_rows_kept_total 653530")
	assert.Contains(t, out, `storm_report_rows_excluded_total{reason="before_cutoff"} 248757`)
	assert.Contains(t, out, `storm_report_stage_duration_seconds_count{stage="load"} 1`)
}

func TestWriteTextfile_EmptyPathSkips(t *testing.T) {
	m := NewMetrics()
	assert.NoError(t, m.WriteTextfile(""))
}

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	// Two instances must not collide; each run owns its registry.
	a := NewMetrics()
	b := NewMetrics()
	a.RowsRead.Inc()
	b.RowsRead.Add(5)

	path := filepath.Join(t.TempDir(), "a.prom")
	require.NoError(t, a.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "storm_report_rows_read_total 1")
}
