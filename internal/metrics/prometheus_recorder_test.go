package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveBuildDuration(1500 * time.Millisecond)
	pr.IncBuildOutcome(OutcomeSelected)
	pr.SetBuildCandidates(2)
	pr.ObserveToolDuration("nm", 20*time.Millisecond)
	pr.IncToolExit("nm", 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	require.True(t, names["cargo_binutils_build_duration_seconds"])
	require.True(t, names["cargo_binutils_build_outcomes_total"])
	require.True(t, names["cargo_binutils_tool_exits_total"])
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveBuildDuration(time.Second)
	pr.IncBuildOutcome(OutcomeFailed)
	pr.SetBuildCandidates(1)
	pr.ObserveToolDuration("size", time.Second)
	pr.IncToolExit("size", 1)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncBuildOutcome(OutcomeAmbiguous)

	path := filepath.Join(t.TempDir(), "binutils.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `cargo_binutils_build_outcomes_total{outcome="ambiguous"} 1`))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveBuildDuration(time.Second)
	r.IncBuildOutcome(OutcomeNoMatch)
	r.SetBuildCandidates(0)
	r.ObserveToolDuration("strip", time.Second)
	r.IncToolExit("strip", 0)
}
