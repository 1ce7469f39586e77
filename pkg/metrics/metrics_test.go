package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNilReceiversAreSafe(t *testing.T) {
	var ingest *IngestMetrics
	ingest.ObserveDuration("create", time.Second)
	ingest.IncSuccess("create")
	ingest.IncFailure("reupload")

	var transitions *TransitionMetrics
	transitions.IncApplied("queued", "running")
	transitions.IncRejected("shipped", "queued")
}

func TestUnregisteredMetricsAreSafe(t *testing.T) {
	ingest := NewIngestMetrics(nil)
	ingest.IncSuccess("create")

	transitions := NewTransitionMetrics(nil)
	transitions.IncApplied("queued", "running")
}

func TestRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	ingest := NewIngestMetrics(reg)
	transitions := NewTransitionMetrics(reg)

	ingest.ObserveDuration("reupload", 250*time.Millisecond)
	ingest.IncSuccess("reupload")
	ingest.IncFailure("")
	transitions.IncApplied("queued", "running")
	transitions.IncRejected("shipped", "queued")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	require.True(t, names["orderform_ingest_duration_seconds"])
	require.True(t, names["orderform_ingest_success"])
	require.True(t, names["orderform_ingest_failure"])
	require.True(t, names["item_transition_applied"])
	require.True(t, names["item_transition_rejected"])
}
