package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bnema/astropost/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCountsEvents(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.TopicGenerated(domain.TopicAries)
	c.TopicGenerated(domain.TopicTaurus)
	c.TopicSkipped(domain.TopicGemini, "image")
	c.PublishAttempted(domain.PublishModeSequential, true)
	c.PublishAttempted(domain.PublishModeSequential, false)
	c.CycleFinished(domain.TriggerScheduled, domain.CycleOutcomePartial)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.topics.WithLabelValues("generated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.topics.WithLabelValues("skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.skips.WithLabelValues("image")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.publishes.WithLabelValues("sequential", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cycles.WithLabelValues("scheduled", "partial")))

	assert.Equal(t, Totals{Generated: 2, Skipped: 1, Cycles: 1}, c.Totals())
}

func TestCollectorHandlerServesRegistry(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.CycleFinished(domain.TriggerManual, domain.CycleOutcomePublished)

	server := httptest.NewServer(c.Handler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `astropost_cycles_total{outcome="published",trigger="manual"} 1`))
}
