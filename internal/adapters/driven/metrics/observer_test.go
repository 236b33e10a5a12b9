package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample returns the value of the first metric named name whose labels
// contain all of want.
func sample(t *testing.T, o *Observer, name string, want map[string]string) float64 {
	t.Helper()

	families, err := o.Registry().Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, m := range family.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, want)
	return 0
}

func TestObserver_ProviderCall(t *testing.T) {
	o := NewObserver()

	o.ProviderCall("youtube", "ok", 120*time.Millisecond)
	o.ProviderCall("youtube", "ok", 80*time.Millisecond)
	o.ProviderCall("youtube", "timeout", 8*time.Second)

	assert.Equal(t, 2.0, sample(t, o, "skillscout_provider_calls_total",
		map[string]string{"provider": "youtube", "outcome": "ok"}))
	assert.Equal(t, 1.0, sample(t, o, "skillscout_provider_calls_total",
		map[string]string{"provider": "youtube", "outcome": "timeout"}))
	assert.Equal(t, 3.0, sample(t, o, "skillscout_provider_call_duration_seconds",
		map[string]string{"provider": "youtube"}))
}

func TestObserver_CascadeAndDiscovery(t *testing.T) {
	o := NewObserver()

	o.CascadeFinished("github", "sufficient", 1)
	o.DiscoveryFinished("skill", "providers", 5, time.Second)
	o.DiscoveryFinished("skill", "cache", 5, time.Millisecond)

	assert.Equal(t, 1.0, sample(t, o, "skillscout_cascades_total",
		map[string]string{"provider": "github", "state": "sufficient"}))
	assert.Equal(t, 1.0, sample(t, o, "skillscout_discoveries_total",
		map[string]string{"kind": "skill", "origin": "cache"}))
	assert.Equal(t, 2.0, sample(t, o, "skillscout_discovery_results", nil))
}

func TestObserver_BreakerState(t *testing.T) {
	o := NewObserver()

	o.BreakerStateChanged("mdn", "closed", "open")
	assert.Equal(t, 2.0, sample(t, o, "skillscout_provider_breaker_state", map[string]string{"provider": "mdn"}))

	o.BreakerStateChanged("mdn", "open", "half-open")
	assert.Equal(t, 1.0, sample(t, o, "skillscout_provider_breaker_state", map[string]string{"provider": "mdn"}))
}

func TestObserver_Handler(t *testing.T) {
	o := NewObserver()
	o.ProviderCall("coursera", "empty", time.Millisecond)

	rec := httptest.NewRecorder()
	o.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `skillscout_provider_calls_total{outcome="empty",provider="coursera"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
