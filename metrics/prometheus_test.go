package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cubo/core"
	"github.com/hupe1980/cubo/resource"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestPrometheus_ObserveResolution(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(WithRegistry(reg))

	p.ObserveResolution(core.SourceLocal, "app.json", nil, 10*time.Millisecond)
	p.ObserveResolution(core.SourceRemote, "https://example.test/a", errors.New("boom"), time.Millisecond)
	p.ObserveResolution(core.SourceRemote, "https://example.test/b", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, reg, "cubo_resolver_resolutions_total", map[string]string{"kind": "local", "outcome": "ok"}))
	assert.Equal(t, 2.0, counterValue(t, reg, "cubo_resolver_resolutions_total", map[string]string{"kind": "remote", "scheme": "https", "outcome": "fallback"}))
}

func TestPrometheus_WiredIntoResolver(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(WithRegistry(reg), WithNamespace("site"))

	store := resource.NewInMemoryStore()
	store.Put("app.json", []byte(`{"a":1}`))

	r := core.NewResolver(func(o *core.ResolverOptions) {
		o.Reader = store
		o.Observer = p
	})

	r.Resolve(context.Background(), "app.json")
	r.Resolve(context.Background(), "missing.json")
	r.Resolve(context.Background(), map[string]any{"inline": true}) // not observed

	assert.Equal(t, 1.0, counterValue(t, reg, "site_resolver_resolutions_total", map[string]string{"outcome": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "site_resolver_resolutions_total", map[string]string{"outcome": "fallback"}))
}
