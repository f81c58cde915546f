package module

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerary/internal/modkit"
	modreg "itinerary/internal/modkit/module"
	"itinerary/internal/platform/config"
	"itinerary/internal/platform/store"
	nsdom "itinerary/internal/services/nightshift/domain"
)

func TestFromConfig(t *testing.T) {
	o := FromConfig(config.New())
	assert.Zero(t, o.MaxAge)
	assert.Equal(t, time.Hour, o.Interval)

	t.Setenv("CORE_ARTIFACTS_MAX_AGE", "72h")
	t.Setenv("CORE_ARTIFACTS_SWEEP_EVERY", "10m")
	o = FromConfig(config.New())
	assert.Equal(t, 72*time.Hour, o.MaxAge)
	assert.Equal(t, 10*time.Minute, o.Interval)
}

func TestNew_ExposesRunner(t *testing.T) {
	t.Setenv("CORE_ARTIFACTS_MAX_AGE", "1h")
	fs, err := store.NewFS(t.TempDir(), nil)
	require.NoError(t, err)

	m := New(modkit.Deps{Cfg: config.New(), Artifacts: fs})
	assert.Equal(t, Name, m.Name())

	runner := modreg.MustPortsOf[nsdom.RunnerPort](m)
	rep, err := runner.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rep.Removed)
	assert.False(t, rep.Cutoff.IsZero())
}

func TestNew_WithoutArtifactsIsNoop(t *testing.T) {
	m := New(modkit.Deps{Cfg: config.New()})
	runner := modreg.MustPortsOf[nsdom.RunnerPort](m)
	rep, err := runner.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rep)
}

func TestRegister(t *testing.T) {
	t.Cleanup(modreg.Reset)
	m := Register(modkit.Deps{Cfg: config.New()})
	p, ok := modreg.PortsAs[Ports](m.Name())
	require.True(t, ok)
	assert.NotNil(t, p.Runner)
}
