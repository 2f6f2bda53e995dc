package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulntor/hostkit/pkg/clock"
	"github.com/vulntor/hostkit/pkg/config"
	"github.com/vulntor/hostkit/pkg/dbenv"
	"github.com/vulntor/hostkit/pkg/testutil"
)

type mapConns map[string]string

func (m mapConns) ConnectionString(name string) string { return m[name] }

type stubFactory struct{}

func (stubFactory) CreateFromConnectionString(keyName, _ string) dbenv.DatabaseEnvironment {
	return dbenv.DatabaseEnvironment{ConnectionStringName: keyName, ServerName: "stub"}
}

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Host.Application = "Shop"
	cfg.Host.Environment = "Testing"
	cfg.Host.ContentRoot = "/srv/shop"
	cfg.Host.WebRoot = "/srv/shop/wwwroot"
	return cfg
}

func TestNew_RegistersEveryDefault(t *testing.T) {
	s := New(testConfig(), nil, zerolog.Nop())

	assert.IsType(t, clock.System{}, s.Clock)
	assert.NotNil(t, s.ServerClock)
	assert.NotNil(t, s.Durations)
	assert.NotNil(t, s.GUIDs)
	assert.NotNil(t, s.Paths)
	assert.NotNil(t, s.Files)
	assert.NotNil(t, s.Directories)
	assert.NotNil(t, s.Slugs)
	assert.NotNil(t, s.Databases)
	require.NotNil(t, s.Environment)

	env := s.Environment.Current(nil)
	assert.Equal(t, "Shop", env.ApplicationName)
	assert.Equal(t, "Testing", env.EnvironmentName)
	assert.Equal(t, "/srv/shop", env.ContentRootPath)
	assert.Equal(t, "/srv/shop/wwwroot", env.WebRootPath)
}

func TestNew_EnvironmentUsesConnectionStrings(t *testing.T) {
	s := New(testConfig(), mapConns{"Main": "Server=sql;Database=Shop"}, zerolog.Nop())

	env := s.Environment.Current([]string{"Main"})
	require.Len(t, env.Databases, 1)
	assert.Equal(t, dbenv.DatabaseEnvironment{ConnectionStringName: "Main", ServerName: "sql", DatabaseName: "Shop"}, env.Databases[0])
}

func TestNew_OptionsReplaceDefaults(t *testing.T) {
	fixed := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	mc := testutil.NewManualClock(fixed)
	seq := testutil.NewSequentialGUIDs(7)

	s := New(testConfig(), nil, zerolog.Nop(),
		WithClock(mc),
		WithServerClock(mc),
		WithGUIDs(seq),
		WithDatabases(stubFactory{}),
	)

	assert.Equal(t, fixed, s.Clock.Now())
	assert.Equal(t, fixed, s.ServerClock.CurrentUTCTime())
	assert.Equal(t, "00000000-0000-0000-0000-000000000007", s.GUIDs.New().String())

	env := s.Environment.Current([]string{"Main"})
	require.Len(t, env.Databases, 1)
	assert.Equal(t, "stub", env.Databases[0].ServerName, "environment service uses the substituted factory")
}

func TestHostEnvironment(t *testing.T) {
	host := HostEnvironment(testConfig())
	assert.Equal(t, "Shop", host.ApplicationName)
	assert.Equal(t, "/srv/shop", host.ContentRootPath)
	assert.Equal(t, "/srv/shop/wwwroot", host.WebRootPath)
	assert.Equal(t, "Testing", host.EnvironmentName)
}
