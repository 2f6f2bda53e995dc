package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulntor/hostkit/pkg/dbenv"
	"github.com/vulntor/hostkit/pkg/guid"
)

func TestManualClock(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	start := time.Date(2024, time.February, 28, 22, 30, 0, 0, loc)
	c := NewManualClock(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start, c.CurrentServerTime())
	assert.Equal(t, time.Date(2024, time.February, 28, 0, 0, 0, 0, loc), c.Today())
	assert.Equal(t, time.Date(2024, time.February, 28, 19, 30, 0, 0, time.UTC), c.UTCNow())
	assert.Equal(t, c.UTCNow(), c.CurrentUTCTime())

	next := c.Advance(2 * time.Hour)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 30, 0, 0, loc), next)
	assert.Equal(t, 29, c.Today().Day())

	c.Set(start)
	assert.Equal(t, start, c.Now())

	days, err := c.DaysInMonth(2024, time.February)
	require.NoError(t, err)
	assert.Equal(t, 29, days)
}

func TestSequentialGUIDs(t *testing.T) {
	g := NewSequentialGUIDs(1)

	assert.Equal(t, uuid.MustParse("00000000-0000-0000-0000-000000000001"), g.New())
	assert.Equal(t, uuid.MustParse("00000000-0000-0000-0000-000000000002"), g.New())
	assert.Equal(t, uuid.Nil, g.Empty())

	id, err := g.Parse("{00000000-0000-0000-0000-0000000000ff}")
	require.NoError(t, err)
	s, err := g.Format(id, guid.FormatN)
	require.NoError(t, err)
	assert.Equal(t, "000000000000000000000000000000ff", s)
}

func TestAssertDisplayName(t *testing.T) {
	AssertDisplayName(t, dbenv.DatabaseEnvironment{}, "ConnectionStringName", "Connection Name")
	AssertDisplayName(t, dbenv.DatabaseEnvironment{}, "DatabaseName", "Database Name")
	AssertDisplayName(t, &dbenv.DatabaseEnvironment{}, "ServerName", "Server")
}

func TestCreateString(t *testing.T) {
	assert.Equal(t, "", CreateString(0))
	assert.Equal(t, "", CreateString(-1))
	assert.Equal(t, "aaaaa", CreateString(5))
	assert.Len(t, CreateString(4096), 4096)
}
