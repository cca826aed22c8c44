package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordTiming(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpDetect, 10*time.Millisecond)
	c.RecordTiming(OpDetect, 30*time.Millisecond)

	snap := c.Snapshot()
	require.Contains(t, snap.Ops, OpDetect)

	s := snap.Ops[OpDetect]
	assert.Equal(t, int64(2), s.Count)
	assert.Equal(t, int64(40), s.TotalTimeMs)
	assert.Equal(t, 20.0, s.AvgTimeMs)
	assert.Equal(t, int64(10), s.MinTimeMs)
	assert.Equal(t, int64(30), s.MaxTimeMs)
	assert.NotContains(t, snap.Ops, OpLoadGraph, "operations without data are omitted")
}

func TestCollector_Time(t *testing.T) {
	c := NewCollector()
	boom := errors.New("boom")

	err := c.Time(OpLoadGraph, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	require.NoError(t, c.Time(OpLoadGraph, func() error { return nil }))

	assert.Equal(t, int64(2), c.Snapshot().Ops[OpLoadGraph].Count)
}
