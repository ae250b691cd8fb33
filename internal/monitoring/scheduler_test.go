package monitoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrphanDeleter struct {
	calls   int
	deleted int64
	err     error
}

func (f *fakeOrphanDeleter) DeleteOrphanTasks(context.Context) (int64, error) {
	f.calls++
	return f.deleted, f.err
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	_, err := NewScheduler(&fakeOrphanDeleter{}, "every now and then")
	assert.Error(t, err)
}

func TestSweepOnce(t *testing.T) {
	store := &fakeOrphanDeleter{deleted: 3}
	s, err := NewScheduler(store, "@every 1h")
	require.NoError(t, err)

	n, err := s.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.Equal(t, 1, store.calls)
}

func TestSweepLogsFailure(t *testing.T) {
	store := &fakeOrphanDeleter{err: errors.New("store down")}
	s, err := NewScheduler(store, "*/5 * * * *")
	require.NoError(t, err)

	assert.NotPanics(t, s.sweep)
	assert.Equal(t, 1, store.calls)
}

func TestRunAndStop(t *testing.T) {
	s, err := NewScheduler(&fakeOrphanDeleter{}, "@every 1h")
	require.NoError(t, err)

	s.Run()
	s.Stop()
}
