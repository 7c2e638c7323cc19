package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"simba/models"
	"simba/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	entries []models.ActivityLog
	fail    bool
}

func (m *memStore) Create(_ context.Context, e models.ActivityLog) (string, error) {
	if m.fail {
		return "", errors.New("write failed")
	}
	m.entries = append(m.entries, e)
	return e.ID, nil
}

func (m *memStore) List(_ context.Context, f models.ActivityFilter) ([]models.ActivityLog, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

func (m *memStore) Summary(_ context.Context, since time.Time) (*models.ActivitySummary, error) {
	return &models.ActivitySummary{Total: int64(len(m.entries)), Since: since}, nil
}

type failingQueue struct{ calls int }

func (f *failingQueue) EnqueueContext(context.Context, *asynq.Task, ...asynq.Option) (*asynq.TaskInfo, error) {
	f.calls++
	return nil, errors.New("redis unavailable")
}

func TestDirectRecorderStampsRequestMeta(t *testing.T) {
	store := &memStore{}
	rec := &DirectRecorder{Store: store}
	ctx := WithRequestMeta(context.Background(), RequestMeta{RequestID: "req-1", IP: "10.0.0.9", UserAgent: "pos-terminal"})

	rec.Record(ctx, models.ActivityLog{Action: models.ActionPOSSale, Description: "sale"})

	require.Len(t, store.entries, 1)
	e := store.entries[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "10.0.0.9", e.IPAddress)
	assert.Equal(t, "pos-terminal", e.UserAgent)
	assert.Equal(t, models.SeverityInfo, e.Severity)
	assert.Equal(t, models.EntitySystem, e.EntityType)
	assert.Equal(t, "req-1", e.Metadata["requestId"])
	assert.False(t, e.CreatedAt.IsZero())
}

func TestDirectRecorderSwallowsStoreErrors(t *testing.T) {
	rec := &DirectRecorder{Store: &memStore{fail: true}}
	assert.NotPanics(t, func() {
		rec.Record(context.Background(), models.ActivityLog{Action: models.ActionLogin})
	})
}

func TestQueueRecorderFallsBack(t *testing.T) {
	store := &memStore{}
	queue := &failingQueue{}
	rec := &QueueRecorder{Client: queue, Fallback: &DirectRecorder{Store: store}}

	rec.Record(context.Background(), models.ActivityLog{Action: models.ActionPOSRefund, Description: "refund"})

	assert.Equal(t, 1, queue.calls)
	require.Len(t, store.entries, 1)
	assert.Equal(t, models.ActionPOSRefund, store.entries[0].Action)
}

func TestTrackValidatesClientEvents(t *testing.T) {
	store := &memStore{}
	svc := &DefaultActivityService{Store: store, Recorder: &DirectRecorder{Store: store}}

	err := svc.Track(context.Background(), models.ClientActivity{Action: "HACK", Description: "x"})
	assert.Equal(t, 400, utils.StatusFor(err))

	err = svc.Track(context.Background(), models.ClientActivity{Action: models.ActionPageView, Description: "x", Severity: "loud"})
	assert.Equal(t, 400, utils.StatusFor(err))

	require.NoError(t, svc.Track(context.Background(), models.ClientActivity{
		Action: models.ActionViewTour, Description: "viewed", EntityType: models.EntityTour, EntityID: "T1",
	}))
	require.Len(t, store.entries, 1)
	assert.Equal(t, "anonymous", store.entries[0].AdminID)
	require.NotNil(t, store.entries[0].EntityID)
	assert.Equal(t, "T1", *store.entries[0].EntityID)
}

func TestSummaryUsesLastDay(t *testing.T) {
	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	svc := &DefaultActivityService{Store: &memStore{}, Now: func() time.Time { return now }}
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now.Add(-24*time.Hour), summary.Since)
}
