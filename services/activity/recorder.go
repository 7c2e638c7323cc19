package activity

import (
	"context"
	"encoding/json"
	"time"

	"simba/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeActivityRecord is the asynq task type carrying one ActivityLog.
const TypeActivityRecord = "activity:record"

// NewActivityTask wraps entry in an asynq task.
func NewActivityTask(entry models.ActivityLog) (*asynq.Task, error) {
	b, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeActivityRecord, b, asynq.MaxRetry(3)), nil
}

// prepare fills the fields every stored event must carry.
func prepare(ctx context.Context, entry models.ActivityLog) models.ActivityLog {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.Severity == "" {
		entry.Severity = models.SeverityInfo
	}
	if entry.EntityType == "" {
		entry.EntityType = models.EntitySystem
	}
	meta := MetaFrom(ctx)
	if entry.IPAddress == "" {
		entry.IPAddress = meta.IP
	}
	if entry.UserAgent == "" {
		entry.UserAgent = meta.UserAgent
	}
	if meta.RequestID != "" {
		if entry.Metadata == nil {
			entry.Metadata = map[string]interface{}{}
		}
		if _, ok := entry.Metadata["requestId"]; !ok {
			entry.Metadata["requestId"] = meta.RequestID
		}
	}
	return entry
}

// DirectRecorder writes events synchronously to the store.
type DirectRecorder struct {
	Store interface {
		Create(ctx context.Context, entry models.ActivityLog) (string, error)
	}
}

func (r *DirectRecorder) Record(ctx context.Context, entry models.ActivityLog) {
	entry = prepare(ctx, entry)
	if _, err := r.Store.Create(context.WithoutCancel(ctx), entry); err != nil {
		zap.L().Error("activity: failed to write log",
			zap.String("action", entry.Action),
			zap.String("description", entry.Description),
			zap.Error(err))
	}
}

// Enqueuer is the part of *asynq.Client the queue recorder uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueRecorder hands events to the asynq worker and falls back to Fallback
// when the queue is unreachable.
type QueueRecorder struct {
	Client   Enqueuer
	Fallback Recorder
}

func (r *QueueRecorder) Record(ctx context.Context, entry models.ActivityLog) {
	entry = prepare(ctx, entry)
	task, err := NewActivityTask(entry)
	if err == nil {
		_, err = r.Client.EnqueueContext(context.WithoutCancel(ctx), task)
	}
	if err == nil {
		return
	}
	zap.L().Warn("activity: enqueue failed, writing directly",
		zap.String("action", entry.Action), zap.Error(err))
	if r.Fallback != nil {
		r.Fallback.Record(ctx, entry)
	}
}
