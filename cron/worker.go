package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"simba/config"
	"simba/models"
	"simba/services/activity"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ActivityWriter persists one delivered activity event.
type ActivityWriter interface {
	Create(ctx context.Context, entry models.ActivityLog) (string, error)
}

// QueueRedisOpt is the asynq connection shared by the client and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitActivityWorker runs the async activity-log worker in background until ctx is done.
func InitActivityWorker(ctx context.Context, writer ActivityWriter) {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: zap.L().Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(activity.TypeActivityRecord, HandleActivityTask(writer))

	go monitorRedisConnection(ctx)

	go func() {
		logger := zap.L().With(zap.String("component", "activity-worker"))
		logger.Info("Starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(mux); err != nil {
				logger.Warn("failed to start worker", zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Error("max retry attempts reached; activity events will be written directly")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
				continue
			}
			break
		}
		<-ctx.Done()
		srv.Shutdown()
	}()
}

// HandleActivityTask decodes an ActivityLog payload and stores it.
func HandleActivityTask(writer ActivityWriter) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var entry models.ActivityLog
		if err := json.Unmarshal(task.Payload(), &entry); err != nil {
			zap.L().Error("activity task: invalid payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if _, err := writer.Create(ctx, entry); err != nil {
			zap.L().Warn("activity task: write failed", zap.String("action", entry.Action), zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings the queue Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				zap.L().Warn("activity worker: redis connection lost", zap.Error(err))
			}
		}
	}
}
