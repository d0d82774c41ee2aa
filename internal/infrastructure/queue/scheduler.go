package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"reviewhub-backend/internal/config"
	"reviewhub-backend/internal/domains/user/job"
	"reviewhub-backend/internal/shared"
	"reviewhub-backend/pkg/logger"
)

// Scheduler registers periodic maintenance tasks with asynq.
type Scheduler struct {
	scheduler *asynq.Scheduler
	worker    config.WorkerConfig
}

func NewScheduler(redisAddr string, worker config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler, worker: worker}
}

// RegisterJobs wires every recurring job. Currently only one: purging
// accounts that signed up but never exchanged their confirmation code.
func (s *Scheduler) RegisterJobs() error {
	return s.registerPurgeInactiveAccountsJob()
}

func (s *Scheduler) registerPurgeInactiveAccountsJob() error {
	payload, err := json.Marshal(job.PurgeInactiveAccountsPayload{
		OlderThanHours: s.worker.InactivePurgeAfterHours,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePurgeInactiveAccounts, payload)

	_, err = s.scheduler.Register(
		s.worker.CleanupSchedule,
		task,
		asynq.Queue(shared.QueueUser),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("failed to register PurgeInactiveAccounts job", err)
		return err
	}

	logger.Info("registered PurgeInactiveAccounts job", map[string]interface{}{
		"schedule":         s.worker.CleanupSchedule,
		"older_than_hours": s.worker.InactivePurgeAfterHours,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
