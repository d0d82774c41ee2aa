package main

import (
	"log"

	"reviewhub-backend/internal/infrastructure/queue"
	"reviewhub-backend/pkg/container"
	"reviewhub-backend/pkg/logger"
)

type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(c *container.Container) *asynqScheduler {
	scheduler := queue.NewScheduler(c.Config.Redis.Addr, c.Config.Worker)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("failed to register scheduled jobs: %v", err)
	}

	go func() {
		logger.Info("scheduler starting", nil)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("scheduler failed: %v", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	s.Scheduler.Shutdown()
	logger.Info("scheduler stopped", nil)
}
