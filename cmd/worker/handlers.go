package main

import (
	"github.com/hibiken/asynq"

	"reviewhub-backend/internal/domains/user/job"
	"reviewhub-backend/internal/shared"
	"reviewhub-backend/pkg/container"
)

// HandlerRegistry holds every job handler the worker serves.
type HandlerRegistry struct {
	purgeInactive *job.PurgeInactiveAccountsHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		purgeInactive: job.NewPurgeInactiveAccountsHandler(c.UserRepo),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypePurgeInactiveAccounts, h.purgeInactive.ProcessTask)
}
