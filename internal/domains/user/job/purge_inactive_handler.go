package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"reviewhub-backend/internal/domains/user"
	"reviewhub-backend/pkg/logger"
)

// PurgeInactiveAccountsPayload configures one purge run.
type PurgeInactiveAccountsPayload struct {
	OlderThanHours int `json:"older_than_hours"`
}

// PurgeInactiveAccountsHandler removes accounts that signed up but never
// exchanged their confirmation code. Their codes have long expired; a
// fresh signup with the same pair simply starts over.
type PurgeInactiveAccountsHandler struct {
	userRepo user.Repository
}

func NewPurgeInactiveAccountsHandler(userRepo user.Repository) *PurgeInactiveAccountsHandler {
	return &PurgeInactiveAccountsHandler{userRepo: userRepo}
}

func (h *PurgeInactiveAccountsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload PurgeInactiveAccountsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("failed to unmarshal purge payload", err)
		return err
	}

	if payload.OlderThanHours <= 0 {
		payload.OlderThanHours = 72
	}

	cutoff := time.Now().Add(-time.Duration(payload.OlderThanHours) * time.Hour)

	purged, err := h.userRepo.PurgeInactive(ctx, cutoff)
	if err != nil {
		logger.Error("failed to purge inactive accounts", err)
		return err
	}

	log.Info().
		Time("cutoff", cutoff).
		Int("accounts_purged", purged).
		Msg("Purged inactive accounts")

	return nil
}
