package shared

// Asynq task types and queue names.
const (
	TypePurgeInactiveAccounts = "user:purge_inactive"

	QueueUser = "user"
)
