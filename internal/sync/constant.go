package sync

import "time"

const (
	ActivityMemoCreated = "memos.memo.created"
	ActivityMemoUpdated = "memos.memo.updated"
	ActivityMemoDeleted = "memos.memo.deleted"

	HeaderWebhookToken = "X-Webhook-Token"

	syncTimeout    = 2 * time.Minute
	maxSyncRetries = 3
	initialBackoff = 2 * time.Second
	knowledgeSrc   = "item"
)
