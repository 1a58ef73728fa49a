package sync

// MemosWebhookPayload matches Memos API v1 webhook format.
type MemosWebhookPayload struct {
	ActivityType string `json:"activityType"` // e.g., "memos.memo.created"
	Memo         struct {
		Name string `json:"name"` // e.g., "memos/123"
		UID  string `json:"uid"`
	} `json:"memo"`
}

// SecurityConfig holds webhook security settings.
type SecurityConfig struct {
	Secret     string   // Shared token sent in HeaderWebhookToken
	AllowedIPs []string // IP or CIDR allow-list, optional
}
