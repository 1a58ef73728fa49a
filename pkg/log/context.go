package log

import "context"

type ctxKey int

const (
	conversationIDKey ctxKey = iota
	requestIDKey
)

// WithConversationID attaches a conversation id that is added to every log line.
func WithConversationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, conversationIDKey, id)
}

// WithRequestID attaches a request id that is added to every log line.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ConversationID returns the conversation id stored in ctx, if any.
func ConversationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(conversationIDKey).(string)
	return id
}

func contextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var fields []any
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		fields = append(fields, "request_id", id)
	}
	if id, ok := ctx.Value(conversationIDKey).(string); ok && id != "" {
		fields = append(fields, "conversation_id", id)
	}
	return fields
}
