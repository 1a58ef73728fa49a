package orchestrator

import "errors"

var (
	ErrMissingConversation = errors.New("conversation id is required")
	ErrEmptyInput          = errors.New("message has neither text nor file")
	ErrNothingToCommit     = errors.New("no items to create")
)
