package assistant

import "errors"

var (
	ErrFileTooLarge     = errors.New("file exceeds the upload limit")
	ErrUnsupportedFile  = errors.New("file type is not supported")
	ErrNoPendingSession = errors.New("no pending document for this conversation")
)
