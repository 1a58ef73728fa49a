package document

import "errors"

var (
	ErrEmptyInstruction = errors.New("follow-up instruction is empty")
	ErrNoItems          = errors.New("no items extracted")
)
