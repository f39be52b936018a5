package errno

import (
	"errors"
)

var (
	ErrNoMessages        = errors.New("messages must not be empty")
	ErrTransport         = errors.New("LLM call failed")
	ErrEmptyTurn         = errors.New("model returned no content")
	ErrIterationLimit    = errors.New("tool iteration limit exceeded")
	ErrToolCallsWithheld = errors.New("model requested tools while tools were withheld")
	ErrAborted           = errors.New("conversation aborted")
)
