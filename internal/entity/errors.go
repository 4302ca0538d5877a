package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMalformedResponse = errors.New("malformed generation response")
	ErrUnknownAction     = errors.New("unknown action")
)

// TransitionError descreve uma ação rejeitada pela política de status.
// O registro nunca é alterado quando este erro é retornado.
type TransitionError struct {
	Action string
	From   OutreachStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s from status %q", e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
