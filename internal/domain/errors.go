package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrPartialSession  = errors.New("partial session: token and identity must be stored together")
	ErrNotAgent        = errors.New("viewer is not an agent")
)
