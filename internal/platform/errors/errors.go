package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("already exists")
	ErrInvalidState    = errors.New("invalid state")
	ErrPlaybackBlocked = errors.New("playback blocked")
)
