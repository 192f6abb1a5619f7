package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// so that login failures never reveal which field was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	// ErrStorage wraps infrastructure failures; callers decide whether to retry.
	ErrStorage = errors.New("storage unavailable")
)
