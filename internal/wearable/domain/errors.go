package domain

import "errors"

var (
	ErrNotConnected  = errors.New("ultrahuman not connected")
	ErrEmailRequired = errors.New("email is required for direct sync")
)
