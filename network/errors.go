package network

import "errors"

var (
	ErrUpstream       = errors.New("engine returned an error status")
	ErrDecode         = errors.New("engine response could not be decoded")
	ErrNotInitialized = errors.New("network service not initialized")
)
