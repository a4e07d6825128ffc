// Package service defines the lifecycle of long-lived client subsystems
package service

// Service is a long-lived subsystem: audio output, engine connection
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) with settings from config
//  3. Start() after every service initialized
//  4. Stop() on shutdown, idempotent
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init configures the service from optional, service-specific args
	Init(args ...any) error

	// Start begins operation
	Start() error

	// Stop halts operation and releases resources
	Stop() error
}

// ResourcePublisher receives resources exposed by services
type ResourcePublisher func(resource any)

// ResourceContributor is implemented by services exposing an API to the client
type ResourceContributor interface {
	Contribute(publish ResourcePublisher)
}
