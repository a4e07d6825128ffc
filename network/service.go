package network

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/offerboard/service"
)

// Service wraps Client as a hub-managed service
type Service struct {
	config     *Config
	httpClient *http.Client
	logger     zerolog.Logger
	client     *Client
}

// NewService creates a network service with default config
func NewService(logger zerolog.Logger) *Service {
	return &Service{
		config: DefaultConfig(),
		logger: logger,
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default)
// args[1]: *http.Client (optional)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}
	if len(args) > 1 {
		if hc, ok := args[1].(*http.Client); ok && hc != nil {
			s.httpClient = hc
		}
	}
	s.client = NewClient(s.httpClient, s.config, s.logger)
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.client == nil {
		return ErrNotInitialized
	}
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.client != nil {
		s.client.httpClient.CloseIdleConnections()
	}
	return nil
}

// Contribute implements service.ResourceContributor
func (s *Service) Contribute(publish service.ResourcePublisher) {
	if s.client == nil {
		return
	}
	publish(s.client)
}

// Client returns the initialized client, nil before Init
func (s *Service) Client() *Client {
	return s.client
}
