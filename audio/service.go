package audio

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/offerboard/service"
)

// Service wraps Player as a hub-managed service
// A missing backend degrades to silent playback, never to an error
type Service struct {
	config *Config
	logger zerolog.Logger
	player *Player
}

// NewService creates an audio service with default config
func NewService(logger zerolog.Logger) *Service {
	return &Service{
		config: DefaultConfig(),
		logger: logger.With().Str("component", "audio").Logger(),
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional) or bool mute flag
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		switch v := args[0].(type) {
		case *Config:
			if v != nil {
				s.config = v
			}
		case bool:
			s.config.Enabled = !v
		}
	}
	s.player = NewPlayer(s.config, s.logger)
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.player == nil {
		return nil
	}
	return s.player.Start()
}

// Stop implements service.Service
func (s *Service) Stop() error {
	s.player.Stop()
	return nil
}

// Contribute implements service.ResourceContributor
func (s *Service) Contribute(publish service.ResourcePublisher) {
	if s.player != nil {
		publish(s.player)
	}
}

// Player returns the player, nil before Init
func (s *Service) Player() *Player {
	return s.player
}
