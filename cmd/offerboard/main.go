package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/offerboard/audio"
	"github.com/lixenwraith/offerboard/config"
	"github.com/lixenwraith/offerboard/core"
	"github.com/lixenwraith/offerboard/dice"
	"github.com/lixenwraith/offerboard/network"
	"github.com/lixenwraith/offerboard/orientation"
	"github.com/lixenwraith/offerboard/render"
	"github.com/lixenwraith/offerboard/service"
	"github.com/lixenwraith/offerboard/status"
	"github.com/lixenwraith/offerboard/token"
	"github.com/lixenwraith/offerboard/turn"
)

func main() {
	// Restore the terminal before reporting a panic on the main goroutine
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	cfg, err := config.Load("offerboard", os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "offerboard: %v\n", err)
		os.Exit(1)
	}

	logFile, logger := setupLogging(cfg.Debug)
	code := 0
	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("exit with error")
		fmt.Fprintf(os.Stderr, "offerboard: %v\n", err)
		code = 1
	}
	if logFile != nil {
		logFile.Close()
	}
	os.Exit(code)
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	theme, err := render.LoadTheme(cfg.Theme)
	if err != nil {
		return err
	}

	metrics := status.NewRegistry()

	hub := service.NewHub()
	if err := hub.Register(network.NewService(logger), audio.NewService(logger)); err != nil {
		return err
	}
	if err := hub.InitAll(map[string][]any{
		"network": {cfg.Network()},
		"audio":   {cfg.Audio()},
	}); err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	if err := hub.StartAll(); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	defer func() {
		if err := hub.StopAll(); err != nil {
			logger.Warn().Err(err).Msg("service shutdown")
		}
	}()

	var (
		client *network.Client
		player *audio.Player
	)
	hub.Contribute(func(resource any) {
		switch r := resource.(type) {
		case *network.Client:
			client = r
		case *audio.Player:
			player = r
		}
	})
	if client == nil {
		return errors.New("network client unavailable")
	}

	ui := render.NewUI(render.Options{Theme: theme, Mode: cfg.ColorMode(), Logger: logger})
	core.SetFinalizer(ui.Stop)

	ctrl := orientation.New(ui.Board, cfg.RotationStep())
	ctrl.SetStepHook(func() { player.Play(audio.CueRotate) })

	tok := token.New(ui.Board, cfg.Step)
	tok.SetStepHook(func(int) {
		metrics.Inc(status.TokenSteps)
		player.Play(audio.CueTokenStep)
	})

	dc := dice.New(ui.Board)
	dc.SetTickHook(func() {
		metrics.Inc(status.DiceTicks)
		player.Play(audio.CueDiceTick)
	})

	ui.Banner.SetShowHook(func(kind string) {
		metrics.Inc(status.OutcomesShown)
		player.Play(audio.CueForOutcome(kind))
	})

	seq := turn.NewSequencer(turn.Deps{
		Client:    client,
		Session:   turn.NewSession(ctrl),
		Token:     tok,
		Dice:      dc,
		Board:     ui.Board,
		HUD:       ui.HUD,
		Control:   ui.HUD,
		Banner:    ui.Banner,
		Questions: ui.Question,
		Metrics:   metrics,
		Logger:    logger,
		Timing:    cfg.Timing(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ui.Bind(render.Actions{
		Roll: func() {
			if err := seq.InitiateTurn(ctx); err != nil && !turn.IsRejection(err) {
				logger.Debug().Err(err).Msg("turn ended with error")
			}
		},
		NewGame: func() {
			if err := seq.NewGame(ctx); err != nil {
				logger.Debug().Err(err).Msg("new game failed")
			}
		},
		Dismiss: seq.DismissOutcome,
		Submit: func(text string) {
			if err := seq.AnswerQuestion(ctx, text); err != nil {
				logger.Debug().Err(err).Msg("answer failed")
			}
		},
		Cancel: seq.CancelQuestion,
		Quit:   ui.Stop,
	})

	logger.Info().
		Str("server", cfg.ServerURL).
		Str("session", seq.Session().ID()).
		Bool("audio", !player.Silent()).
		Msg("offerboard starting")

	err = ui.Run(func() {
		if err := seq.Start(ctx); err != nil {
			logger.Warn().Err(err).Msg("initial sync failed")
		}
	})
	cancel()
	logger.Info().Str("metrics", metrics.Summary()).Msg("offerboard stopped")
	return err
}
