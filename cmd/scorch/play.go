package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/scorch-runner/internal/core"
	"github.com/vovakirdan/scorch-runner/internal/platform/tui"
	"github.com/vovakirdan/scorch-runner/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [character]",
	Short: "Enter the zone",
	Long: `Start a run with the given character, or the last one you picked.

Controls:
  Left/Right, A/D  - Change lane
  Up/W/Space       - Jump
  Down/S           - Slide
  P                - Pause (any move resumes)
  1-4              - Answer a chance card
  R                - Restart (after game over)
  Esc              - Leave the zone
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start, gentler ramp, longer grace
  normal - Config defaults
  hard   - Faster start and steeper ramp
  fixed  - No speed ramp

Examples:
  scorch play
  scorch play sand-ranger
  scorch play --difficulty hard --seed 42
  scorch play --config ./my-runner.yaml --log run.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	p := openPrefs()

	character := p.Character()
	if len(args) == 1 {
		if err := p.SetCharacter(args[0]); err != nil {
			if _, getErr := registry.Get(args[0]); getErr != nil {
				fail("%v\nRun 'scorch characters' to see available runners.", getErr)
			}
			stderrLog.Warn("could not remember character", "error", err)
		}
		character = args[0]
	}

	preset, err := resolvePreset(p)
	if err != nil {
		fail("%v", err)
	}
	cfg, err := loadRunnerConfig(preset)
	if err != nil {
		fail("%v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	bank, err := loadQuestions(seed)
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newSessionLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore()

	runErr := tui.Run(tui.RunOptions{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:   width,
			ScreenH:   height,
			TickRate:  flagFPS,
			Seed:      seed,
			Character: character,
		},
		Questions: bank,
		Store:     store,
		Logger:    logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running zone: %v", runErr)
	}
}
