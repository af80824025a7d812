package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/scorch-runner/internal/core"
	"github.com/vovakirdan/scorch-runner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a runner interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a runner, Enter to enter the zone.
Leaving the zone (Esc) brings you back to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Enter the zone
  D            - Cycle difficulty
  Tab          - Run history
  Q            - Quit

Examples:
  scorch menu
  scorch menu --fps 30
  scorch menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	p := openPrefs()
	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	logger, closeLog, err := newSessionLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, p, rt)
		if err != nil {
			stderrLog.Error("menu failed", "error", err)
			break
		}

		rt = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				stderrLog.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.Character == "" {
			break
		}

		preset, err := resolvePreset(p)
		if err != nil {
			fail("%v", err)
		}
		cfg, err := loadRunnerConfig(preset)
		if err != nil {
			fail("%v", err)
		}

		// Fresh layout each run unless a seed was pinned
		if flagSeed == 0 {
			rt.Seed = time.Now().UnixNano()
		}
		bank, err := loadQuestions(rt.Seed)
		if err != nil {
			fail("%v", err)
		}

		run := rt
		run.Character = menuResult.Character
		if err := tui.Run(tui.RunOptions{
			Config:    cfg,
			Runtime:   run,
			Questions: bank,
			Store:     store,
			Logger:    logger,
		}); err != nil {
			stderrLog.Error("run failed", "error", err)
		}
	}
}
