// scorch is an endless three-lane runner through a scorched desert, played
// in the terminal.
//
// Usage:
//
//	scorch play [character]  - Enter the zone directly
//	scorch menu              - Pick a runner interactively
//	scorch characters        - List available runners
//	scorch scores [runner]   - Show run history
//	scorch questions         - List the chance-card question bank
//	scorch serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible layouts
//	--db <path>           - Set database path (default: ~/.scorch/runs.db)
//	--config <path>       - Custom runner config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--questions <path>    - Custom question bank YAML
//	--log <path>          - Write a session log
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/scorch-runner/internal/config"
	"github.com/vovakirdan/scorch-runner/internal/prefs"
	"github.com/vovakirdan/scorch-runner/internal/quiz"
	"github.com/vovakirdan/scorch-runner/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagQuestions  string
	flagLogPath    string
)

// stderrLog reports warnings before and after the TUI owns the terminal.
var stderrLog = log.NewWithOptions(os.Stderr, log.Options{Prefix: "scorch"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scorch",
	Short: "Scorch Runner - an endless lane runner in your terminal",
	Long: `Scorch Runner is an endless three-lane runner through a scorched desert.
Dodge cacti and tornadoes, collect saplings, water and solar panels, and
answer climate chance cards to keep your score climbing.

Available commands:
  play        - Enter the zone directly
  menu        - Interactive runner picker
  characters  - Show all runners
  scores      - View run history
  questions   - List the chance-card questions
  serve       - Start SSH server for remote play

Examples:
  scorch play
  scorch play ice-sentinel --difficulty hard
  scorch menu
  scorch scores solar-ranger
  scorch serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagQuestions, "questions", "", "Path to custom question bank YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write a session log to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(charactersCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// resolvePreset picks the difficulty: the flag wins over remembered prefs.
func resolvePreset(p *prefs.Store) (config.DifficultyPreset, error) {
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		return preset, nil
	}
	if p != nil {
		return p.Difficulty(), nil
	}
	return "", nil
}

// loadRunnerConfig loads the runner config and applies the preset.
func loadRunnerConfig(preset config.DifficultyPreset) (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyRunnerPreset(&cfg, preset)
	return cfg, nil
}

// loadQuestions loads the question bank, embedded unless --questions is set.
func loadQuestions(seed int64) (*quiz.Bank, error) {
	return quiz.LoadBank(flagQuestions, seed)
}

// openStore opens run history. A failure only disables history.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		stderrLog.Warn("could not open run history", "error", err)
		return nil
	}
	return store
}

// openPrefs opens remembered preferences, falling back to memory.
func openPrefs() *prefs.Store {
	p, err := prefs.Open()
	if err != nil {
		stderrLog.Warn("preferences will not be saved", "error", err)
	}
	return p
}

// newSessionLogger returns the logger for a TUI session. Without --log the
// output is discarded since the TUI owns the terminal.
func newSessionLogger() (*log.Logger, func(), error) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "scorch",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}
