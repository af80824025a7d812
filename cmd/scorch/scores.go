package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/scorch-runner/internal/registry"
	"github.com/vovakirdan/scorch-runner/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresStats  bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [character]",
	Short: "Show run history",
	Long: `Display the best runs, optionally for one runner.

Examples:
  scorch scores
  scorch scores ice-sentinel
  scorch scores --recent --limit 5
  scorch scores --stats
  scorch scores sand-ranger --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-runner statistics")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the shown history")
}

func runScores(_ *cobra.Command, args []string) {
	character := ""
	title := "All runners"
	if len(args) == 1 {
		c, err := registry.Get(args[0])
		if err != nil {
			fail("%v\nRun 'scorch characters' to see available runners.", err)
		}
		character = c.ID
		title = c.Title
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run history: %v", err)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearRuns(character); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared run history - %s\n", title)
	case flagScoresStats:
		printStats(store, character)
	default:
		printRuns(store, character, title)
	}
}

func printRuns(store *storage.Store, character, title string) {
	var (
		runs []storage.RunRecord
		err  error
	)
	if flagScoresRecent {
		runs, err = store.RecentRuns(flagScoresLimit)
		title = "Recent runs"
	} else {
		runs, err = store.TopRuns(character, flagScoresLimit)
	}
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Printf("Run History - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'scorch play' to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-7s  %-14s  %-9s  %-5s  %-6s  %-10s  %s\n", "Rank", "Score", "Runner", "Ended by", "Wrong", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-14s  %-9s  %-5s  %-6s  %-10s  %s\n", "----", "-----", "------", "--------", "-----", "----", "------", "----")

	for i, r := range runs {
		ended := r.EndReason
		if ended == "" {
			ended = "left"
		}
		fmt.Printf("  %-4d  %-7d  %-14s  %-9s  %-5d  %-6s  %-10s  %s\n",
			i+1, r.Score, registry.Lookup(r.Character).Title, ended, r.WrongAnswers,
			fmt.Sprintf("%ds", r.Duration), r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if !flagScoresRecent {
		if high, err := store.HighScore(character); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d\n", high)
		}
	}
}

func printStats(store *storage.Store, character string) {
	all, err := store.AllCharacterStats()
	if err != nil {
		fail("retrieving stats: %v", err)
	}
	if character != "" {
		st, ok := all[character]
		all = map[string]*storage.RunStats{}
		if ok {
			all[character] = st
		}
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-14s  %-5s  %-6s  %-7s  %-7s  %-8s  %-8s  %-6s  %s\n", "Runner", "Runs", "Best", "Avg", "Longest", "Obstacle", "Quiz", "Health", "Last played")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-14s  %-5d  %-6d  %-7.1f  %-7s  %-8d  %-8d  %-6d  %s\n",
			registry.Lookup(id).Title, st.Runs, st.HighScore, st.AvgScore,
			fmt.Sprintf("%ds", st.LongestRun),
			st.EndReasons["obstacle"], st.EndReasons["quiz"], st.EndReasons["health"],
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
