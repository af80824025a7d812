package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/scorch-runner/internal/registry"
)

var charactersCmd = &cobra.Command{
	Use:     "characters",
	Aliases: []string{"list"},
	Short:   "List all runners",
	Long:    `Shows every runner skin. The one marked with * is used by 'scorch play' without arguments.`,
	Run:     runCharacters,
}

func runCharacters(_ *cobra.Command, _ []string) {
	chars := registry.List()

	if len(chars) == 0 {
		fmt.Println("No runners available.")
		return
	}

	selected := openPrefs().Character()

	fmt.Println("Available runners:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, c := range chars {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	fmt.Printf("      %-*s  %-14s  %s\n", maxIDLen, "ID", "Title", "About")
	fmt.Printf("      %-*s  %-14s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, c := range chars {
		mark := " "
		if c.ID == selected {
			mark = "*"
		}
		fmt.Printf("  %s %c %-*s  %-14s  %s\n", mark, c.Glyph, maxIDLen, c.ID, c.Title, c.Tagline)
	}

	fmt.Println()
	fmt.Println("Run 'scorch play <id>' to enter the zone.")
}
