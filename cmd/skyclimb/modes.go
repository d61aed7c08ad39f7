package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclimb/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the playable modes",
	Long:  `Shows every mode runs are recorded under.`,
	Args:  cobra.NoArgs,
	Run:   runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, m := range modes {
		desc := m.Description
		if desc == "" {
			desc = m.Title
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, desc)
	}

	fmt.Println()
	fmt.Println("Run 'skyclimb scores <id>' to see the best runs of a mode.")
}
