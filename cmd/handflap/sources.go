package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/handflap/internal/registry"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List all input sources",
	Long:  `Shows every landmark source that can drive the avatar.`,
	Run:   runSources,
}

func runSources(cmd *cobra.Command, args []string) {
	sources := registry.List()

	if len(sources) == 0 {
		fmt.Println("No input sources available.")
		return
	}

	fmt.Println("Available inputs:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, s := range sources {
		maxNameLen = max(maxNameLen, len(s.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, s := range sources {
		fmt.Printf("  %-*s  %s\n", maxNameLen, s.Name, s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'handflap play --input <name>' to use one.")
}
