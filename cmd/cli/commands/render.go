package commands

import (
	"fmt"

	"github.com/jakechorley/camp-quarters/pkg/core/allocator"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

// renderOutcome prints the proposal and unallocated report shared by both
// allocation commands.
func renderOutcome(campName string, outcome *allocator.Outcome, dryRun bool) {
	fmt.Printf("\n🛏️  Bed Allocation Results\n\n")
	fmt.Printf("Camp:     %s\n", campName)
	fmt.Printf("Strategy: %s\n", outcome.Strategy)
	if dryRun {
		fmt.Printf("Mode:     🧪 DRY RUN (not saved)\n")
	}
	fmt.Println()

	if outcome.CapacityShortfall > 0 {
		fmt.Printf("%s⚠️  Capacity short by %d bed(s); partial results below%s\n\n",
			colorYellow, outcome.CapacityShortfall, colorReset)
	}

	fmt.Printf("%sAllocated (%d):%s\n", colorBold, outcome.AllocatedCount(), colorReset)
	for _, pairing := range outcome.Proposal.Pairings {
		suffix := ""
		if pairing.IsTemporary {
			suffix = " (temporary)"
		}
		fmt.Printf("  %s✓%s %s %s → floor %d, room %s, bed %s%s\n",
			colorGreen, colorReset,
			pairing.Person.FirstName, pairing.Person.LastName,
			pairing.Floor.Number, pairing.Room.Number, pairing.Bed.Number, suffix)
	}
	fmt.Println()

	if len(outcome.Unallocated) > 0 {
		fmt.Printf("%sUnallocated (%d):%s\n", colorBold, len(outcome.Unallocated), colorReset)
		for _, person := range outcome.Unallocated {
			fmt.Printf("  %s✗%s %s %s\n", colorYellow, colorReset,
				person.Person.FirstName, person.Person.LastName)
			for _, reason := range person.Reasons {
				if reason.RoomNumber != "" {
					fmt.Printf("      - room %s: %s\n", reason.RoomNumber, reason.Message)
				} else {
					fmt.Printf("      - %s\n", reason.Message)
				}
			}
		}
		fmt.Println()
	}
}
