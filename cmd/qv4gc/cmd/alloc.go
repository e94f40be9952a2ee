package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	allocCount int
	allocSlots int
)

var allocCmd = &cobra.Command{
	Use:   "alloc",
	Short: "Allocate objects, force a collection, and report allocator/collector stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		class := eng.Shapes.Empty
		for i := 0; i < allocCount; i++ {
			eng.NewObject(class, allocSlots)
		}
		eng.Collect()
		stats := eng.Stats()
		fmt.Printf("allocations:       %d\n", stats.AllocCount)
		fmt.Printf("chunks:            %d\n", stats.Chunks)
		fmt.Printf("pages outstanding: %d\n", stats.PagesOutstanding)
		fmt.Printf("bytes outstanding: %d\n", stats.BytesOutstanding)
		fmt.Printf("gc runs:           %d\n", stats.Runs)
		fmt.Printf("last swept:        %d\n", stats.LastSwept)
		fmt.Printf("last reclaimed:    %d\n", stats.LastReclaimed)
		return nil
	},
}

func init() {
	allocCmd.Flags().IntVar(&allocCount, "count", 1, "number of objects to allocate")
	allocCmd.Flags().IntVar(&allocSlots, "slots", 1, "property slots per object")
	rootCmd.AddCommand(allocCmd)
}
