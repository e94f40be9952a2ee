package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var shapeMembers string

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Walk a chain of AddMember transitions from the empty shape and print the resulting class sizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := strings.Split(shapeMembers, ",")
		class := eng.Shapes.Empty
		fmt.Printf("%-20s %6s\n", "after adding", "size")
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			id := eng.Idents.Intern(name)
			var index uint32
			class, index = class.AddMember(id, 0)
			fmt.Printf("%-20s %6d (slot %d)\n", name, class.Size(), index)
		}
		return nil
	},
}

func init() {
	shapesCmd.Flags().StringVar(&shapeMembers, "members", "x,y,z", "comma-separated property names to add in order")
	rootCmd.AddCommand(shapesCmd)
}
