package cmd

import (
	"fmt"

	"github.com/atdiar/bem"
	"github.com/spf13/cobra"
)

var classMod, classVal string

// classCmd represents the class command
var classCmd = &cobra.Command{
	Use:   "class <block> [elem]",
	Short: "Prints the class of a block, an element or one of their modifiers",
	Example: `
		bemctl class menu                        # menu
		bemctl class menu item                   # menu__item
		bemctl class menu --mod size --val large # menu_size_large
		bemctl class menu item --mod disabled    # menu__item_disabled
	`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		block := args[0]
		prefix := block
		if len(args) == 2 {
			prefix = bem.BuildElementClass(block, args[1])
		}
		if classMod != "" {
			prefix = bem.BuildModifierClass(prefix, classMod, classVal)
		} else if classVal != "" {
			return fmt.Errorf("--val requires --mod")
		}
		fmt.Fprintln(cmd.OutOrStdout(), prefix)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classCmd)
	classCmd.Flags().StringVar(&classMod, "mod", "", "modifier name")
	classCmd.Flags().StringVar(&classVal, "val", "", "modifier value (empty for a flag modifier)")
}
