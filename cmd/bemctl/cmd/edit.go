package cmd

import (
	"github.com/atdiar/bem"
	"github.com/atdiar/bem/drivers/htmldom"
	"github.com/spf13/cobra"
)

var editElem string

// editCommand returns a command applying op to the block root or to each
// element named by --elem, then writing the document to stdout.
func editCommand(use, short string, posArgs cobra.PositionalArgs, op func(b *bem.Block, n bem.Node, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  posArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBlock(cmd.Context(), cmd.InOrStdin(), args[0], func(doc htmldom.Node, b *bem.Block) error {
				for _, n := range targets(b, editElem) {
					if err := op(b, n, args[1:]); err != nil {
						return err
					}
				}
				return writeDocument(cmd.OutOrStdout(), doc)
			})
		},
	}
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

var setCmd = editCommand("set <block> <mod> [val]", "Sets a modifier, replacing its current value",
	cobra.RangeArgs(2, 3),
	func(b *bem.Block, n bem.Node, args []string) error {
		b.Log("set", args)
		if editElem == "" {
			b.SetMod(args[0], optional(args, 1))
			return nil
		}
		return b.SetElemMod(n, args[0], optional(args, 1))
	})

var rmCmd = editCommand("rm <block> <mod>", "Removes a modifier whatever its value",
	cobra.ExactArgs(2),
	func(b *bem.Block, n bem.Node, args []string) error {
		b.Log("rm", args)
		if editElem == "" {
			b.RemoveMod(args[0])
			return nil
		}
		return b.RemoveElemMod(n, args[0])
	})

var toggleCmd = editCommand("toggle <block> <mod> [val]", "Sets a modifier, or removes it if it already holds the value",
	cobra.RangeArgs(2, 3),
	func(b *bem.Block, n bem.Node, args []string) error {
		b.Log("toggle", args)
		if editElem == "" {
			b.ToggleMod(args[0], optional(args, 1))
			return nil
		}
		return b.ToggleElemMod(n, args[0], optional(args, 1))
	})

func init() {
	for _, c := range []*cobra.Command{setCmd, rmCmd, toggleCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVarP(&editElem, "elem", "e", "", "element name (default the block root)")
	}
}
