package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/atdiar/bem"
	"github.com/atdiar/bem/drivers/htmldom"
	"github.com/spf13/cobra"
)

var queryElem string

// elemsCmd represents the elems command
var elemsCmd = &cobra.Command{
	Use:   "elems <block> <elem> [mod [val]]",
	Short: "Lists the elements of a block, optionally filtered by modifier",
	Args:  cobra.RangeArgs(2, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBlock(cmd.Context(), cmd.InOrStdin(), args[0], func(_ htmldom.Node, b *bem.Block) error {
			for _, n := range b.Elem(args[1], args[2:]...) {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		})
	},
}

// modsCmd represents the mods command
var modsCmd = &cobra.Command{
	Use:   "mods <block>",
	Short: "Lists the modifiers of the block root element or of its elements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBlock(cmd.Context(), cmd.InOrStdin(), args[0], func(_ htmldom.Node, b *bem.Block) error {
			printMods(cmd.OutOrStdout(), b, queryElem)
			return nil
		})
	},
}

// printMods writes the modifiers of the block root or of each element named
// elem, one per line, as name or name=value.
func printMods(w io.Writer, b *bem.Block, elem string) {
	prefix := b.Name()
	if elem != "" {
		prefix = b.ElemClass(elem)
	}
	for _, n := range targets(b, elem) {
		mods := b.Modifiers(n, prefix)
		b.Log("modifiers", n, len(mods))
		for _, name := range slices.Sorted(maps.Keys(mods)) {
			if v := mods[name]; v != "" {
				fmt.Fprintf(w, "%s=%s\n", name, v)
				continue
			}
			fmt.Fprintln(w, name)
		}
	}
}

// hasCmd represents the has command
var hasCmd = &cobra.Command{
	Use:   "has <block> <mod> [val]",
	Short: "Reports whether a modifier holds a value (a flag when val is omitted)",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var val string
		if len(args) == 3 {
			val = args[2]
		}
		return withBlock(cmd.Context(), cmd.InOrStdin(), args[0], func(_ htmldom.Node, b *bem.Block) error {
			if queryElem == "" {
				fmt.Fprintln(cmd.OutOrStdout(), b.HasMod(args[1], val))
				return nil
			}
			for _, n := range b.Elem(queryElem) {
				ok, err := b.HasElemMod(n, args[1], val)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ok)
			}
			return nil
		})
	},
}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <block> <mod>",
	Short: "Prints the value of a modifier",
	Long: `
		Prints the value of a modifier, an empty line for a flag modifier.
		Fails when the modifier is not set.
	`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBlock(cmd.Context(), cmd.InOrStdin(), args[0], func(_ htmldom.Node, b *bem.Block) error {
			if queryElem == "" {
				v, ok := b.Mod(args[1])
				if !ok {
					return fmt.Errorf("modifier %q not set", args[1])
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			}
			for _, n := range b.Elem(queryElem) {
				v, ok, err := b.ElemMod(n, args[1])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("modifier %q not set on %v", args[1], n)
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{modsCmd, hasCmd, getCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVarP(&queryElem, "elem", "e", "", "element name (default the block root)")
	}
	rootCmd.AddCommand(elemsCmd)
}
