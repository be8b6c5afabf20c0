package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/atdiar/bem"
	"github.com/atdiar/bem/drivers/htmldom"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	verbose    bool
	configPath string
	inputPath  string
	pretty     bool

	config Config
	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bemctl",
	Short: "bemctl inspects and edits block-element-modifier classes in HTML documents",
	Long: `
		bemctl reads an HTML document (--file or stdin), locates the root element
		of a block (the first element carrying the block name as a class) and
		queries or edits its element and modifier classes.
		Editing commands write the modified document to stdout.
		`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("pretty") {
			c.Output.Pretty = pretty
		}
		config = c

		l, err := NewLogger(c.Log, verbose)
		if err != nil {
			return err
		}
		logger = l
		bem.SetLogger(l)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "bemctl:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HOME/.config/bemctl/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&inputPath, "file", "f", "", "HTML document to read (default stdin)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "indent the HTML output")
}

func readDocument(stdin io.Reader) (htmldom.Node, error) {
	r := stdin
	if inputPath != "" && inputPath != "-" {
		f, err := os.Open(inputPath)
		if err != nil {
			return htmldom.Node{}, fmt.Errorf("open document: %w", err)
		}
		defer f.Close()
		r = f
	}
	return htmldom.Parse(r)
}

func writeDocument(w io.Writer, doc htmldom.Node) error {
	if config.Output.Pretty {
		return htmldom.RenderPretty(w, doc)
	}
	if err := htmldom.Render(w, doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// withBlock mounts the block on the input document and runs fn on a fresh
// event loop, so that class mutations happen on the loop goroutine.
func withBlock(ctx context.Context, stdin io.Reader, block string, fn func(doc htmldom.Node, b *bem.Block) error) error {
	doc, err := readDocument(stdin)
	if err != nil {
		return err
	}
	loop := bem.NewLoop()
	b, err := htmldom.Mount(doc, block, bem.WithLogger(logger), bem.WithLoop(loop))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := loop.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		done := make(chan error, 1)
		loop.Do(func() { done <- fn(doc, b) })
		select {
		case err := <-done:
			loop.Stop()
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	return g.Wait()
}

// targets returns the block root, or every element named elem.
func targets(b *bem.Block, elem string) []bem.Node {
	if elem == "" {
		return []bem.Node{b.Element()}
	}
	return b.Elem(elem)
}
