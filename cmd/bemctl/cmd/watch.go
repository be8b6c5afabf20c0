package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atdiar/bem"
	"github.com/atdiar/bem/drivers/htmldom"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var watchDebounce time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <block>",
	Short: "Prints the modifiers of a block each time its document changes",
	Long: `
		Watch reads the document given by --file and prints the modifiers of the
		block root (or of the elements named by --elem) every time the file is
		written. Bursts of writes are coalesced.
	`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputPath == "" || inputPath == "-" {
			return errors.New("watch requires --file")
		}
		return watch(cmd.Context(), cmd.OutOrStdout(), args[0], queryElem)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&queryElem, "elem", "e", "", "element name (default the block root)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 100*time.Millisecond, "delay coalescing successive writes")
}

func report(w io.Writer, block, elem string) {
	f, err := os.Open(inputPath)
	if err != nil {
		logger.Warn("open document", zap.Error(err))
		return
	}
	defer f.Close()
	doc, err := htmldom.Parse(f)
	if err != nil {
		logger.Warn("parse document", zap.Error(err))
		return
	}
	b, err := htmldom.Mount(doc, block, bem.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintf(w, "--- %s\n", time.Now().Format(time.TimeOnly))
	printMods(w, b, elem)
}

// watch follows the directory holding the document, so that a document
// replaced by a rename keeps being reported.
func watch(ctx context.Context, w io.Writer, block, elem string) error {
	target := filepath.Clean(inputPath)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", inputPath, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := bem.NewLoop()
	loop.Do(func() { report(w, block, elem) })

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := loop.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		var pending bem.Timer
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					cancel()
					return nil
				}
				logger.Debug("fs event", zap.Stringer("event", event))
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				loop.Cancel(pending)
				pending = loop.After(watchDebounce, func() { report(w, block, elem) })
			case err, ok := <-watcher.Errors:
				if !ok {
					cancel()
					return nil
				}
				logger.Warn("watch", zap.Error(err))
			}
		}
	})
	return g.Wait()
}
