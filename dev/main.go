package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/atdiar/bem"
	"github.com/atdiar/bem/drivers/htmldom"
	"go.uber.org/zap"
)

const page = `<!DOCTYPE html>
<html><body>
<ul class="menu menu_theme_dark">
	<li class="menu__item">Home</li>
	<li class="menu__item menu__item_current">Docs</li>
	<li class="menu__item">About</li>
</ul>
</body></html>`

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	bem.SetLogger(logger)

	doc, err := htmldom.Parse(strings.NewReader(page))
	if err != nil {
		logger.Fatal("parse", zap.Error(err))
	}
	menu, err := htmldom.Mount(doc, "menu")
	if err != nil {
		logger.Fatal("mount", zap.Error(err))
	}

	// The menu moves its current item along every 100ms, then stops the loop.
	menu.OnModChange("item", "current", bem.NewModHandler(func(evt bem.ModEvent) bool {
		if evt.HasNew {
			evt.Block.Log("current item", evt.Node)
		}
		return false
	}))

	items := menu.Elem("item")
	next := 0
	var step func(b *bem.Block)
	step = func(b *bem.Block) {
		for _, n := range b.Elem("item", "current") {
			if err := b.RemoveElemMod(n, "current"); err != nil {
				logger.Error("remove", zap.Error(err))
			}
		}
		if next == len(items) {
			b.SetMod("theme", "light")
			if err := htmldom.RenderPretty(os.Stdout, doc); err != nil {
				logger.Error("render", zap.Error(err))
			}
			bem.DefaultLoop().Stop()
			return
		}
		if err := b.SetElemMod(items[next], "current", ""); err != nil {
			logger.Error("set", zap.Error(err))
		}
		next++
		b.Delay(step, 100*time.Millisecond)
	}
	menu.Delay(step, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := bem.DefaultLoop().Run(ctx); err != nil {
		logger.Fatal("loop", zap.Error(err))
	}
}
