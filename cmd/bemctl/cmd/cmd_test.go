package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const doc = `<div class="menu menu_size_s"><a class="menu__item">a</a><a class="menu__item menu__item_current">b</a></div>`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	verbose, configPath, inputPath, pretty = false, "", "", false
	queryElem, editElem, classMod, classVal = "", "", "", ""

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestClassCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"class", "menu"}, "menu\n"},
		{[]string{"class", "menu", "item"}, "menu__item\n"},
		{[]string{"class", "menu", "--mod", "size", "--val", "large"}, "menu_size_large\n"},
		{[]string{"class", "menu", "item", "--mod", "disabled"}, "menu__item_disabled\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}

	_, err := run(t, "", "class", "menu", "--val", "x")
	require.Error(t, err)
}

func TestQueryCommands(t *testing.T) {
	out, err := run(t, doc, "mods", "menu")
	require.NoError(t, err)
	require.Equal(t, "size=s\n", out)

	out, err = run(t, doc, "mods", "menu", "--elem", "item")
	require.NoError(t, err)
	require.Equal(t, "current\n", out)

	out, err = run(t, doc, "elems", "menu", "item", "current")
	require.NoError(t, err)
	require.Equal(t, "<a class=\"menu__item menu__item_current\">\n", out)

	out, err = run(t, doc, "has", "menu", "size", "s")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)

	out, err = run(t, doc, "has", "menu", "size")
	require.NoError(t, err)
	require.Equal(t, "false\n", out)

	out, err = run(t, doc, "get", "menu", "size")
	require.NoError(t, err)
	require.Equal(t, "s\n", out)

	_, err = run(t, doc, "get", "menu", "open")
	require.Error(t, err)

	_, err = run(t, doc, "mods", "tabs")
	require.Error(t, err)
}

func TestEditCommands(t *testing.T) {
	out, err := run(t, doc, "set", "menu", "size", "l")
	require.NoError(t, err)
	require.Contains(t, out, `<div class="menu menu_size_l">`)

	out, err = run(t, doc, "rm", "menu", "current", "--elem", "item")
	require.NoError(t, err)
	require.NotContains(t, out, "menu__item_current")

	out, err = run(t, doc, "toggle", "menu", "open")
	require.NoError(t, err)
	require.Contains(t, out, `<div class="menu menu_size_s menu_open">`)

	out, err = run(t, doc, "set", "menu", "active", "--elem", "item")
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(out, "menu__item_active"))
}

func TestFileInputAndConfig(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte(doc), 0o644))
	cfg := filepath.Join(dir, "bemctl.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("output:\n  pretty: true\n"), 0o644))

	out, err := run(t, "", "--file", page, "--config", cfg, "set", "menu", "size", "m")
	require.NoError(t, err)
	require.Contains(t, out, "menu_size_m")
	require.True(t, config.Output.Pretty)

	_, err = run(t, "", "--file", filepath.Join(dir, "missing.html"), "mods", "menu")
	require.Error(t, err)

	_, err = run(t, "", "--config", filepath.Join(dir, "missing.yaml"), "class", "menu")
	require.Error(t, err)

	_, err = run(t, "", "watch", "menu")
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "warn", c.Log.Level)
	require.False(t, c.Output.Pretty)

	t.Setenv("BEMCTL_LOG_LEVEL", "error")
	c, err = LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "error", c.Log.Level)

	_, err = NewLogger(LogConfig{Level: "loud"}, false)
	require.Error(t, err)

	l, err := NewLogger(LogConfig{Level: "error"}, true)
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(-1))
}

// syncBuffer is written by the watch loop while the test reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchReportsRewrittenAndReplacedFile(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte(doc), 0o644))

	inputPath = page
	watchDebounce = 20 * time.Millisecond
	defer func() { inputPath, watchDebounce = "", 100*time.Millisecond }()

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- watch(ctx, &out, "menu", "") }()

	contains := func(s string) func() bool {
		return func() bool { return strings.Contains(out.String(), s) }
	}
	require.Eventually(t, contains("size=s\n"), 5*time.Second, 10*time.Millisecond)

	// replaced by rename, as editors save
	tmp := filepath.Join(dir, "page.html.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(strings.Replace(doc, "menu_size_s", "menu_size_l", 1)), 0o644))
	require.NoError(t, os.Rename(tmp, page))
	require.Eventually(t, contains("size=l\n"), 5*time.Second, 10*time.Millisecond)

	// written in place after the replacement
	require.NoError(t, os.WriteFile(page, []byte(strings.Replace(doc, "menu_size_s", "menu_size_xl", 1)), 0o644))
	require.Eventually(t, contains("size=xl\n"), 5*time.Second, 10*time.Millisecond)

	// other files of the directory are ignored
	before := out.String()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.html"), []byte(doc), 0o644))
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, before, out.String())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not return after cancellation")
	}
}
