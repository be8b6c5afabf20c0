package htmldom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/atdiar/bem"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><body>
<nav class="other menu__item"></nav>
<ul class="menu menu_theme_dark" id="m">
	<li class="menu__item">Home</li>
	<li class="menu__item menu__item_current">Docs<span class="menu__badge">new</span></li>
	<li>plain</li>
</ul>
</body></html>`

func parse(t *testing.T) Node {
	t.Helper()
	doc, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestRootAndFind(t *testing.T) {
	doc := parse(t)

	root, ok := Root(doc, "menu")
	require.True(t, ok)
	require.Equal(t, "ul", root.Raw().Data)
	require.Equal(t, `<ul class="menu menu_theme_dark" id="m">`, root.String())

	again, ok := Root(root, "menu")
	require.True(t, ok)
	require.Equal(t, root, again)

	_, ok = Root(doc, "absent")
	require.False(t, ok)
	_, ok = Root(Node{}, "menu")
	require.False(t, ok)

	var classes []string
	for _, n := range root.Find("menu__item") {
		classes = append(classes, n.ClassName())
	}
	want := []string{"menu__item", "menu__item menu__item_current"}
	if diff := cmp.Diff(want, classes); diff != "" {
		t.Errorf("Find() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetClassName(t *testing.T) {
	doc := parse(t)
	root, _ := Root(doc, "menu")

	plain := Wrap(root.Raw().LastChild.PrevSibling)
	require.Equal(t, "li", plain.Raw().Data)
	require.Equal(t, "", plain.ClassName())

	plain.SetClassName("menu__item")
	require.Equal(t, "menu__item", plain.ClassName())
	require.Len(t, root.Find("menu__item"), 3)

	plain.SetClassName("menu__item menu__item_last")
	require.Len(t, plain.Raw().Attr, 1)
}

func TestMountedBlock(t *testing.T) {
	doc := parse(t)
	b, err := Mount(doc, "menu")
	require.NoError(t, err)

	val, ok := b.Mod("theme")
	require.True(t, ok)
	require.Equal(t, "dark", val)

	b.SetMod("theme", "light")
	b.SetMod("open", "")

	current := b.Elem("item", "current")
	require.Len(t, current, 1)
	require.NoError(t, b.RemoveElemMod(current[0], "current"))
	require.Empty(t, b.Elem("item", "current"))

	items := b.Elem("item")
	require.NoError(t, b.SetElemMod(items[0], "current", ""))

	badge := b.Elem("badge")
	require.Len(t, badge, 1)
	require.ErrorIs(t, b.SetElemMod(b.Element(), "x", ""), bem.ErrElementNameUnresolved)

	var out bytes.Buffer
	require.NoError(t, Render(&out, doc))
	html := out.String()
	require.Contains(t, html, `<ul class="menu menu_theme_light menu_open" id="m">`)
	require.Contains(t, html, `<li class="menu__item menu__item_current">Home</li>`)
	require.Contains(t, html, `<li class="menu__item">Docs`)
}

func TestMountMissingRoot(t *testing.T) {
	_, err := Mount(parse(t), "tabs")
	require.ErrorIs(t, err, ErrNoRoot)
}

func TestRenderPretty(t *testing.T) {
	doc := parse(t)
	root, _ := Root(doc, "menu")

	var out bytes.Buffer
	require.NoError(t, RenderPretty(&out, root))
	require.Contains(t, out.String(), `<ul class="menu menu_theme_dark" id="m">`)
	require.Contains(t, out.String(), `class="menu__badge"`)

	out.Reset()
	require.NoError(t, Render(&out, Node{}))
	require.Empty(t, out.String())
}
