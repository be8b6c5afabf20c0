package bem

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrElementNameUnresolved = errors.New("element name unresolved")
)

// Modifiers maps modifier names to their values. A flag modifier maps to the
// empty string.
type Modifiers map[string]string

// Block exposes the block-element-modifier helpers of a Widget.
// Modifier state is never cached: every query reads the live class attribute.
type Block struct {
	Widget

	logger   *zap.Logger
	loop     *Loop
	handlers modCallbacks
}

// Option configures a Block.
type Option func(*Block)

// WithLogger sets the logger used by Log. Defaults to the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Block) { b.logger = l }
}

// WithLoop sets the event loop Delay schedules on. Defaults to the package loop.
func WithLoop(l *Loop) Option {
	return func(b *Block) { b.loop = l }
}

func NewBlock(w Widget, options ...Option) *Block {
	b := &Block{Widget: w}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *Block) ElemClass(elem string) string {
	return BuildElementClass(b.Name(), elem)
}

func (b *Block) ModClass(mod, val string) string {
	return BuildModifierClass(b.Name(), mod, val)
}

func (b *Block) ElemModClass(elem, mod, val string) string {
	return BuildElementModifierClass(b.Name(), elem, mod, val)
}

// Elem finds the elements named elem within the block root element.
// modval optionally narrows the search to a modifier name and value.
func (b *Block) Elem(elem string, modval ...string) []Node {
	return b.ElemIn(b.Element(), elem, modval...)
}

// ElemIn is like Elem with an explicit search context.
func (b *Block) ElemIn(ctx Node, elem string, modval ...string) []Node {
	if ctx == nil {
		return nil
	}
	class := b.ElemClass(elem)
	switch len(modval) {
	case 0:
	case 1:
		class = b.ElemModClass(elem, modval[0], "")
	default:
		class = b.ElemModClass(elem, modval[0], modval[1])
	}
	return ctx.Find(class)
}

// ElementName returns the name of the element n stands for, looking for the
// first class of the form W__name.
func (b *Block) ElementName(n Node) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, c := range Classes(n.ClassName()) {
		if name, ok := MatchElement(b.Name(), c); ok {
			return name, true
		}
	}
	return "", false
}

// Modifiers returns the modifiers of prefix found in the class list of n.
// When a modifier appears more than once, the last occurrence wins.
func (b *Block) Modifiers(n Node, prefix string) Modifiers {
	m := make(Modifiers)
	if n == nil {
		return m
	}
	for _, c := range Classes(n.ClassName()) {
		if mod, val, ok := MatchModifier(prefix, c); ok {
			m[mod] = val
		}
	}
	return m
}

// target is the node and class prefix a modifier operation applies to.
type target struct {
	node   Node
	elem   string
	prefix string
}

func (b *Block) root() target {
	return target{node: b.Element(), prefix: b.Name()}
}

func (b *Block) elemTarget(n Node) (target, error) {
	elem, ok := b.ElementName(n)
	if !ok {
		var class string
		if n != nil {
			class = n.ClassName()
		}
		return target{}, fmt.Errorf("%w: block %q, class %q", ErrElementNameUnresolved, b.Name(), class)
	}
	return target{node: n, elem: elem, prefix: BuildElementClass(b.Name(), elem)}, nil
}

func (b *Block) get(t target, mod string) (string, bool) {
	val, ok := b.Modifiers(t.node, t.prefix)[mod]
	return val, ok
}

func (b *Block) set(t target, mod, val string) {
	old, hadOld := b.get(t, mod)
	class := t.node.ClassName()
	if hadOld {
		class = removeModClasses(class, t.prefix, mod)
	}
	t.node.SetClassName(AddClass(class, BuildModifierClass(t.prefix, mod, val)))
	if hadOld && old == val {
		return
	}
	b.handlers.DispatchEvent(ModEvent{b, t.node, t.elem, mod, old, hadOld, val, true})
}

func (b *Block) remove(t target, mod string) {
	old, ok := b.get(t, mod)
	if !ok {
		return
	}
	t.node.SetClassName(removeModClasses(t.node.ClassName(), t.prefix, mod))
	b.handlers.DispatchEvent(ModEvent{b, t.node, t.elem, mod, old, true, "", false})
}

// removeModClasses drops the tokens of class that match mod under prefix, as
// they are spelled in class rather than as BuildModifierClass would spell them.
func removeModClasses(class, prefix, mod string) string {
	tokens := Classes(class)
	kept := tokens[:0]
	for _, c := range tokens {
		if m, _, ok := MatchModifier(prefix, c); ok && m == mod {
			continue
		}
		kept = append(kept, c)
	}
	return strings.Join(kept, " ")
}

func (b *Block) has(t target, mod, val string) bool {
	cur, ok := b.get(t, mod)
	return ok && cur == val
}

func (b *Block) toggle(t target, mod, val string) {
	if b.has(t, mod, val) {
		b.remove(t, mod)
		return
	}
	b.set(t, mod, val)
}

// SetMod sets the modifier mod of the block root element to val, replacing
// any previous value. An empty val sets a flag modifier.
func (b *Block) SetMod(mod, val string) {
	b.set(b.root(), mod, val)
}

// SetElemMod is SetMod for the element n.
func (b *Block) SetElemMod(n Node, mod, val string) error {
	t, err := b.elemTarget(n)
	if err != nil {
		return err
	}
	b.set(t, mod, val)
	return nil
}

// RemoveMod removes the modifier mod from the block root element whatever
// its current value.
func (b *Block) RemoveMod(mod string) {
	b.remove(b.root(), mod)
}

func (b *Block) RemoveElemMod(n Node, mod string) error {
	t, err := b.elemTarget(n)
	if err != nil {
		return err
	}
	b.remove(t, mod)
	return nil
}

// HasMod reports whether the modifier mod of the block root element is
// currently set to val. An empty val asks for a flag modifier: an absent
// modifier is not a flag.
func (b *Block) HasMod(mod, val string) bool {
	return b.has(b.root(), mod, val)
}

func (b *Block) HasElemMod(n Node, mod, val string) (bool, error) {
	t, err := b.elemTarget(n)
	if err != nil {
		return false, err
	}
	return b.has(t, mod, val), nil
}

// Mod returns the current value of the modifier mod of the block root element.
// ok is false when the modifier is absent.
func (b *Block) Mod(mod string) (val string, ok bool) {
	return b.get(b.root(), mod)
}

func (b *Block) ElemMod(n Node, mod string) (val string, ok bool, err error) {
	t, err := b.elemTarget(n)
	if err != nil {
		return "", false, err
	}
	val, ok = b.get(t, mod)
	return val, ok, nil
}

// ToggleMod sets the modifier mod to val unless it already holds that value,
// in which case the modifier is removed.
func (b *Block) ToggleMod(mod, val string) {
	b.toggle(b.root(), mod, val)
}

func (b *Block) ToggleElemMod(n Node, mod, val string) error {
	t, err := b.elemTarget(n)
	if err != nil {
		return err
	}
	b.toggle(t, mod, val)
	return nil
}

// OnModChange registers h to be called whenever the modifier mod changes on
// the element elem, or on the block root element if elem is empty.
func (b *Block) OnModChange(elem, mod string, h *ModHandler) *Block {
	b.handlers.Add(modKey(elem, mod), h)
	return b
}

func (b *Block) OffModChange(elem, mod string, h *ModHandler) *Block {
	b.handlers.Remove(modKey(elem, mod), h)
	return b
}
