package bem

import "time"

// Node is the DOM capability the block helpers rely on.
type Node interface {
	// ClassName returns the class attribute, or an empty string if absent.
	ClassName() string
	SetClassName(class string)
	// Find returns the descendants whose class list contains class, in
	// document order.
	Find(class string) []Node
}

// Widget is anything owning a root Node under a stable block name.
type Widget interface {
	Name() string
	Element() Node
}

// Delayer is implemented by widgets that already provide deferred execution.
// Block.Delay defers to it when present.
type Delayer interface {
	Delay(fn func(), d time.Duration) Timer
}

// BasicWidget is the plain Widget implementation.
type BasicWidget struct {
	name string
	root Node
}

func NewWidget(name string, root Node) BasicWidget {
	return BasicWidget{name, root}
}

func (w BasicWidget) Name() string  { return w.name }
func (w BasicWidget) Element() Node { return w.root }

// String returns the widget name, which is how a BasicWidget is logged.
func (w BasicWidget) String() string { return w.name }
