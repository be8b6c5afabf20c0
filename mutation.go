package bem

// ModEvent describes a modifier change on the root element of a block or on
// one of its elements.
type ModEvent struct {
	Block *Block
	Node  Node
	Elem  string // empty for the block root
	Mod   string

	OldValue string
	HadOld   bool
	NewValue string
	HasNew   bool
}

// ModHandler is a wrapper type around a callback run after a modifier changed.
// Returning true stops the dispatch to the handlers registered after it.
type ModHandler struct {
	Fn func(ModEvent) bool

	once bool
}

func NewModHandler(f func(evt ModEvent) bool) *ModHandler {
	return &ModHandler{Fn: f}
}

// RunOnce makes the handler unregister itself after its first call.
func (h *ModHandler) RunOnce() *ModHandler {
	h.once = true
	return h
}

func (h *ModHandler) Handle(evt ModEvent) bool {
	return h.Fn(evt)
}

type modHandlers struct {
	list []*ModHandler
}

func (m *modHandlers) Add(h *ModHandler) *modHandlers {
	m.list = append(m.list, h)
	return m
}

func (m *modHandlers) Remove(h *ModHandler) *modHandlers {
	for k, v := range m.list {
		if v != h {
			continue
		}
		m.list = append(m.list[:k:k], m.list[k+1:]...)
		break
	}
	return m
}

func (m *modHandlers) Handle(evt ModEvent) {
	// handlers may unregister during dispatch
	list := append([]*ModHandler(nil), m.list...)
	for _, h := range list {
		if h.once {
			m.Remove(h)
		}
		if h.Handle(evt) {
			return
		}
	}
}

// modCallbacks stores handlers at "elem/mod", elem being empty for the block.
type modCallbacks struct {
	list map[string]*modHandlers
}

func modKey(elem, mod string) string {
	return elem + "/" + mod
}

func (m *modCallbacks) Add(key string, h *ModHandler) {
	if m.list == nil {
		m.list = make(map[string]*modHandlers)
	}
	mhs, ok := m.list[key]
	if !ok {
		mhs = &modHandlers{}
		m.list[key] = mhs
	}
	mhs.Add(h)
}

func (m *modCallbacks) Remove(key string, h *ModHandler) {
	mhs, ok := m.list[key]
	if !ok {
		return
	}
	mhs.Remove(h)
	if len(mhs.list) == 0 {
		delete(m.list, key)
	}
}

func (m *modCallbacks) DispatchEvent(evt ModEvent) {
	mhs, ok := m.list[modKey(evt.Elem, evt.Mod)]
	if !ok {
		return
	}
	mhs.Handle(evt)
}
