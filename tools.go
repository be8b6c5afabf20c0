package bem

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	loggerMu    sync.RWMutex
	logger      = zap.NewNop()
	defaultLoop = NewLoop()
)

// SetLogger replaces the logger used by blocks created without WithLogger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// DefaultLoop returns the loop Delay schedules on when a block was created
// without WithLoop. Someone has to Run it.
func DefaultLoop() *Loop {
	return defaultLoop
}

// Bind returns a function calling fn with b as receiver.
func (b *Block) Bind(fn func(b *Block, args ...any)) func(args ...any) {
	return func(args ...any) {
		fn(b, args...)
	}
}

// Log writes a line made of the block name, its root element, the block
// itself and then args.
func (b *Block) Log(args ...any) *Block {
	l := b.logger
	if l == nil {
		l = Logger()
	}
	l.Info(b.Name()+":",
		zap.Any("element", b.Element()),
		zap.Any("widget", b.Widget),
		zap.Any("args", args),
	)
	return b
}

// Delay runs fn bound to b once after d, on the block event loop.
// Widgets implementing Delayer keep their own facility.
func (b *Block) Delay(fn func(b *Block), d time.Duration) Timer {
	if d < 0 {
		d = 0
	}
	call := func() { fn(b) }
	if dl, ok := b.Widget.(Delayer); ok {
		return dl.Delay(call, d)
	}
	l := b.loop
	if l == nil {
		l = DefaultLoop()
	}
	return l.After(d, call)
}
