package inspect

import (
	"errors"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// ErrExecutorClosed is returned by Call once the executor has shut down.
var ErrExecutorClosed = errors.New("ui executor closed")

// executor is the UI-affine task queue: one dedicated goroutine consumes
// every tree, log, and overlay mutation in FIFO order. Provider callbacks
// marshal onto it before touching shared state; nothing else may mutate
// that state, so the core needs no locks.
type executor struct {
	tasks  chan func()
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once
	logger *zap.Logger
}

func newExecutor(logger *zap.Logger) *executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &executor{
		tasks:  make(chan func(), 1024),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: logger,
	}
	go e.run()
	return e
}

func (e *executor) run() {
	defer close(e.done)
	for {
		select {
		case fn := <-e.tasks:
			e.exec(fn)
		case <-e.quit:
			// Drain tasks accepted before Close.
			for {
				select {
				case fn := <-e.tasks:
					e.exec(fn)
				default:
					return
				}
			}
		}
	}
}

// exec runs one task. Panics are recovered and logged; they never reach
// the executor boundary.
func (e *executor) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("ui task panic",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	fn()
}

// Post schedules fn and returns immediately, reporting whether fn was
// accepted. Posts after Close are rejected so the caller can release
// anything the task owns.
func (e *executor) Post(fn func()) bool {
	select {
	case <-e.quit:
		return false
	default:
		select {
		case e.tasks <- fn:
			return true
		case <-e.quit:
			return false
		}
	}
}

// Call runs fn on the executor and blocks until it completes. Must not be
// invoked from the executor goroutine itself: the public Controller
// surface is the only caller, and its internals run inline once on the
// executor.
func (e *executor) Call(fn func() error) error {
	errc := make(chan error, 1)
	if !e.Post(func() { errc <- fn() }) {
		return ErrExecutorClosed
	}
	select {
	case err := <-errc:
		return err
	case <-e.done:
		// The task may still have completed during shutdown drain.
		select {
		case err := <-errc:
			return err
		default:
			return ErrExecutorClosed
		}
	}
}

// callOn is Call with a result.
func callOn[T any](e *executor, fn func() (T, error)) (T, error) {
	var out T
	err := e.Call(func() error {
		v, err := fn()
		out = v
		return err
	})
	return out, err
}

// Close stops the executor after draining already-accepted tasks.
// Idempotent.
func (e *executor) Close() {
	e.once.Do(func() { close(e.quit) })
	<-e.done
}
