package fetch

import (
	"context"
	"sync"

	"github.com/reddot/reddot-client/internal/client/notify"
	"github.com/reddot/reddot-client/internal/common"
	"github.com/reddot/reddot-client/internal/logging"
)

type Phase string

const (
	PhaseIdle    Phase = "IDLE"
	PhaseLoading Phase = "LOADING"
	PhaseReady   Phase = "READY"
	PhaseFailed  Phase = "FAILED"
)

// Func loads one value from the remote API.
type Func[T any] func(ctx context.Context) (T, error)

// State is a snapshot of a controller. Data is meaningful only in
// PhaseReady, Error and Cause only in PhaseFailed.
type State[T any] struct {
	Phase Phase
	Data  T
	Error string
	Cause error
}

func (s State[T]) Ready() bool   { return s.Phase == PhaseReady }
func (s State[T]) Loading() bool { return s.Phase == PhaseLoading }
func (s State[T]) Failed() bool  { return s.Phase == PhaseFailed }

type options struct {
	log logging.Logger
}

type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// Controller drives one PageFetchState for one mounted view.
type Controller[T any] struct {
	fn       Func[T]
	notifier notify.Notifier
	resource string
	log      logging.Logger

	mu       sync.Mutex
	state    State[T]
	gen      uint64
	mounted  bool
	onChange func(State[T])

	wg sync.WaitGroup
}

// New builds a controller around fn. resource names what is loaded and
// appears in the failure toast ("Failed to load <resource>").
func New[T any](fn Func[T], notifier notify.Notifier, resource string, opts ...Option) *Controller[T] {
	o := options{log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Controller[T]{
		fn:       fn,
		notifier: notifier,
		resource: resource,
		log:      o.log,
		state:    State[T]{Phase: PhaseIdle},
	}
}

// OnChange registers a callback run after every applied transition. It is
// called without the controller lock held.
func (c *Controller[T]) OnChange(f func(State[T])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = f
}

// Mount marks the view as live and starts the first fetch.
func (c *Controller[T]) Mount(ctx context.Context) {
	c.mu.Lock()
	c.mounted = true
	c.mu.Unlock()

	c.trigger(ctx)
}

// Refetch starts a new fetch cycle. Calling it while a fetch is in flight
// is allowed; only the newest result is applied. It is a no-op before
// Mount or after Unmount.
func (c *Controller[T]) Refetch(ctx context.Context) {
	c.mu.Lock()
	mounted := c.mounted
	c.mu.Unlock()

	if !mounted {
		return
	}
	c.trigger(ctx)
}

// Unmount detaches the view. In-flight fetches are left to finish and their
// results are discarded.
func (c *Controller[T]) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mounted = false
	c.gen++
}

func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until every fetch started so far has returned.
func (c *Controller[T]) Wait() {
	c.wg.Wait()
}

func (c *Controller[T]) trigger(ctx context.Context) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = State[T]{Phase: PhaseLoading}
	snapshot, onChange := c.state, c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(snapshot)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		data, err := c.fn(ctx)
		c.apply(ctx, gen, data, err)
	}()
}

func (c *Controller[T]) apply(ctx context.Context, gen uint64, data T, err error) {
	c.mu.Lock()
	if !c.mounted || gen != c.gen {
		c.mu.Unlock()
		c.log.Debug(ctx, "stale fetch result discarded", "resource", c.resource, "generation", gen)
		return
	}

	if err != nil {
		c.state = State[T]{
			Phase: PhaseFailed,
			Error: "Failed to load " + c.resource,
			Cause: &common.FetchError{Resource: c.resource, Err: err},
		}
	} else {
		c.state = State[T]{Phase: PhaseReady, Data: data}
	}
	snapshot, onChange := c.state, c.onChange
	c.mu.Unlock()

	if err != nil {
		c.log.Warn(ctx, "fetch failed", "resource", c.resource, "error", err)
		if c.notifier != nil {
			c.notifier.Error(snapshot.Error)
		}
	}

	if onChange != nil {
		onChange(snapshot)
	}
}
