package rediscluster

import (
	"sync/atomic"

	"github.com/kvflow/redring/redis"
)

const defaultRetries = 16

// Opts are the router options.
type Opts struct {
	// ReplicaPolicy - read preference for read-only commands.
	ReplicaPolicy ReplicaPolicyEnum
	// BootstrapEndpoint - fallback for slots the SlotMap does not cover.
	// It is not guaranteed to have a connection; dispatch to it may
	// still fail with a missing-connection error.
	BootstrapEndpoint string
	// Retries - budget for redirections and transient-error retries per
	// dispatch chain. 0 means the default of 16; a negative value
	// disables recovery entirely.
	Retries int
	// Logger for router events.
	Logger Logger
	// Name of the router, used in log lines.
	Name string
	// Handle is returned with Router.Handle().
	Handle interface{}
}

// Router routes commands to the nodes of a redis cluster. It is created
// over an immutable topology snapshot and a fully populated connection
// table, and mutates neither: a MOVED reply means the snapshot is stale
// and is surfaced so the caller can rebuild the client.
type Router struct {
	slots  *SlotMap
	conns  *ConnTable
	opts   Opts
	closed uint32
}

// NewRouter wires a router over a topology snapshot and its connections.
func NewRouter(slots *SlotMap, conns *ConnTable, opts Opts) (*Router, error) {
	if slots == nil {
		return nil, redis.ErrNilSlotMap.New("slot map should not be nil")
	}
	if conns == nil {
		return nil, redis.ErrNilConnTable.New("connection table should not be nil")
	}
	r := &Router{slots: slots, conns: conns, opts: opts}
	if r.opts.Retries == 0 {
		r.opts.Retries = defaultRetries
	} else if r.opts.Retries < 0 {
		r.opts.Retries = 0
	}
	if r.opts.Logger == nil {
		r.opts.Logger = DefaultLogger{}
	}
	return r, nil
}

// Name returns the configured router name.
func (r *Router) Name() string {
	return r.opts.Name
}

// Handle returns the user handle set in Opts.
func (r *Router) Handle() interface{} {
	return r.opts.Handle
}

// SlotMap returns the topology snapshot the router was built over.
func (r *Router) SlotMap() *SlotMap {
	return r.slots
}

// EachEndpoint calls cb for every connection until cb returns false.
func (r *Router) EachEndpoint(cb func(endpoint string, conn redis.Conn) bool) {
	r.conns.Each(cb)
}

// Pause pauses the reply stream of every connection.
func (r *Router) Pause() {
	r.conns.Each(func(_ string, c redis.Conn) bool { c.Pause(); return true })
}

// Resume resumes the reply stream of every connection.
func (r *Router) Resume() {
	r.conns.Each(func(_ string, c redis.Conn) bool { c.Resume(); return true })
}

// Fetch signals demand for n replies to every connection.
func (r *Router) Fetch(n int64) {
	r.conns.Each(func(_ string, c redis.Conn) bool { c.Fetch(n); return true })
}

// SetExceptionHandler installs handler on every connection.
func (r *Router) SetExceptionHandler(handler func(error)) {
	r.conns.Each(func(_ string, c redis.Conn) bool { c.SetExceptionHandler(handler); return true })
}

// SetEndHandler installs handler on every connection.
func (r *Router) SetEndHandler(handler func()) {
	r.conns.Each(func(_ string, c redis.Conn) bool { c.SetEndHandler(handler); return true })
}

// SetReplyHandler installs handler on every connection.
func (r *Router) SetReplyHandler(handler func(interface{})) {
	r.conns.Each(func(_ string, c redis.Conn) bool { c.SetReplyHandler(handler); return true })
}

// PendingQueueFull reports whether any connection is saturated.
func (r *Router) PendingQueueFull() bool {
	full := false
	r.conns.Each(func(_ string, c redis.Conn) bool {
		if c.PendingQueueFull() {
			full = true
			return false
		}
		return true
	})
	return full
}

// Close closes every connection in the table. Closing twice is a no-op.
func (r *Router) Close() {
	if !atomic.CompareAndSwapUint32(&r.closed, 0, 1) {
		return
	}
	r.conns.Each(func(_ string, c redis.Conn) bool { c.Close(); return true })
	r.report(LogRouterClosed{})
}

// resolve delivers a terminal outcome, shielding the router and the
// connections from panics in caller-supplied handlers.
func (r *Router) resolve(cb redis.Future, res interface{}, n uint64) {
	defer func() {
		if rec := recover(); rec != nil {
			r.report(LogHandlerPanic{Recovered: rec})
		}
	}()
	cb.Resolve(res, n)
}
