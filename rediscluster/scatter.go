package rediscluster

import (
	"sync/atomic"

	"github.com/kvflow/redring/redis"
)

// gather joins N sub-request replies into one outcome: the first
// failure wins, otherwise the reducer runs over the parts in issue
// order. The done latch guarantees at most one terminal delivery; late
// replies after a failure are discarded without touching the caller.
type gather struct {
	r      *Router
	cb     redis.Future
	reduce Reducer
	parts  []interface{}
	remain int32
	done   uint32
}

func newGather(r *Router, cb redis.Future, reduce Reducer, n int) *gather {
	return &gather{r: r, cb: cb, reduce: reduce, parts: make([]interface{}, n), remain: int32(n)}
}

// Resolve implements redis.Future; n is the sub-request's issue index.
func (g *gather) Resolve(res interface{}, n uint64) {
	if err := redis.AsErrorx(res); err != nil {
		if atomic.CompareAndSwapUint32(&g.done, 0, 1) {
			g.r.resolve(g.cb, err, 0)
		}
		atomic.AddInt32(&g.remain, -1)
		return
	}
	g.parts[n] = res
	if atomic.AddInt32(&g.remain, -1) == 0 {
		if atomic.CompareAndSwapUint32(&g.done, 0, 1) {
			g.finish()
		}
	}
}

// finish runs the reducer and delivers the aggregate. Reducers are
// caller-supplied, so they get the same panic shield as handlers.
func (g *gather) finish() {
	defer func() {
		if rec := recover(); rec != nil {
			g.r.report(LogHandlerPanic{Recovered: rec})
		}
	}()
	g.cb.Resolve(g.reduce(g.parts), 0)
}

// Cancelled implements redis.Future. A finished gather reports
// cancelled so connections can drop late replies early.
func (g *gather) Cancelled() bool {
	return atomic.LoadUint32(&g.done) == 1 || g.cb.Cancelled()
}

// scatterGroups fans a keyless command out over every slot grouping and
// reduces the replies. Each sub-request runs with its own full retry
// budget.
func (r *Router) scatterGroups(policy ReplicaPolicyEnum, cmd *redis.Command, req redis.Request,
	reduce Reducer, cb redis.Future) {

	n := r.slots.Size()
	if n == 0 {
		r.resolve(cb, reduce(nil), 0)
		return
	}
	g := newGather(r, cb, reduce, n)
	for i := 0; i < n; i++ {
		endpoint := selectMasterOrReplica(policy, cmd.IsReadOnly(), r.slots.Group(i))
		r.dispatchIndexed(endpoint, r.opts.Retries, req, g, uint64(i))
	}
}

// scatterSplit fans the per-slot sub-requests of a cross-slot multi-key
// command out and reduces the replies in issue order.
func (r *Router) scatterSplit(policy ReplicaPolicyEnum, cmd *redis.Command,
	parts map[uint16]*redis.Request, order []uint16, reduce Reducer, cb redis.Future) {

	g := newGather(r, cb, reduce, len(order))
	for i, slot := range order {
		endpoint := r.selectEndpoint(policy, int(slot), cmd.IsReadOnly())
		r.dispatchIndexed(endpoint, r.opts.Retries, *parts[slot], g, uint64(i))
	}
}
