package rediscluster

import (
	"time"

	"github.com/kvflow/redring/redis"
)

// dispatch issues one request to an endpoint and post-processes the
// reply through the redirection machine.
func (r *Router) dispatch(endpoint string, retries int, req redis.Request, cb redis.Future) {
	r.dispatchIndexed(endpoint, retries, req, cb, 0)
}

func (r *Router) dispatchIndexed(endpoint string, retries int, req redis.Request, cb redis.Future, n uint64) {
	conn := r.conns.Get(endpoint)
	if conn == nil {
		r.resolve(cb, missingConn(endpoint), n)
		return
	}
	conn.Send(req, redis.FuncFuture(func(res interface{}, _ uint64) {
		r.postprocess(conn, endpoint, retries, cb, n, res, func(to string, budget int) {
			r.dispatchIndexed(to, budget, req, cb, n)
		})
	}), n)
}

// batchDispatch issues a whole batch to an endpoint. Recovery actions
// apply to the batch as a unit: ASKING precedes a retried batch, and
// TRYAGAIN/CLUSTERDOWN re-issue all commands.
func (r *Router) batchDispatch(endpoint string, retries int, reqs []redis.Request, cb redis.Future) {
	conn := r.conns.Get(endpoint)
	if conn == nil {
		r.resolve(cb, missingConn(endpoint), 0)
		return
	}
	conn.SendBatch(reqs, redis.FuncFuture(func(res interface{}, _ uint64) {
		r.postprocess(conn, endpoint, retries, cb, 0, res, func(to string, budget int) {
			r.batchDispatch(to, budget, reqs, cb)
		})
	}), 0)
}

// postprocess classifies a reply. Anything but ASK, TRYAGAIN and
// CLUSTERDOWN is surfaced as-is: in particular MOVED means the topology
// snapshot is stale and the caller has to rebuild the client. rerun
// re-issues the request chain with a decremented budget; the budget is
// never reset across an ASKING-then-retry sequence.
func (r *Router) postprocess(conn redis.Conn, endpoint string, retries int, cb redis.Future, n uint64,
	res interface{}, rerun func(endpoint string, retries int)) {

	err := redis.AsErrorx(res)
	if err == nil || !redis.IsReply(err) || retries <= 0 {
		r.resolve(cb, res, n)
		return
	}

	kind, _ := redis.ErrorToken(err, 0)
	switch kind {
	case "ASK":
		// ASKING must go to the node that answered ASK, on the same
		// connection, before the redirected attempt.
		conn.Send(redis.Req("ASKING"), redis.FuncFuture(func(asking interface{}, _ uint64) {
			if redis.AsError(asking) != nil {
				r.resolve(cb, asking, n)
				return
			}
			addr, ok := redis.ErrorToken(err, 2)
			if !ok {
				// bad message
				r.resolve(cb, res, n)
				return
			}
			to := endpointURI(addr)
			r.report(LogRedirect{From: endpoint, To: to})
			rerun(to, retries-1)
		}), 0)
	case "TRYAGAIN", "CLUSTERDOWN":
		r.report(LogRetry{Endpoint: endpoint, Retries: retries - 1, Error: err})
		time.AfterFunc(retryBackoff(retries), func() {
			rerun(endpoint, retries-1)
		})
	default:
		r.resolve(cb, res, n)
	}
}

// retryBackoff grows exponentially as the budget shrinks and is clamped
// at 2^7 * 10ms = 1280ms once fewer than 9 retries remain.
func retryBackoff(retries int) time.Duration {
	if retries < 9 {
		retries = 9
	}
	return time.Duration(1<<uint(16-retries)) * 10 * time.Millisecond
}

func endpointURI(addr string) string {
	return "redis://" + addr
}

func missingConn(endpoint string) error {
	return redis.ErrMissingConn.New("missing connection to %s", endpoint).
		WithProperty(redis.EKEndpoint, endpoint)
}
