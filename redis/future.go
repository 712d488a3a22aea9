package redis

// Future is resolved exactly once per request with either a reply value
// or an *errorx.Error. n is the index the request was issued under, for
// callbacks shared between several requests.
type Future interface {
	Resolve(res interface{}, n uint64)
	Cancelled() bool
}

// FuncFuture wraps a plain function into a Future.
type FuncFuture func(res interface{}, n uint64)

// Cancelled implements Future.
func (f FuncFuture) Cancelled() bool { return false }

// Resolve implements Future.
func (f FuncFuture) Resolve(res interface{}, n uint64) { f(res, n) }

// ChanFuture is a Future whose result can be awaited through a channel.
type ChanFuture struct {
	r    interface{}
	wait chan struct{}
}

// NewChanFuture returns an initialized ChanFuture.
func NewChanFuture() *ChanFuture {
	return &ChanFuture{wait: make(chan struct{})}
}

// Value blocks until the future is resolved and returns the result.
func (f *ChanFuture) Value() interface{} {
	<-f.wait
	return f.r
}

// Done returns a channel closed on resolution.
func (f *ChanFuture) Done() <-chan struct{} {
	return f.wait
}

// Resolve implements Future.
func (f *ChanFuture) Resolve(res interface{}, _ uint64) {
	f.r = res
	close(f.wait)
}

// Cancelled implements Future.
func (f *ChanFuture) Cancelled() bool { return false }

// ChanFutures is a set of ChanFuture resolved by index.
type ChanFutures []*ChanFuture

// Resolve implements Future.
func (f ChanFutures) Resolve(res interface{}, i uint64) {
	f[i].Resolve(res, i)
}

// Cancelled implements Future.
func (f ChanFutures) Cancelled() bool { return false }
