package redis

// Conn is the contract a single-node connection has to satisfy for the
// cluster router to drive it. Implementations own framing, pipelining
// and the socket lifecycle; replies (including error replies built with
// ReplyError) are delivered through the Future passed to Send.
//
// A connection is a pipelined FIFO: per connection, replies arrive in
// the order requests were sent.
type Conn interface {
	// Send enqueues one command and later resolves cb with its reply.
	Send(req Request, cb Future, n uint64)
	// SendBatch enqueues the commands back to back and resolves cb once:
	// with the []interface{} of replies in request order, or with the
	// first error reply if any command failed.
	SendBatch(reqs []Request, cb Future, n uint64)

	// Flow control of the reply stream.
	Pause()
	Resume()
	Fetch(n int64)
	SetExceptionHandler(func(error))
	SetEndHandler(func())
	SetReplyHandler(func(interface{}))

	// PendingQueueFull reports whether the connection can not accept
	// more in-flight requests.
	PendingQueueFull() bool
	Close()
}
