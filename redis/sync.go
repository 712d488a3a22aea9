package redis

import (
	"sync"
)

// Sender is the downstream contract of the cluster router.
type Sender interface {
	Send(req Request, cb Future)
	SendBatch(reqs []Request, cb Future)
	Close()
}

// Sync wraps a Sender with a blocking call interface.
type Sync struct {
	S Sender
}

// Do issues a single command and waits for its reply.
func (s Sync) Do(cmd string, args ...interface{}) interface{} {
	return s.Send(Req(cmd, args...))
}

// Send issues a request and waits for its reply.
func (s Sync) Send(r Request) interface{} {
	var res syncRes
	res.Add(1)
	s.S.Send(r, &res)
	res.Wait()
	return res.r
}

// SendBatch issues a batch and waits for the reply list.
func (s Sync) SendBatch(reqs []Request) interface{} {
	var res syncRes
	res.Add(1)
	s.S.SendBatch(reqs, &res)
	res.Wait()
	return res.r
}

type syncRes struct {
	r interface{}
	sync.WaitGroup
}

func (s *syncRes) Cancelled() bool { return false }

func (s *syncRes) Resolve(res interface{}, _ uint64) {
	s.r = res
	s.Done()
}

// ChanFutured wraps a Sender with a channel-future call interface.
type ChanFutured struct {
	S Sender
}

// Send issues a request and returns a future for its reply.
func (s ChanFutured) Send(r Request) *ChanFuture {
	f := NewChanFuture()
	s.S.Send(r, f)
	return f
}

// SendBatch issues a batch and returns a future for the reply list.
func (s ChanFutured) SendBatch(reqs []Request) *ChanFuture {
	f := NewChanFuture()
	s.S.SendBatch(reqs, f)
	return f
}
