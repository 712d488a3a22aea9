package rediscluster

import (
	"github.com/kvflow/redring/redis"
)

// splitRequest partitions a multi-key request whose keys span several
// slots into one sub-request per slot. Every sub-request keeps the
// positional arguments before the first key, its own keys (each with the
// step-1 arguments that belong to it), and the shared tail after the
// last key. The returned slots preserve first-appearance order, which
// becomes the issue order of the scatter.
func splitRequest(cmd string, args [][]byte, start, end, step int) (map[uint16]*redis.Request, []uint16) {
	parts := make(map[uint16]*redis.Request)
	var order []uint16

	for i := start; i < end; i += step {
		slot := Slot(string(args[i]))
		req := parts[slot]
		if req == nil {
			req = &redis.Request{Cmd: cmd}
			req.Args = append(req.Args, args[:start]...)
			parts[slot] = req
			order = append(order, slot)
		}
		tail := i + step
		if tail > end {
			tail = end
		}
		req.Args = append(req.Args, args[i:tail]...)
	}

	for _, req := range parts {
		req.Args = append(req.Args, args[end:]...)
	}

	return parts, order
}
