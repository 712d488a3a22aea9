package rediscluster

import (
	"github.com/kvflow/redring/redis"
)

// anySlot routes a request to a random node.
const anySlot = -1

// Send classifies the request and routes it: keyless commands go to any
// node (or fan out over every slot grouping when a reducer exists),
// single-key and single-slot multi-key commands go to their slot's
// node, and cross-slot multi-key commands are split per slot and
// gathered back through the command's reducer.
func (r *Router) Send(req redis.Request, cb redis.Future) {
	r.sendWithPolicy(r.opts.ReplicaPolicy, req, cb)
}

func (r *Router) sendWithPolicy(policy ReplicaPolicyEnum, req redis.Request, cb redis.Future) {
	if reason, ok := redis.UnsupportedReason(req.Cmd); ok {
		r.resolve(cb, redis.ErrUnsupportedCommand.New(reason), 0)
		return
	}
	cmd := redis.LookupCommand(req.Cmd)
	if cmd.IsMovable() {
		r.resolve(cb, redis.ErrMovableKeys.New(
			"redring does not handle movable keys commands, use non cluster client on the right node."), 0)
		return
	}

	if cmd.IsKeyless() {
		if reduce := reducerFor(req.Cmd); reduce != nil {
			r.scatterGroups(policy, cmd, req, reduce, cb)
			return
		}
		r.dispatch(r.selectEndpoint(policy, anySlot, cmd.IsReadOnly()), r.opts.Retries, req, cb)
		return
	}

	args := req.Args
	start, end, step := keySpan(cmd, args)
	if start < 0 || start >= len(args) || step <= 0 {
		r.resolve(cb, redis.ErrNoSlotKey.New("no key to determine slot").
			WithProperty(redis.EKRequest, req), 0)
		return
	}

	if cmd.IsMultiKey() {
		currentSlot := anySlot
		for i := start; i < end; i += step {
			slot := int(Slot(string(args[i])))
			if currentSlot == anySlot {
				currentSlot = slot
				continue
			}
			if currentSlot != slot {
				reduce := reducerFor(req.Cmd)
				if reduce == nil {
					r.resolve(cb, redis.ErrNoReducer.New("no reducer available for %s", cmd.Name).
						WithProperty(redis.EKRequest, req), 0)
					return
				}
				parts, order := splitRequest(req.Cmd, args, start, end, step)
				r.scatterSplit(policy, cmd, parts, order, reduce, cb)
				return
			}
		}
		// all keys are on the same slot
		r.dispatch(r.selectEndpoint(policy, currentSlot, cmd.IsReadOnly()), r.opts.Retries, req, cb)
		return
	}

	slot := int(Slot(string(args[start])))
	r.dispatch(r.selectEndpoint(policy, slot, cmd.IsReadOnly()), r.opts.Retries, req, cb)
}

// keySpan resolves the descriptor's 1-based key positions into a
// [start, end) range with a step over args (which exclude the command
// name). A negative LastKey counts from the end of args.
func keySpan(cmd *redis.Command, args [][]byte) (start, end, step int) {
	start = cmd.FirstKey - 1
	end = cmd.LastKey
	if end > 0 {
		end--
	}
	if end < 0 {
		end = len(args) + end + 1
	}
	if end > len(args) {
		end = len(args)
	}
	return start, end, cmd.Step
}

// SendBatch routes a pipelined batch. All requests must resolve to the
// same slot: keyless requests are skipped when the slot is computed, the
// first observed slot is chosen, and any later request whose slot
// differs fails the whole batch before any I/O happens.
func (r *Router) SendBatch(reqs []redis.Request, cb redis.Future) {
	if len(reqs) == 0 {
		r.resolve(cb, []interface{}{}, 0)
		return
	}

	currentSlot := anySlot
	readOnly := false

	for i := range reqs {
		if reason, ok := redis.UnsupportedReason(reqs[i].Cmd); ok {
			r.resolve(cb, redis.ErrUnsupportedCommand.New(reason), 0)
			return
		}
		cmd := redis.LookupCommand(reqs[i].Cmd)
		readOnly = readOnly || cmd.IsReadOnly()

		// this command can run anywhere
		if cmd.IsKeyless() {
			continue
		}
		if cmd.IsMovable() {
			r.resolve(cb, redis.ErrMovableKeys.New(
				"redring does not handle movable keys commands, use non cluster client on the right node."), 0)
			return
		}

		args := reqs[i].Args
		start, end, step := keySpan(cmd, args)
		if start < 0 || start >= len(args) || step <= 0 {
			r.resolve(cb, redis.ErrNoSlotKey.New("no key to determine slot").
				WithProperty(redis.EKRequest, reqs[i]), 0)
			return
		}

		if cmd.IsMultiKey() {
			for j := start; j < end; j += step {
				slot := int(Slot(string(args[j])))
				if currentSlot == anySlot {
					currentSlot = slot
					continue
				}
				if currentSlot != slot {
					r.resolve(cb, crossSlotBatchError(reqs[i]), 0)
					return
				}
			}
			continue
		}

		slot := int(Slot(string(args[start])))
		if currentSlot == anySlot {
			currentSlot = slot
		} else if currentSlot != slot {
			r.resolve(cb, crossSlotBatchError(reqs[i]), 0)
			return
		}
	}

	r.batchDispatch(r.selectEndpoint(r.opts.ReplicaPolicy, currentSlot, readOnly), r.opts.Retries, reqs, cb)
}

func crossSlotBatchError(req redis.Request) error {
	return redis.ErrCrossSlotBatch.New(
		"redring does not handle batching commands with keys across different slots").
		WithProperty(redis.EKRequest, req)
}
