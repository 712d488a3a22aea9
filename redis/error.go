package redis

import (
	"strings"

	"github.com/joomcode/errorx"
)

// Errors is the root namespace for all errors produced by this library.
var Errors = errorx.NewNamespace("redring")

var (
	// ErrOpts - wrong options given to a constructor.
	ErrOpts = Errors.NewSubNamespace("opts")
	// ErrRequest - request is malformed or not routable; no reason to retry.
	ErrRequest = Errors.NewSubNamespace("request")
	// ErrCluster - cluster configuration inconsistent with the request.
	ErrCluster = Errors.NewSubNamespace("cluster")
	// ErrResult - regular error replies sent by redis itself. They are
	// values travelling the reply path, not client failures, so stack
	// traces are omitted.
	ErrResult = Errors.NewSubNamespace("result", TraitReply).
			ApplyModifiers(errorx.TypeModifierOmitStackTrace)
)

var (
	// ErrNilSlotMap - slot map is not given to the router constructor.
	ErrNilSlotMap = ErrOpts.NewType("nil_slot_map")
	// ErrNilConnTable - connection table is not given to the router constructor.
	ErrNilConnTable = ErrOpts.NewType("nil_conn_table")
	// ErrBadSlotsRange - slot range is out of bounds or has no endpoints.
	ErrBadSlotsRange = ErrOpts.NewType("bad_slots_range")

	// ErrUnsupportedCommand - command can not be used through a cluster client.
	ErrUnsupportedCommand = ErrRequest.NewType("unsupported_command")
	// ErrMovableKeys - key positions are known only to the server.
	ErrMovableKeys = ErrRequest.NewType("movable_keys")
	// ErrNoReducer - multi-key command spans slots and no reducer is registered.
	ErrNoReducer = ErrRequest.NewType("no_reducer")
	// ErrCrossSlotBatch - commands in a batch target different slots.
	ErrCrossSlotBatch = ErrRequest.NewType("cross_slot_batch")
	// ErrNoSlotKey - no key argument to determine the slot.
	ErrNoSlotKey = ErrRequest.NewType("no_slot_key")

	// ErrMissingConn - connection table has no entry for the endpoint.
	ErrMissingConn = ErrCluster.NewType("missing_connection")

	// ErrReply - plain -ERR style reply.
	ErrReply = ErrResult.NewType("reply")
	// ErrMoved - slot was reassigned to another node; not recovered here.
	ErrMoved = ErrResult.NewType("moved", TraitRedirect)
	// ErrAsk - one-off redirection during slot migration.
	ErrAsk = ErrResult.NewType("ask", TraitRedirect)
	// ErrTryAgain - transient multi-key failure during resharding.
	ErrTryAgain = ErrResult.NewType("try_again", TraitRetriable)
	// ErrClusterDown - cluster is not serving requests at the moment.
	ErrClusterDown = ErrResult.NewType("cluster_down", TraitRetriable)
	// ErrLoading - node is loading its dataset.
	ErrLoading = ErrResult.NewType("loading")
)

var (
	// TraitReply marks errors that were received from redis as replies.
	TraitReply = errorx.RegisterTrait("reply")
	// TraitRedirect marks MOVED and ASK replies.
	TraitRedirect = errorx.RegisterTrait("redirect")
	// TraitRetriable marks replies recovered with backoff.
	TraitRetriable = errorx.RegisterTrait("retriable")
)

var (
	// EKLine - raw text of an error reply, exactly as redis sent it.
	EKLine = errorx.RegisterProperty("line")
	// EKMovedTo - "host:port" token of a MOVED/ASK reply.
	EKMovedTo = errorx.RegisterPrintableProperty("movedto")
	// EKSlot - slot the failed request was routed by.
	EKSlot = errorx.RegisterPrintableProperty("slot")
	// EKEndpoint - endpoint the failed request was routed to.
	EKEndpoint = errorx.RegisterPrintableProperty("endpoint")
	// EKRequest - request that triggered the error.
	EKRequest = errorx.RegisterProperty("request")
)

// ReplyError converts a raw error reply line into the matching error
// value. Connection implementations call it for every -prefixed reply.
func ReplyError(line string) *errorx.Error {
	var err *errorx.Error
	switch token(line, 0) {
	case "MOVED":
		err = ErrMoved.New(line)
	case "ASK":
		err = ErrAsk.New(line)
	case "TRYAGAIN":
		err = ErrTryAgain.New(line)
	case "CLUSTERDOWN":
		err = ErrClusterDown.New(line)
	case "LOADING":
		err = ErrLoading.New(line)
	default:
		err = ErrReply.New(line)
	}
	err = err.WithProperty(EKLine, line)
	if addr := token(line, 2); addr != "" && errorx.HasTrait(err, TraitRedirect) {
		err = err.WithProperty(EKMovedTo, addr)
	}
	return err
}

// IsReply reports whether err is an error reply received from redis,
// as opposed to a failure produced by the client itself.
func IsReply(err error) bool {
	return errorx.HasTrait(err, TraitReply)
}

// ErrorText returns the raw reply line carried by an error reply.
// For errors of other kinds it falls back to the error message.
func ErrorText(err *errorx.Error) string {
	if line, ok := err.Property(EKLine); ok {
		if s, ok := line.(string); ok {
			return s
		}
	}
	return err.Message()
}

// ErrorToken extracts the k-th whitespace-separated token (0-indexed)
// of the raw reply line carried by err. The second return is false when
// the line has no such token.
func ErrorToken(err *errorx.Error, k int) (string, bool) {
	t := token(ErrorText(err), k)
	return t, t != ""
}

func token(line string, k int) string {
	for ; k > 0; k-- {
		i := strings.IndexByte(line, ' ')
		if i < 0 {
			return ""
		}
		line = line[i+1:]
	}
	if i := strings.IndexByte(line, ' '); i >= 0 {
		line = line[:i]
	}
	return line
}
