package redis

import (
	"fmt"
	"strconv"
)

// Request is a single command together with its arguments. The command
// name is not repeated in Args.
type Request struct {
	Cmd  string
	Args [][]byte
}

// Req builds a Request, converting every argument to its byte form.
func Req(cmd string, args ...interface{}) Request {
	conv := make([][]byte, len(args))
	for i, arg := range args {
		conv[i] = ArgToBytes(arg)
	}
	return Request{Cmd: cmd, Args: conv}
}

// ArgToBytes converts an argument to the byte string sent on the wire.
func ArgToBytes(arg interface{}) []byte {
	switch v := arg.(type) {
	case string:
		return []byte(v)
	case []byte:
		return v
	case int:
		return strconv.AppendInt(nil, int64(v), 10)
	case int64:
		return strconv.AppendInt(nil, v, 10)
	case uint64:
		return strconv.AppendUint(nil, v, 10)
	case float64:
		return strconv.AppendFloat(nil, v, 'f', -1, 64)
	case bool:
		if v {
			return []byte("1")
		}
		return []byte("0")
	case nil:
		return nil
	default:
		return []byte(fmt.Sprint(arg))
	}
}

// Key returns the first key of the request, if it has one.
func (req Request) Key() (string, bool) {
	cmd := LookupCommand(req.Cmd)
	if cmd.IsKeyless() || cmd.IsMovable() {
		return "", false
	}
	start := cmd.FirstKey - 1
	if start < 0 || start >= len(req.Args) {
		return "", false
	}
	return string(req.Args[start]), true
}

func (req Request) String() string {
	s := req.Cmd
	for i, a := range req.Args {
		if i > 3 {
			return s + "..."
		}
		s += " " + string(a)
	}
	return s
}
