package rediscluster

import (
	"strings"
	"sync"

	"github.com/kvflow/redring/redis"
)

// Reducer combines the partial replies of a fanned-out command into a
// single reply. Parts are ordered by sub-request issue order, and a
// reducer runs only when every part succeeded.
type Reducer func(parts []interface{}) interface{}

var reducers = struct {
	sync.RWMutex
	m map[string]Reducer
}{m: make(map[string]Reducer)}

// RegisterReducer installs the reducer for a command. Registration is
// expected at startup only; lookups may run concurrently.
func RegisterReducer(cmd string, fn Reducer) {
	reducers.Lock()
	reducers.m[strings.ToUpper(cmd)] = fn
	reducers.Unlock()
}

func reducerFor(cmd string) Reducer {
	reducers.RLock()
	fn := reducers.m[strings.ToUpper(cmd)]
	reducers.RUnlock()
	return fn
}

func sumIntegers(parts []interface{}) interface{} {
	var total int64
	for _, p := range parts {
		if v, ok := redis.IntReply(p); ok {
			total += v
		}
	}
	return total
}

func concatArrays(parts []interface{}) interface{} {
	total := 0
	for _, p := range parts {
		if arr, ok := redis.ArrayReply(p); ok {
			total += len(arr)
		}
	}
	flat := make([]interface{}, 0, total)
	for _, p := range parts {
		if arr, ok := redis.ArrayReply(p); ok {
			flat = append(flat, arr...)
		}
	}
	return flat
}

func init() {
	// MSET can not fail per shard, so the aggregate is always OK.
	RegisterReducer("MSET", func([]interface{}) interface{} { return redis.OK })
	RegisterReducer("FLUSHDB", func([]interface{}) interface{} { return redis.OK })

	RegisterReducer("DEL", sumIntegers)
	RegisterReducer("DBSIZE", sumIntegers)

	RegisterReducer("MGET", concatArrays)
	RegisterReducer("KEYS", concatArrays)
}
