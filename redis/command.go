package redis

import (
	"fmt"
	"strings"
	"sync"
)

// CommandFlags classify a command for routing purposes.
type CommandFlags uint8

const (
	// CmdKeyless - command carries no key arguments and may run anywhere.
	CmdKeyless CommandFlags = 1 << iota
	// CmdReadOnly - command does not modify data; replicas may serve it.
	CmdReadOnly
	// CmdMultiKey - command may carry more than one key.
	CmdMultiKey
	// CmdMovable - key positions are known only after server-side
	// evaluation (EVAL with computed keys, SORT ... STORE and friends).
	CmdMovable
)

// Command describes the key arity of a single redis command, in the
// shape the COMMAND introspection reports it: positions are 1-based over
// the full argv including the command name itself.
type Command struct {
	Name     string
	FirstKey int // 0 means the command has no keys
	LastKey  int // negative counts from the end, -1 is the last argument
	Step     int // distance between consecutive keys
	Flags    CommandFlags
}

func (c *Command) IsKeyless() bool  { return c.Flags&CmdKeyless != 0 }
func (c *Command) IsReadOnly() bool { return c.Flags&CmdReadOnly != 0 }
func (c *Command) IsMultiKey() bool { return c.Flags&CmdMultiKey != 0 }
func (c *Command) IsMovable() bool  { return c.Flags&CmdMovable != 0 }

var commands = make(map[string]*Command)

func defCmd(name string, first, last, step int, flags CommandFlags) {
	commands[name] = &Command{Name: name, FirstKey: first, LastKey: last, Step: step, Flags: flags}
}

func init() {
	// keyless
	defCmd("DBSIZE", 0, 0, 0, CmdKeyless|CmdReadOnly)
	defCmd("FLUSHDB", 0, 0, 0, CmdKeyless)
	defCmd("KEYS", 0, 0, 0, CmdKeyless|CmdReadOnly)
	defCmd("RANDOMKEY", 0, 0, 0, CmdKeyless|CmdReadOnly)
	defCmd("TIME", 0, 0, 0, CmdKeyless|CmdReadOnly)
	defCmd("ECHO", 0, 0, 0, CmdKeyless|CmdReadOnly)
	defCmd("PUBLISH", 0, 0, 0, CmdKeyless)

	// strings
	defCmd("APPEND", 1, 1, 1, 0)
	defCmd("BITCOUNT", 1, 1, 1, CmdReadOnly)
	defCmd("BITPOS", 1, 1, 1, CmdReadOnly)
	defCmd("BITOP", 2, -1, 1, CmdMultiKey)
	defCmd("DECR", 1, 1, 1, 0)
	defCmd("DECRBY", 1, 1, 1, 0)
	defCmd("GET", 1, 1, 1, CmdReadOnly)
	defCmd("GETBIT", 1, 1, 1, CmdReadOnly)
	defCmd("GETRANGE", 1, 1, 1, CmdReadOnly)
	defCmd("GETSET", 1, 1, 1, 0)
	defCmd("INCR", 1, 1, 1, 0)
	defCmd("INCRBY", 1, 1, 1, 0)
	defCmd("INCRBYFLOAT", 1, 1, 1, 0)
	defCmd("MGET", 1, -1, 1, CmdReadOnly|CmdMultiKey)
	defCmd("MSET", 1, -1, 2, CmdMultiKey)
	defCmd("MSETNX", 1, -1, 2, CmdMultiKey)
	defCmd("PSETEX", 1, 1, 1, 0)
	defCmd("SET", 1, 1, 1, 0)
	defCmd("SETBIT", 1, 1, 1, 0)
	defCmd("SETEX", 1, 1, 1, 0)
	defCmd("SETNX", 1, 1, 1, 0)
	defCmd("SETRANGE", 1, 1, 1, 0)
	defCmd("STRLEN", 1, 1, 1, CmdReadOnly)

	// keyspace
	defCmd("DEL", 1, -1, 1, CmdMultiKey)
	defCmd("DUMP", 1, 1, 1, CmdReadOnly)
	defCmd("EXISTS", 1, -1, 1, CmdReadOnly|CmdMultiKey)
	defCmd("EXPIRE", 1, 1, 1, 0)
	defCmd("EXPIREAT", 1, 1, 1, 0)
	defCmd("PERSIST", 1, 1, 1, 0)
	defCmd("PEXPIRE", 1, 1, 1, 0)
	defCmd("PEXPIREAT", 1, 1, 1, 0)
	defCmd("PTTL", 1, 1, 1, CmdReadOnly)
	defCmd("RENAME", 1, 2, 1, CmdMultiKey)
	defCmd("RENAMENX", 1, 2, 1, CmdMultiKey)
	defCmd("RESTORE", 1, 1, 1, 0)
	defCmd("TOUCH", 1, -1, 1, CmdReadOnly|CmdMultiKey)
	defCmd("TTL", 1, 1, 1, CmdReadOnly)
	defCmd("TYPE", 1, 1, 1, CmdReadOnly)
	defCmd("UNLINK", 1, -1, 1, CmdMultiKey)

	// hashes
	defCmd("HDEL", 1, 1, 1, 0)
	defCmd("HEXISTS", 1, 1, 1, CmdReadOnly)
	defCmd("HGET", 1, 1, 1, CmdReadOnly)
	defCmd("HGETALL", 1, 1, 1, CmdReadOnly)
	defCmd("HINCRBY", 1, 1, 1, 0)
	defCmd("HINCRBYFLOAT", 1, 1, 1, 0)
	defCmd("HKEYS", 1, 1, 1, CmdReadOnly)
	defCmd("HLEN", 1, 1, 1, CmdReadOnly)
	defCmd("HMGET", 1, 1, 1, CmdReadOnly)
	defCmd("HMSET", 1, 1, 1, 0)
	defCmd("HSCAN", 1, 1, 1, CmdReadOnly)
	defCmd("HSET", 1, 1, 1, 0)
	defCmd("HSETNX", 1, 1, 1, 0)
	defCmd("HSTRLEN", 1, 1, 1, CmdReadOnly)
	defCmd("HVALS", 1, 1, 1, CmdReadOnly)

	// lists
	defCmd("LINDEX", 1, 1, 1, CmdReadOnly)
	defCmd("LINSERT", 1, 1, 1, 0)
	defCmd("LLEN", 1, 1, 1, CmdReadOnly)
	defCmd("LPOP", 1, 1, 1, 0)
	defCmd("LPUSH", 1, 1, 1, 0)
	defCmd("LPUSHX", 1, 1, 1, 0)
	defCmd("LRANGE", 1, 1, 1, CmdReadOnly)
	defCmd("LREM", 1, 1, 1, 0)
	defCmd("LSET", 1, 1, 1, 0)
	defCmd("LTRIM", 1, 1, 1, 0)
	defCmd("RPOP", 1, 1, 1, 0)
	defCmd("RPOPLPUSH", 1, 2, 1, CmdMultiKey)
	defCmd("RPUSH", 1, 1, 1, 0)
	defCmd("RPUSHX", 1, 1, 1, 0)

	// sets
	defCmd("SADD", 1, 1, 1, 0)
	defCmd("SCARD", 1, 1, 1, CmdReadOnly)
	defCmd("SDIFF", 1, -1, 1, CmdReadOnly|CmdMultiKey)
	defCmd("SDIFFSTORE", 1, -1, 1, CmdMultiKey)
	defCmd("SINTER", 1, -1, 1, CmdReadOnly|CmdMultiKey)
	defCmd("SINTERSTORE", 1, -1, 1, CmdMultiKey)
	defCmd("SISMEMBER", 1, 1, 1, CmdReadOnly)
	defCmd("SMEMBERS", 1, 1, 1, CmdReadOnly)
	defCmd("SMOVE", 1, 2, 1, CmdMultiKey)
	defCmd("SPOP", 1, 1, 1, 0)
	defCmd("SRANDMEMBER", 1, 1, 1, CmdReadOnly)
	defCmd("SREM", 1, 1, 1, 0)
	defCmd("SSCAN", 1, 1, 1, CmdReadOnly)
	defCmd("SUNION", 1, -1, 1, CmdReadOnly|CmdMultiKey)
	defCmd("SUNIONSTORE", 1, -1, 1, CmdMultiKey)

	// sorted sets
	defCmd("ZADD", 1, 1, 1, 0)
	defCmd("ZCARD", 1, 1, 1, CmdReadOnly)
	defCmd("ZCOUNT", 1, 1, 1, CmdReadOnly)
	defCmd("ZINCRBY", 1, 1, 1, 0)
	defCmd("ZLEXCOUNT", 1, 1, 1, CmdReadOnly)
	defCmd("ZRANGE", 1, 1, 1, CmdReadOnly)
	defCmd("ZRANGEBYLEX", 1, 1, 1, CmdReadOnly)
	defCmd("ZRANGEBYSCORE", 1, 1, 1, CmdReadOnly)
	defCmd("ZRANK", 1, 1, 1, CmdReadOnly)
	defCmd("ZREM", 1, 1, 1, 0)
	defCmd("ZREMRANGEBYLEX", 1, 1, 1, 0)
	defCmd("ZREMRANGEBYRANK", 1, 1, 1, 0)
	defCmd("ZREMRANGEBYSCORE", 1, 1, 1, 0)
	defCmd("ZREVRANGE", 1, 1, 1, CmdReadOnly)
	defCmd("ZREVRANGEBYLEX", 1, 1, 1, CmdReadOnly)
	defCmd("ZREVRANGEBYSCORE", 1, 1, 1, CmdReadOnly)
	defCmd("ZREVRANK", 1, 1, 1, CmdReadOnly)
	defCmd("ZSCAN", 1, 1, 1, CmdReadOnly)
	defCmd("ZSCORE", 1, 1, 1, CmdReadOnly)

	// hyperloglog
	defCmd("PFADD", 1, 1, 1, 0)
	defCmd("PFCOUNT", 1, -1, 1, CmdReadOnly|CmdMultiKey)
	defCmd("PFMERGE", 1, -1, 1, CmdMultiKey)

	// geo
	defCmd("GEOADD", 1, 1, 1, 0)
	defCmd("GEODIST", 1, 1, 1, CmdReadOnly)
	defCmd("GEOHASH", 1, 1, 1, CmdReadOnly)
	defCmd("GEOPOS", 1, 1, 1, CmdReadOnly)

	// movable keys: the key set depends on arguments the server
	// interprets (numkeys counters, STORE clauses).
	defCmd("EVAL", 0, 0, 0, CmdMovable)
	defCmd("EVALSHA", 0, 0, 0, CmdMovable)
	defCmd("GEORADIUS", 0, 0, 0, CmdMovable)
	defCmd("GEORADIUSBYMEMBER", 0, 0, 0, CmdMovable)
	defCmd("SORT", 0, 0, 0, CmdMovable)
	defCmd("XREAD", 0, 0, 0, CmdMovable|CmdReadOnly)
	defCmd("XREADGROUP", 0, 0, 0, CmdMovable)
	defCmd("ZINTERSTORE", 0, 0, 0, CmdMovable)
	defCmd("ZUNIONSTORE", 0, 0, 0, CmdMovable)
}

// defaultCommand is used for commands missing from the table: assume a
// plain single-key write, which routes it by its first argument.
func defaultCommand(name string) *Command {
	return &Command{Name: name, FirstKey: 1, LastKey: 1, Step: 1}
}

// LookupCommand returns the descriptor for a command name, matched
// case-insensitively. It never returns nil.
func LookupCommand(name string) *Command {
	upper := strings.ToUpper(name)
	if cmd, ok := commands[upper]; ok {
		return cmd
	}
	return defaultCommand(upper)
}

// ReplicaSafe reports whether the command only reads data.
func ReplicaSafe(name string) bool {
	return LookupCommand(name).IsReadOnly()
}

var unsupported = struct {
	sync.RWMutex
	m map[string]string
}{m: make(map[string]string)}

// RegisterUnsupported marks a command as unusable through the cluster
// router. An empty reason installs the default message. Registration is
// expected at startup only; lookups may run concurrently.
func RegisterUnsupported(name, reason string) {
	upper := strings.ToUpper(name)
	if reason == "" {
		reason = fmt.Sprintf("redring does not handle command %s, use non cluster client on the right node.", upper)
	}
	unsupported.Lock()
	unsupported.m[upper] = reason
	unsupported.Unlock()
}

// UnsupportedReason returns the rejection message for a command, if the
// command can not be served by the cluster router.
func UnsupportedReason(name string) (string, bool) {
	unsupported.RLock()
	reason, ok := unsupported.m[strings.ToUpper(name)]
	unsupported.RUnlock()
	return reason, ok
}

func init() {
	for _, name := range []string{
		"ASKING", "AUTH", "BGREWRITEAOF", "BGSAVE", "CLIENT", "CLUSTER",
		"COMMAND", "CONFIG", "DEBUG", "DISCARD", "HOST", "INFO",
		"LASTSAVE", "LATENCY", "LOLWUT", "MEMORY", "MODULE", "MONITOR",
		"PFDEBUG", "PFSELFTEST", "PING", "READONLY", "READWRITE",
		"REPLCONF", "REPLICAOF", "ROLE", "SAVE", "SCAN", "SCRIPT",
		"SELECT", "SHUTDOWN", "SLAVEOF", "SLOWLOG", "SWAPDB", "SYNC",
		"SENTINEL",
		// connection-scoped state that a shared multiplexed connection
		// can not carry
		"MULTI", "EXEC", "WATCH", "UNWATCH",
		"SUBSCRIBE", "UNSUBSCRIBE", "PSUBSCRIBE", "PUNSUBSCRIBE",
	} {
		RegisterUnsupported(name, "")
	}
	RegisterUnsupported("FLUSHALL", "redring does not handle command FLUSHALL, use FLUSHDB")
}
