package rediscluster

import (
	"github.com/kvflow/redring/redis"
)

// ConnTable maps endpoint URIs to live connections. It is populated at
// cluster-connect time, before the router is constructed, and read-only
// afterwards; the router borrows connections but never dials.
type ConnTable struct {
	conns map[string]redis.Conn
}

// NewConnTable returns an empty table.
func NewConnTable() *ConnTable {
	return &ConnTable{conns: make(map[string]redis.Conn)}
}

// Set installs the connection for an endpoint. Call only before the
// table is handed to a router.
func (t *ConnTable) Set(endpoint string, conn redis.Conn) {
	t.conns[endpoint] = conn
}

// Get returns the connection for an endpoint, or nil.
func (t *ConnTable) Get(endpoint string) redis.Conn {
	return t.conns[endpoint]
}

// Len returns the number of endpoints in the table.
func (t *ConnTable) Len() int {
	return len(t.conns)
}

// Each calls cb for every connection until cb returns false.
func (t *ConnTable) Each(cb func(endpoint string, conn redis.Conn) bool) {
	for endpoint, conn := range t.conns {
		if !cb(endpoint, conn) {
			return
		}
	}
}
