/*
Package redring - cluster-aware routing core for Redis.

https://redis.io/topics/cluster-spec

A Redis cluster spreads its keyspace over 16384 hash slots, and every
command has to reach the node that currently serves the slot of its keys.
This module implements the routing half of a cluster client: given a
command (or a batch of commands), it decides which node must receive it,
sends it over a borrowed connection, follows the cluster's redirection
protocol (ASK, TRYAGAIN, CLUSTERDOWN with bounded retries and backoff),
and fans multi-slot commands out across the cluster, reducing the partial
replies into a single answer.

It deliberately does not speak RESP and does not dial sockets: the
single-node connection is an interface (redis.Conn), supplied fully
populated at construction time. Topology is likewise a snapshot: a MOVED
reply means the snapshot is stale, and it is surfaced to the caller so the
client can be rebuilt against fresh CLUSTER SLOTS output.

Capabilities

- slot computation with hash-tag support,

- routing of keyless, single-key and multi-key commands,

- scatter/gather with per-command reply reducers (MGET, MSET, DEL, ...),

- master/replica read preference policies,

- same-slot pipelined batches,

- hook for custom logging.

Limitations

- commands whose key positions are only known to the server (EVAL with
computed keys, SORT ... STORE, GEORADIUS ... STORE) are rejected,

- transactions may not span shards,

- a MOVED redirection is not followed: the topology snapshot is immutable
and the caller is expected to rebuild the client.

Structure

- common functionality is in redis subpackage

- routing core is in rediscluster subpackage
*/
package redring
