/*
Package rediscluster routes commands to the nodes of a sharded redis
deployment: slot hashing, topology snapshots, master/replica read
preference, per-slot request splitting with reply reducers, and the
MOVED/ASK/TRYAGAIN/CLUSTERDOWN redirection machine with bounded retries
and exponential backoff.
*/
package rediscluster
