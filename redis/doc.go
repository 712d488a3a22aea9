/*
Package redis holds the protocol-independent core shared by routing
components: the request and reply value model, the command descriptor
table, callback futures, the error taxonomy, and the Conn contract a
single-node connection has to satisfy.
*/
package redis
