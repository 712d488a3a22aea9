package rediscluster

import (
	"math/rand"

	"github.com/kvflow/redring/redis"
)

// ReplicaPolicyEnum is the read preference between a shard's master and
// its replicas.
type ReplicaPolicyEnum int

const (
	// MasterOnly - reads always go to the master.
	MasterOnly ReplicaPolicyEnum = iota
	// ReplicaOnly - reads go to a random replica; falls back to the
	// master when the shard has none.
	ReplicaOnly
	// MasterAndReplicas - reads are shared uniformly between the master
	// and the replicas.
	MasterAndReplicas
)

// selectMasterOrReplica picks one endpoint of a shard's list (master
// first, replicas after). Writes always get the master. The randomness
// does not need to be cryptographic.
func selectMasterOrReplica(policy ReplicaPolicyEnum, readOnly bool, endpoints []string) string {
	index := 0
	if readOnly && policy != MasterOnly && len(endpoints) > 1 {
		switch policy {
		case ReplicaOnly:
			index = rand.Intn(len(endpoints)-1) + 1
		case MasterAndReplicas:
			index = rand.Intn(len(endpoints))
		}
	}
	return endpoints[index]
}

// selectEndpoint resolves a slot to a concrete endpoint. slot < 0 means
// "any node will do"; note that this may pick a replica regardless of
// policy. A slot missing from the map falls back to the bootstrap
// endpoint, which is not guaranteed to have a connection.
func (r *Router) selectEndpoint(policy ReplicaPolicyEnum, slot int, readOnly bool) string {
	if slot < 0 {
		return r.slots.RandomEndpoint()
	}
	endpoints := r.slots.EndpointsForKey(uint16(slot))
	if len(endpoints) == 0 {
		return r.opts.BootstrapEndpoint
	}
	return selectMasterOrReplica(policy, readOnly, endpoints)
}

// Policeman is a view of the router with a fixed replica policy for
// single requests. Only Send applies Policy; SendBatch and the other
// methods are the Router's own, so batches use the configured policy.
type Policeman struct {
	*Router
	Policy ReplicaPolicyEnum
}

// Send routes the request under the Policeman's policy.
func (p Policeman) Send(req redis.Request, cb redis.Future) {
	p.Router.sendWithPolicy(p.Policy, req, cb)
}

// WithPolicy returns a sender view whose Send uses policy instead of
// the configured one.
func (r *Router) WithPolicy(policy ReplicaPolicyEnum) Policeman {
	return Policeman{r, policy}
}
