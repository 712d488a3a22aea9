package rediscluster

import (
	"math/rand"
	"sort"

	"github.com/kvflow/redring/redis"
)

// SlotsRange is a contiguous range of slots served by one group of
// nodes, the shape one element of a CLUSTER SLOTS reply parses into.
// Endpoints are full URIs ("redis://host:port"); the first one is the
// master, the rest are replicas.
type SlotsRange struct {
	From      int
	To        int
	Endpoints []string
}

// SlotMap is an immutable snapshot of the cluster topology. A topology
// change produces a new SlotMap; readers need no synchronization.
type SlotMap struct {
	mapping [NumSlots][]string
	groups  [][]string
	all     []string
}

// NewSlotMap builds a SlotMap from slot ranges. Slots not covered by
// any range stay unassigned. Ranges must be within bounds and carry at
// least one endpoint.
func NewSlotMap(ranges []SlotsRange) (*SlotMap, error) {
	m := &SlotMap{}
	seen := make(map[string]struct{})
	for _, r := range ranges {
		if r.From < 0 || r.To >= NumSlots || r.From > r.To {
			return nil, redis.ErrBadSlotsRange.New("slot range %d-%d out of bounds", r.From, r.To)
		}
		if len(r.Endpoints) == 0 {
			return nil, redis.ErrBadSlotsRange.New("slot range %d-%d has no endpoints", r.From, r.To)
		}
		endpoints := append([]string(nil), r.Endpoints...)
		m.groups = append(m.groups, endpoints)
		for slot := r.From; slot <= r.To; slot++ {
			m.mapping[slot] = endpoints
		}
		for _, e := range endpoints {
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				m.all = append(m.all, e)
			}
		}
	}
	sort.Strings(m.all)
	return m, nil
}

// EndpointsForSlot returns the endpoint list serving the slot, master
// first, or nil if the slot is unassigned.
func (m *SlotMap) EndpointsForSlot(slot uint16) []string {
	return m.mapping[slot]
}

// EndpointsForKey is an alias of EndpointsForSlot for call sites that
// computed the slot from a key.
func (m *SlotMap) EndpointsForKey(slot uint16) []string {
	return m.mapping[slot]
}

// Endpoints returns the distinct endpoints of the whole topology.
func (m *SlotMap) Endpoints() []string {
	return append([]string(nil), m.all...)
}

// RandomEndpoint returns a uniformly chosen endpoint. Note that this
// may be a replica.
func (m *SlotMap) RandomEndpoint() string {
	if len(m.all) == 0 {
		return ""
	}
	return m.all[rand.Intn(len(m.all))]
}

// Size returns the number of distinct slot groupings. Keyless commands
// with a reducer fan out over groups, not over single slots.
func (m *SlotMap) Size() int {
	return len(m.groups)
}

// Group returns the endpoint list of the i-th slot grouping.
func (m *SlotMap) Group(i int) []string {
	return m.groups[i]
}
