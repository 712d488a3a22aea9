package rediscluster

import (
	"strings"
)

// NumSlots is the number of hash slots of a redis cluster.
const NumSlots = 1 << 14

// Slot returns the hash slot for the key. If the key contains a
// non-empty hash tag ("{...}"), only the tag is hashed, so that keys
// sharing a tag land on the same slot.
func Slot(key string) uint16 {
	if start := strings.IndexByte(key, '{'); start >= 0 {
		// an immediate "}" means an empty tag, which is ignored
		if end := strings.IndexByte(key[start+1:], '}'); end > 0 {
			key = key[start+1 : start+1+end]
		}
	}
	return CRC16([]byte(key)) & (NumSlots - 1)
}
