package redis_test

import (
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvflow/redring/redis"
)

func TestReplyErrorClassification(t *testing.T) {
	cases := []struct {
		line string
		typ  *errorx.Type
	}{
		{"MOVED 3999 10.0.0.3:6379", redis.ErrMoved},
		{"ASK 7000 10.0.0.2:6380", redis.ErrAsk},
		{"TRYAGAIN Multiple keys request during rehashing of slot", redis.ErrTryAgain},
		{"CLUSTERDOWN The cluster is down", redis.ErrClusterDown},
		{"LOADING Redis is loading the dataset in memory", redis.ErrLoading},
		{"ERR unknown command", redis.ErrReply},
		{"WRONGTYPE Operation against a key holding the wrong kind of value", redis.ErrReply},
	}
	for _, c := range cases {
		err := redis.ReplyError(c.line)
		assert.True(t, errorx.IsOfType(err, c.typ), "line %q", c.line)
		assert.True(t, redis.IsReply(err), "line %q", c.line)
		assert.Equal(t, c.line, redis.ErrorText(err), "line %q", c.line)
	}
}

func TestReplyErrorMovedTo(t *testing.T) {
	err := redis.ReplyError("MOVED 3999 10.0.0.3:6379")
	addr, ok := err.Property(redis.EKMovedTo)
	require.True(t, ok)
	assert.Equal(t, "10.0.0.3:6379", addr)

	// plain errors carry no redirect address
	err = redis.ReplyError("ERR has spaces too")
	_, ok = err.Property(redis.EKMovedTo)
	assert.False(t, ok)
}

func TestErrorToken(t *testing.T) {
	err := redis.ReplyError("ASK 7000 10.0.0.2:6380")

	tok, ok := redis.ErrorToken(err, 0)
	assert.True(t, ok)
	assert.Equal(t, "ASK", tok)

	tok, ok = redis.ErrorToken(err, 1)
	assert.True(t, ok)
	assert.Equal(t, "7000", tok)

	tok, ok = redis.ErrorToken(err, 2)
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.2:6380", tok)

	_, ok = redis.ErrorToken(err, 3)
	assert.False(t, ok)

	short := redis.ReplyError("TRYAGAIN")
	_, ok = redis.ErrorToken(short, 2)
	assert.False(t, ok)
}

func TestClientErrorsAreNotReplies(t *testing.T) {
	err := redis.ErrMissingConn.New("missing connection to redis://x:1")
	assert.False(t, redis.IsReply(err))
}
