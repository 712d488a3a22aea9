package rediscluster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kvflow/redring/redis"
)

func TestBuiltinReducers(t *testing.T) {
	assert.NotNil(t, reducerFor("MSET"))
	assert.NotNil(t, reducerFor("mset"))
	assert.NotNil(t, reducerFor("DEL"))
	assert.NotNil(t, reducerFor("MGET"))
	assert.NotNil(t, reducerFor("KEYS"))
	assert.NotNil(t, reducerFor("FLUSHDB"))
	assert.NotNil(t, reducerFor("DBSIZE"))
	assert.Nil(t, reducerFor("GET"))
	assert.Nil(t, reducerFor("EXISTS"))
}

func TestReduceMSet(t *testing.T) {
	fn := reducerFor("MSET")
	assert.Equal(t, redis.OK, fn([]interface{}{redis.OK, redis.OK}))
	assert.Equal(t, redis.OK, fn(nil))
}

func TestReduceDel(t *testing.T) {
	fn := reducerFor("DEL")
	assert.Equal(t, int64(2), fn([]interface{}{int64(1), int64(0), int64(1)}))
	assert.Equal(t, int64(0), fn(nil))
}

func TestReduceMGet(t *testing.T) {
	fn := reducerFor("MGET")
	res := fn([]interface{}{
		[]interface{}{[]byte("a"), nil},
		[]interface{}{[]byte("b")},
	})
	assert.Equal(t, []interface{}{[]byte("a"), nil, []byte("b")}, res)
}

func TestRegisterReducer(t *testing.T) {
	RegisterReducer("CUSTOMCMD", func(parts []interface{}) interface{} {
		return len(parts)
	})
	fn := reducerFor("customcmd")
	assert.NotNil(t, fn)
	assert.Equal(t, 2, fn([]interface{}{nil, nil}))
}
