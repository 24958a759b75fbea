package cmd

import (
	"testing"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
)

type ExampleSystem struct {
	conn redis.Conn
}

func NewExampleSystem(conn redis.Conn) *ExampleSystem {
	return &ExampleSystem{
		conn: conn,
	}
}

func (es *ExampleSystem) PingEqual(t *testing.T) {
	reply, err := redis.String(es.conn.Do("ping", "hello"))
	assert.NoError(t, err)
	assert.Equal(t, "hello", reply)

	reply, err = redis.String(es.conn.Do("ping"))
	assert.NoError(t, err)
	assert.Equal(t, "PONG", reply)
}

func (es *ExampleSystem) PingEqualErr(t *testing.T, errValue string, args ...interface{}) {
	_, err := es.conn.Do("ping", args...)
	assert.EqualError(t, err, errValue)
}

func (es *ExampleSystem) EchoEqual(t *testing.T, msg string) {
	reply, err := redis.String(es.conn.Do("echo", msg))
	assert.NoError(t, err)
	assert.Equal(t, msg, reply)
}

func (es *ExampleSystem) EchoEqualErr(t *testing.T, errValue string, args ...interface{}) {
	_, err := es.conn.Do("echo", args...)
	assert.EqualError(t, err, errValue)
}

func (es *ExampleSystem) CommandCountEqual(t *testing.T, count int) {
	reply, err := redis.Int(es.conn.Do("command", "count"))
	assert.NoError(t, err)
	assert.Equal(t, count, reply)
}

func (es *ExampleSystem) CommandInfoEqual(t *testing.T, name string, arity int) {
	reply, err := redis.Values(es.conn.Do("command", "info", name))
	assert.NoError(t, err)
	if !assert.Len(t, reply, 1) {
		return
	}
	info, err := redis.Values(reply[0], nil)
	assert.NoError(t, err)
	if !assert.Len(t, info, 6) {
		return
	}
	n, _ := redis.String(info[0], nil)
	assert.Equal(t, name, n)
	a, _ := redis.Int(info[1], nil)
	assert.Equal(t, arity, a)
}

func (es *ExampleSystem) QuitEqual(t *testing.T) {
	reply, err := redis.String(es.conn.Do("quit"))
	assert.NoError(t, err)
	assert.Equal(t, "OK", reply)

	_, err = es.conn.Do("ping")
	assert.Error(t, err)
}
