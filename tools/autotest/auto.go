package autotest

import (
	"testing"

	"github.com/distributedio/respd/tools/autotest/cmd"

	"github.com/gomodule/redigo/redis"
)

//AutoClient check redis comman
type AutoClient struct {
	*cmd.ExampleSystem
	conn redis.Conn
}

//NewAutoClient creat auto client
func NewAutoClient() *AutoClient {
	return &AutoClient{}
}

//Start run client
func (ac *AutoClient) Start(addr string) {
	conn, err := redis.Dial("tcp", addr)
	if err != nil {
		panic(err)
	}
	ac.conn = conn
	ac.ExampleSystem = cmd.NewExampleSystem(conn)
}

//Close shut client
func (ac *AutoClient) Close() {
	ac.conn.Close()
}

//SystemCase check system case
func (ac *AutoClient) SystemCase(t *testing.T) {
	ac.PingEqual(t)
	ac.EchoEqual(t, "")
	ac.EchoEqual(t, "hello world")
	ac.EchoEqual(t, "你好")
	ac.CommandCountEqual(t, 4)
	ac.CommandInfoEqual(t, "echo", 2)
	ac.CommandInfoEqual(t, "ping", -1)
}
