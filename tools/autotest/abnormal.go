package autotest

import (
	"testing"

	"github.com/gomodule/redigo/redis"

	"github.com/distributedio/respd/tools/autotest/cmd"
)

//Abnormal check error message
type Abnormal struct {
	ess  *cmd.ExampleSystem
	conn redis.Conn
}

//NewAbnormal create object
func NewAbnormal() *Abnormal {
	return &Abnormal{}
}

//Start  create abnormal client
func (an *Abnormal) Start(addr string) {
	conn, err := redis.Dial("tcp", addr)
	if err != nil {
		panic(err)
	}
	an.conn = conn
	an.ess = cmd.NewExampleSystem(conn)
}

//Close close annormal client
func (an *Abnormal) Close() {
	an.conn.Close()
}

//SystemCase check the error replies
func (an *Abnormal) SystemCase(t *testing.T) {
	an.ess.PingEqualErr(t, "ERR wrong number of arguments for 'ping' command", "a", "b")
	an.ess.EchoEqualErr(t, "ERR wrong number of arguments for 'echo' command")
	an.ess.EchoEqualErr(t, "ERR wrong number of arguments for 'echo' command", "a", "b")

	// the connection survives error replies
	an.ess.PingEqual(t)
}

//QuitCase closes the connection, it must run last
func (an *Abnormal) QuitCase(t *testing.T) {
	an.ess.QuitEqual(t)
}
