package command

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distributedio/respd/metrics"
)

func TestPing(t *testing.T) {
	assert := assert.New(t)

	out := CallTest("PING")
	assert.Equal("+PONG\r\n", out.String())

	out = CallTest("ping", "hello world")
	assert.Equal("$11\r\nhello world\r\n", out.String())

	out = CallTest("Ping", "a", "b")
	assert.Equal("-ERR wrong number of arguments for 'ping' command\r\n", out.String())
}

func TestEcho(t *testing.T) {
	assert := assert.New(t)

	out := CallTest("echo", "")
	assert.Equal("$0\r\n\r\n", out.String())

	out = CallTest("ECHO")
	assert.Equal("-ERR wrong number of arguments for 'echo' command\r\n", out.String())

	out = CallTest("echo", "a", "b")
	assert.Equal("-ERR wrong number of arguments for 'echo' command\r\n", out.String())
}

func TestQuit(t *testing.T) {
	assert := assert.New(t)

	ctx := ContextTest("quit")
	Call(ctx)
	assert.Equal("+OK\r\n", ctxString(ctx.Out))

	select {
	case <-ctx.Client.Done:
	default:
		t.Fatal("client should be done after quit")
	}

	// a second quit does not panic on the closed channel
	Call(ctx)
}

func TestUnknownCommand(t *testing.T) {
	before := testutil.ToFloat64(metrics.GetMetrics().UnknownCommandCounter)

	out := CallTest("nosuchcommand", "a")
	assert.Empty(t, out.String())

	after := testutil.ToFloat64(metrics.GetMetrics().UnknownCommandCounter)
	assert.Equal(t, before+1, after)
}

func TestCommandCount(t *testing.T) {
	out := CallTest("command", "count")
	assert.Equal(t, ":4\r\n", out.String())

	out = CallTest("command", "count", "x")
	assert.Equal(t, "-"+ErrUnknownSubcommand.Error()+"\r\n", out.String())

	out = CallTest("command", "nosuch")
	assert.Equal(t, "-"+ErrUnknownSubcommand.Error()+"\r\n", out.String())
}

func TestCommandInfo(t *testing.T) {
	assert := assert.New(t)

	out := CallTest("command", "info", "PING", "nosuch")
	lines := ctxLines(out)
	require.True(t, len(lines) > 4)
	assert.Equal([]string{"*2", "*6", "$4", "ping", ":-1", "*2", "+stale", "+fast", ":0", ":0", ":0", "$-1", ""}, lines)
}

func TestCommandList(t *testing.T) {
	out := CallTest("command")
	lines := ctxLines(out)
	assert.Equal(t, "*4", lines[0])
	assert.Equal(t, "*6", lines[1])
	assert.Equal(t, "command", lines[3])
}

func TestExecutor(t *testing.T) {
	assert := assert.New(t)
	e := NewExecutor()

	desc, ok := e.Lookup("PING")
	require.True(t, ok)
	calls := desc.Stat.Calls.Load()

	ctx := ContextTest("PiNg")
	e.Handle(ctx)
	assert.Equal("ping", ctx.Name)
	assert.Equal("+PONG\r\n", ctxString(ctx.Out))
	assert.Equal(calls+1, desc.Stat.Calls.Load())

	_, ok = e.Lookup("get")
	assert.False(ok)
}

func TestHandlerFunc(t *testing.T) {
	var called string
	var h Handler = HandlerFunc(func(ctx *Context) { called = ctx.Name })
	h.Handle(ContextTest("x"))
	assert.Equal(t, "x", called)
}

func TestFlags(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(CmdStale|CmdFast, flags("tF"))
	assert.Equal([]string{"readonly", "admin", "noscript", "loading", "stale", "skip_monitor", "fast"},
		parseFlags(flags("rasltMF")))
	assert.Nil(parseFlags(0))
	assert.Panics(func() { flags("x") })
}

func TestConstraintCheck(t *testing.T) {
	assert := assert.New(t)
	assert.True(Constraint{Arity: 2}.Check(2))
	assert.False(Constraint{Arity: 2}.Check(3))
	assert.True(Constraint{Arity: -1}.Check(1))
	assert.True(Constraint{Arity: -2}.Check(5))
	assert.False(Constraint{Arity: -2}.Check(1))
}
