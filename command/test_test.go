package command

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/distributedio/respd/context"
)

func ContextTest(name string, args ...string) *Context {
	cliCtx := &context.ClientContext{
		ID:         2,
		RemoteAddr: "127.0.0.1:10000",
		Created:    time.Now(),
		Done:       make(chan struct{}),
	}
	servCtx := &context.ServerContext{StartAt: time.Now()}
	rootCtx, _ := context.WithCancel(context.New(cliCtx, servCtx))
	return &Context{
		Name:    name,
		Args:    args,
		Out:     &bytes.Buffer{},
		TraceID: "test",
		Context: rootCtx,
	}
}

func CallTest(name string, args ...string) *bytes.Buffer {
	ctx := ContextTest(name, args...)
	Call(ctx)
	return ctx.Out.(*bytes.Buffer)
}

func ctxString(buf io.Writer) string {
	return buf.(*bytes.Buffer).String()
}

func ctxLines(buf io.Writer) []string {
	str := ctxString(buf)
	return strings.Split(str, "\r\n")
}
