package command

import (
	"github.com/distributedio/respd/encoding/resp"
)

// Echo the given string
func Echo(ctx *Context) {
	resp.ReplyBulkString(ctx.Out, ctx.Args[0])
}

// Ping the server
func Ping(ctx *Context) {
	args := ctx.Args
	if len(args) > 1 {
		resp.ReplyError(ctx.Out, ErrWrongArgs(ctx.Name).Error())
		return
	}
	if len(args) == 1 {
		resp.ReplyBulkString(ctx.Out, args[0])
		return
	}
	resp.ReplySimpleString(ctx.Out, Pong)
}

// Quit asks the server to close the connection
func Quit(ctx *Context) {
	resp.ReplySimpleString(ctx.Out, OK)
	ctx.Client.Quit()
}
