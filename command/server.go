package command

import (
	"sort"
	"strings"

	"github.com/distributedio/respd/encoding/resp"
)

// RedisCommand returns Array reply of details about all commands
func RedisCommand(ctx *Context) {
	count := func(ctx *Context) {
		if len(ctx.Args) != 1 {
			resp.ReplyError(ctx.Out, ErrUnknownSubcommand.Error())
			return
		}
		resp.ReplyInteger(ctx.Out, int64(len(commands)))
	}
	info := func(ctx *Context) {
		names := ctx.Args[1:]
		e, err := resp.ReplyArray(ctx.Out, len(names))
		if err != nil {
			return
		}
		for _, name := range names {
			name = strings.ToLower(name)
			cmd, ok := commands[name]
			if !ok {
				e.NullBulkString()
				continue
			}
			replyCommandInfo(e, name, cmd)
		}
	}

	if len(ctx.Args) == 0 {
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)

		e, err := resp.ReplyArray(ctx.Out, len(names))
		if err != nil {
			return
		}
		for _, name := range names {
			replyCommandInfo(e, name, commands[name])
		}
		return
	}

	switch strings.ToLower(ctx.Args[0]) {
	case "count":
		count(ctx)
	case "info":
		info(ctx)
	default:
		resp.ReplyError(ctx.Out, ErrUnknownSubcommand.Error())
	}
}

// replyCommandInfo writes name, arity, flags, first key, last key and key step
func replyCommandInfo(e *resp.Encoder, name string, cmd *Desc) {
	e.Array(6)
	e.BulkString(name)
	e.Integer(int64(cmd.Cons.Arity))

	flags := parseFlags(cmd.Cons.Flags)
	e.Array(len(flags))
	for i := range flags {
		e.SimpleString(flags[i])
	}

	// none of the commands take keys
	e.Integer(0)
	e.Integer(0)
	e.Integer(0)
}
