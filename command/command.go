package command

import (
	"io"
	"strings"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/encoding/resp"
	"github.com/distributedio/respd/metrics"
)

// Context is the runtime context of a command
type Context struct {
	Name    string
	Args    []string
	Out     io.Writer
	TraceID string
	*context.Context
}

// Command is a command implementation
type Command func(ctx *Context)

// Handler handles one request decoded from a connection
type Handler interface {
	Handle(ctx *Context)
}

// HandlerFunc adapts an ordinary function to a Handler
type HandlerFunc func(ctx *Context)

// Handle calls f(ctx)
func (f HandlerFunc) Handle(ctx *Context) {
	f(ctx)
}

// Statistic records calls of a command
type Statistic struct {
	Calls        atomic.Int64
	Microseconds atomic.Int64
}

// Desc combines command procedure, constraint and statistics
type Desc struct {
	Proc Command
	Stat Statistic
	Cons Constraint
}

// Call checks the arity and runs the procedure
func (d *Desc) Call(ctx *Context) {
	if !d.Cons.Check(len(ctx.Args) + 1) { // include the command name
		resp.ReplyError(ctx.Out, ErrWrongArgs(ctx.Name).Error())
		return
	}

	start := time.Now()
	d.Proc(ctx)
	cost := time.Since(start)

	d.Stat.Calls.Inc()
	d.Stat.Microseconds.Add(cost.Microseconds())
}

// Call a command
func Call(ctx *Context) {
	NewExecutor().Handle(ctx)
}

// Executor execute any command
type Executor struct {
	commands map[string]*Desc
}

// NewExecutor new a Executor object
func NewExecutor() *Executor {
	return &Executor{commands: commands}
}

// Handle looks the command up by its case insensitive name and executes it.
// An unknown command is logged and counted, nothing is written back.
func (e *Executor) Handle(ctx *Context) {
	ctx.Name = strings.ToLower(ctx.Name)
	desc, ok := e.commands[ctx.Name]
	if !ok {
		unknownCommand(ctx)
		return
	}

	start := time.Now()
	desc.Call(ctx)
	cost := time.Since(start).Seconds()
	metrics.GetMetrics().CommandCallHistogramVec.WithLabelValues(ctx.Name).Observe(cost)
}

// Lookup returns the description of a command
func (e *Executor) Lookup(name string) (*Desc, bool) {
	desc, ok := e.commands[strings.ToLower(name)]
	return desc, ok
}

func unknownCommand(ctx *Context) {
	metrics.GetMetrics().UnknownCommandCounter.Inc()
	fields := []zap.Field{
		zap.String("command", ctx.Name),
		zap.Int("args", len(ctx.Args)),
		zap.String("traceid", ctx.TraceID),
	}
	if ctx.Context != nil && ctx.Client != nil {
		fields = append(fields, zap.Int64("clientid", ctx.Client.ID),
			zap.String("addr", ctx.Client.RemoteAddr))
	}
	zap.L().Warn(ErrUnKnownCommand(ctx.Name).Error(), fields...)
}
