package context

import (
	"context"
	"net"
	"sync"
	"time"
)

// Version information.
var (
	ReleaseVersion = "None"
	BuildTS        = "None"
	GitHash        = "None"
	GitBranch      = "None"
	GitLog         = "None"
	GolangVersion  = "None"
	ConfigFile     = "None"
)

// ClientContext is the runtime context of a client
type ClientContext struct {
	RemoteAddr string // Client remote address
	ID         int64  // Client uniq ID
	Created    time.Time
	Updated    time.Time
	LastCmd    string
	Commands   int64 // Commands dispatched on this connection
	Close      func() error

	// Done is closed when the client asks to quit
	Done     chan struct{}
	doneOnce sync.Once
}

// NewClientContext new client context object ,id must be uniq
func NewClientContext(id int64, conn net.Conn) *ClientContext {
	now := time.Now()
	cli := &ClientContext{
		ID:         id,
		Created:    now,
		Updated:    now,
		RemoteAddr: conn.RemoteAddr().String(),
		Done:       make(chan struct{}),
		Close:      conn.Close,
	}
	return cli
}

// Quit marks the client as finished, it is safe to call more than once
func (c *ClientContext) Quit() {
	c.doneOnce.Do(func() { close(c.Done) })
}

// ServerContext is the runtime context of the server
type ServerContext struct {
	Clients sync.Map
	StartAt time.Time
}

// Context combines the client and server context
type Context struct {
	context.Context
	Client *ClientContext
	Server *ServerContext
}

// New a context
func New(c *ClientContext, s *ServerContext) *Context {
	return &Context{Context: context.Background(), Client: c, Server: s}
}

// CancelFunc tells an operation to abandon its work
type CancelFunc context.CancelFunc

// WithCancel returns a copy of parent with a new Done channel
func WithCancel(parent *Context) (*Context, CancelFunc) {
	ctx := *parent
	child, cancel := context.WithCancel(parent.Context)
	ctx.Context = child
	return &ctx, CancelFunc(cancel)
}
