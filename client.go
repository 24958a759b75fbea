package respd

import (
	"io"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/distributedio/respd/command"
	"github.com/distributedio/respd/conf"
	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/encoding/resp"
	"github.com/distributedio/respd/metrics"
)

// ErrProtocolViolation is returned when a request is not an array of bulk strings
var ErrProtocolViolation = errors.New("protocol violation")

type client struct {
	cliCtx  *context.ClientContext
	server  *Server
	conn    net.Conn
	handler command.Handler
	limiter *rate.Limiter
}

func newClient(cliCtx *context.ClientContext, s *Server, handler command.Handler) *client {
	c := &client{
		cliCtx:  cliCtx,
		server:  s,
		handler: handler,
	}
	if s.cfg.CommandRate > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(s.cfg.CommandRate), s.cfg.CommandRate)
	}
	return c
}

// Write to conn and log error if needed
func (c *client) Write(p []byte) (int, error) {
	n, err := c.conn.Write(p)
	if err != nil {
		zap.L().Error("write net failed", zap.String("addr", c.cliCtx.RemoteAddr),
			zap.Int64("clientid", c.cliCtx.ID),
			zap.String("command", c.cliCtx.LastCmd),
			zap.Error(err))
		c.conn.Close()
	}
	return n, err
}

func (c *client) serve(conn net.Conn) error {
	c.conn = conn
	defer c.conn.Close()

	rootCtx, rootCancel := context.WithCancel(&context.Context{
		Context: c.server.ctx,
		Client:  c.cliCtx,
		Server:  c.server.servCtx,
	})
	defer rootCancel()

	src := resp.NewConnSource(rootCtx, conn, c.server.cfg.IdleTimeout)
	defer src.Close()
	dec := resp.NewDecoder(src, DecoderOptions(&c.server.cfg.Decoder)...)

	for {
		v, err := dec.Next()
		if err != nil {
			return c.readFailed(rootCtx, err)
		}

		argv, err := requestArgs(v)
		if err != nil {
			metrics.GetMetrics().ProtocolViolatedCounter.Inc()
			zap.L().Error("read command failed", zap.String("addr", c.cliCtx.RemoteAddr),
				zap.Int64("clientid", c.cliCtx.ID), zap.Error(err))
			return err
		}
		// an empty request carries no command
		if len(argv) == 0 {
			continue
		}

		if c.server.cfg.ElementDispatch {
			for _, name := range argv {
				if !c.dispatch(rootCtx, name, nil) {
					return nil
				}
			}
		} else if !c.dispatch(rootCtx, argv[0], argv[1:]) {
			return nil
		}

		select {
		case <-c.cliCtx.Done:
			return nil
		default:
		}
	}
}

// readFailed decides how a failed read ends the connection
func (c *client) readFailed(ctx *context.Context, err error) error {
	switch {
	case err == io.EOF:
		zap.L().Debug("client closed", zap.String("addr", c.cliCtx.RemoteAddr),
			zap.Int64("clientid", c.cliCtx.ID))
		return nil
	case ctx.Err() != nil:
		// the server is stopping
		return nil
	case errors.Is(err, os.ErrDeadlineExceeded):
		zap.L().Info("client idle timeout", zap.String("addr", c.cliCtx.RemoteAddr),
			zap.Int64("clientid", c.cliCtx.ID), zap.Duration("timeout", c.server.cfg.IdleTimeout))
		return nil
	case errors.Is(err, net.ErrClosed):
		// closed after a failed write or by QUIT, already handled
		return nil
	}

	kind := resp.ErrorKind(err)
	metrics.GetMetrics().DecodeErrorsCounterVec.WithLabelValues(kind).Inc()
	zap.L().Error("read command failed", zap.String("addr", c.cliCtx.RemoteAddr),
		zap.Int64("clientid", c.cliCtx.ID), zap.String("kind", kind), zap.Error(err))
	return err
}

// dispatch hands one command to the handler, it returns false if the client should stop
func (c *client) dispatch(rootCtx *context.Context, name string, args []string) bool {
	if c.limiter != nil {
		if err := c.limiter.Wait(rootCtx); err != nil {
			return false
		}
	}

	c.cliCtx.Updated = time.Now()
	c.cliCtx.LastCmd = name
	c.cliCtx.Commands++

	ctx := &command.Context{
		Name:    name,
		Args:    args,
		Out:     c,
		TraceID: GenerateTraceID(),
	}
	ctx.Context = rootCtx

	if env := zap.L().Check(zap.DebugLevel, "recv client command"); env != nil {
		env.Write(zap.String("addr", c.cliCtx.RemoteAddr),
			zap.Int64("clientid", c.cliCtx.ID),
			zap.String("traceid", ctx.TraceID),
			zap.String("command", ctx.Name))
	}
	c.handler.Handle(ctx)
	return true
}

// requestArgs extracts the command name and arguments from a request
func requestArgs(v resp.Value) ([]string, error) {
	arr, ok := v.(resp.Array)
	if !ok {
		return nil, errors.Wrapf(ErrProtocolViolation, "request is a %s", v.Type())
	}
	argv := make([]string, len(arr))
	for i := range arr {
		s, ok := arr[i].(resp.BulkString)
		if !ok {
			return nil, errors.Wrapf(ErrProtocolViolation, "argument %d is a %s", i, arr[i].Type())
		}
		argv[i] = string(s)
	}
	return argv, nil
}

// DecoderOptions converts the decoder config into options
func DecoderOptions(cfg *conf.Decoder) []resp.DecoderOption {
	opts := []resp.DecoderOption{
		resp.MaxDepth(cfg.MaxDepth),
		resp.MaxBulkLength(cfg.MaxBulkLength),
		resp.MaxArrayLength(cfg.MaxArrayLength),
		resp.MaxLineLength(cfg.MaxLineLength),
	}
	if cfg.Lenient {
		opts = append(opts, resp.Lenient())
	}
	return opts
}
