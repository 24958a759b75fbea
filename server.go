package respd

import (
	gocontext "context"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shafreeck/retry"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	"github.com/distributedio/respd/command"
	"github.com/distributedio/respd/conf"
	"github.com/distributedio/respd/context"
	"github.com/distributedio/respd/metrics"
)

const (
	acceptBaseDelay = 5 * time.Millisecond
	acceptMaxDelay  = time.Second
)

// acceptRetry backs off exponentially on temporary accept errors, never waiting more than acceptMaxDelay
var acceptRetry = retry.New(retry.WithBaseDelay(acceptBaseDelay), retry.WithBackoff(func(last time.Duration) time.Duration {
	return min(last*2, acceptMaxDelay)
}))

//Server implements the RESP protocol server
type Server struct {
	servCtx *context.ServerContext
	cfg     *conf.Server
	handler command.Handler
	idgen   func() int64

	// ctx is done once the server stops, every client derives from it
	ctx    gocontext.Context
	cancel gocontext.CancelFunc

	mu  sync.Mutex
	lis net.Listener
	wg  sync.WaitGroup
}

//New a server instance, a nil handler dispatches to the builtin command table
func New(ctx *context.ServerContext, handler command.Handler, cfg *conf.Server) *Server {
	if handler == nil {
		handler = command.NewExecutor()
	}
	c, cancel := gocontext.WithCancel(gocontext.Background())
	// id generator starts from 1(the first client's id is 2, the same as redis)
	return &Server{
		servCtx: ctx,
		cfg:     cfg,
		handler: handler,
		idgen:   GetClientID(),
		ctx:     c,
		cancel:  cancel,
	}
}

//Serve the RESP requests
func (s *Server) Serve(lis net.Listener) error {
	if s.cfg.MaxConnection > 0 {
		lis = netutil.LimitListener(lis, s.cfg.MaxConnection)
	}
	s.mu.Lock()
	s.lis = lis
	s.mu.Unlock()

	zap.L().Info("respd server start", zap.String("addr", lis.Addr().String()),
		zap.Int("max-connection", s.cfg.MaxConnection))
	s.servCtx.StartAt = time.Now()
	for {
		conn, err := s.accept(lis)
		if err != nil {
			if s.ctx.Err() != nil {
				lis.Close()
				return nil
			}
			zap.L().Error("server accept failed", zap.String("addr", lis.Addr().String()), zap.Error(err))
			return err
		}
		if s.ctx.Err() != nil {
			conn.Close()
			return nil
		}

		cliCtx := context.NewClientContext(s.idgen(), conn)
		s.servCtx.Clients.Store(cliCtx.ID, cliCtx)

		cli := newClient(cliCtx, s, s.handler)

		zap.L().Info("recv connection", zap.String("addr", cliCtx.RemoteAddr),
			zap.Int64("clientid", cliCtx.ID))

		mt := metrics.GetMetrics()
		mt.ConnectionTotalCounter.Inc()
		s.wg.Add(1)
		go func(cli *client, conn net.Conn) {
			defer s.wg.Done()
			mt.ConnectionOnlineGauge.Inc()
			if err := cli.serve(conn); err != nil {
				zap.L().Error("serve conn failed", zap.String("addr", cli.cliCtx.RemoteAddr),
					zap.Int64("clientid", cli.cliCtx.ID), zap.Error(err))
			}
			mt.ConnectionOnlineGauge.Dec()
			s.servCtx.Clients.Delete(cli.cliCtx.ID)
		}(cli, conn)
	}
}

// accept waits for the next connection, temporary errors are retried until the server stops
func (s *Server) accept(lis net.Listener) (net.Conn, error) {
	var conn net.Conn
	err := acceptRetry.Ensure(s.ctx, func() error {
		c, err := lis.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				zap.L().Warn("accept temporary failed", zap.String("addr", lis.Addr().String()), zap.Error(err))
				return retry.Retriable(err)
			}
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// ListenAndServe serves on a specified address
func (s *Server) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}
	return s.Serve(lis)
}

// Addr returns the address the server listens on, nil before Serve
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis == nil {
		return nil
	}
	return s.lis.Addr()
}

func (s *Server) addr() string {
	if addr := s.Addr(); addr != nil {
		return addr.String()
	}
	return ""
}

//Stop the server, clients are closed without waiting for them
func (s *Server) Stop() error {
	zap.L().Info("respd server stop", zap.String("addr", s.addr()))
	s.cancel()
	return multierr.Append(s.closeListener(), s.closeClients())
}

//GracefulStop closes the listener and all clients then waits for every client to exit
func (s *Server) GracefulStop() error {
	zap.L().Info("respd server graceful stop", zap.String("addr", s.addr()))
	s.cancel()
	err := multierr.Append(s.closeListener(), s.closeClients())
	s.wg.Wait()
	return err
}

func (s *Server) closeListener() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis == nil {
		return nil
	}
	return ignoreClosed(s.lis.Close())
}

func (s *Server) closeClients() error {
	var err error
	s.servCtx.Clients.Range(func(k, v interface{}) bool {
		cliCtx := v.(*context.ClientContext)
		cliCtx.Quit()
		err = multierr.Append(err, ignoreClosed(cliCtx.Close()))
		return true
	})
	return err
}

func ignoreClosed(err error) error {
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
