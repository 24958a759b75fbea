package integration

import (
	"fmt"
	"net"

	"go.uber.org/zap"

	"github.com/distributedio/respd"
	"github.com/distributedio/respd/conf"
	"github.com/distributedio/respd/context"
)

var (
	svr *respd.Server
	cfg = conf.MockConf().Server
	//ServerAddr default server addr
	ServerAddr = "127.0.0.1:17369"
)

// SetAddr set server listen addr
func SetAddr(addr string) {
	ServerAddr = addr
}

//Start listens on ServerAddr and serves in the background
func Start() error {
	zap.ReplaceGlobals(zap.NewNop())
	lis, err := net.Listen("tcp", ServerAddr)
	if err != nil {
		return err
	}
	svr = respd.New(&context.ServerContext{}, nil, &cfg)
	go func() {
		if err := svr.Serve(lis); err != nil {
			fmt.Println(err)
		}
	}()
	return nil
}

//Close stops the server and waits for the clients
func Close() {
	if err := svr.GracefulStop(); err != nil {
		fmt.Println(err)
	}
}
