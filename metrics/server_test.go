package metrics

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distributedio/respd/conf"
)

var (
	cstatus = &conf.Status{
		Listen: "127.0.0.1:0",
	}
)

func TestServer(t *testing.T) {
	server := NewServer(cstatus)
	assert.NotNil(t, server)
	lis, err := net.Listen("tcp", cstatus.Listen)
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() { errc <- server.Serve(lis) }()

	// the listener is open before Serve runs, so the request waits for it
	rsp, err := http.Get("http://" + lis.Addr().String() + "/respd/metrics")
	require.NoError(t, err)
	rsp.Body.Close()
	assert.Equal(t, http.StatusOK, rsp.StatusCode)

	assert.NoError(t, server.GracefulStop())
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("status server did not stop")
	}
}

func TestServer_Stop(t *testing.T) {
	server := NewServer(cstatus)
	lis, err := net.Listen("tcp", cstatus.Listen)
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() { errc <- server.Serve(lis) }()
	time.Sleep(20 * time.Millisecond)

	assert.NoError(t, server.Stop())
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("status server did not stop")
	}
}
