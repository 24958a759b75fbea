package autotest

import (
	"fmt"
	"os"
	"testing"

	"github.com/distributedio/respd/tools/integration"
)

var (
	at *AutoClient
	an *Abnormal
)

func TestMain(m *testing.M) {
	integration.SetAddr("127.0.0.1:17369")
	if err := integration.Start(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	at = NewAutoClient()
	an = NewAbnormal()
	at.Start(integration.ServerAddr)
	an.Start(integration.ServerAddr)

	v := m.Run()
	an.Close()
	at.Close()
	integration.Close()

	os.Exit(v)
}
