package server

import (
	"crypto/rand"
	"crypto/tls"

	"github.com/pkg/errors"
)

// TLSConfig loads the certificate and key files into a server side tls.Config.
// Clients must speak TLS 1.2 at least.
func TLSConfig(certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, errors.Wrapf(err, "load key pair %s %s", certFile, keyFile)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		Rand:         rand.Reader,
	}, nil
}
