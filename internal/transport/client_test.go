package transport

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"testing"
	"time"

	"github.com/gurted/gurtd/internal/overlay"
	"github.com/gurted/gurtd/internal/protocol"
	"github.com/stretchr/testify/require"
)

func generateTestCert(t *testing.T) tls.Certificate {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	require.NoError(t, err)
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: priv}
}

type staticHandler struct{}

func (staticHandler) Handle(ctx context.Context, req protocol.Request, peer net.Addr) protocol.Response {
	return protocol.Response{Status: protocol.StatusOK, Body: []byte("hello from " + req.Path)}
}

func startLoopbackServer(t *testing.T) string {
	t.Helper()
	cert := generateTestCert(t)
	srv := &overlay.Server{Handler: staticHandler{}, TLSCert: cert}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, ln) }()
	t.Cleanup(func() {
		cancel()
		<-errCh
	})
	return addr
}

func TestClientFetchLoopback(t *testing.T) {
	addr := startLoopbackServer(t)

	c := New(Config{}, nil)
	resp, err := c.Fetch(context.Background(), "gurt://"+addr+"/search?q=test")
	require.NoError(t, err)
	require.Equal(t, protocol.StatusOK, resp.Status)
	require.Contains(t, string(resp.Body), "hello from /search")
}

func TestParseURLVariants(t *testing.T) {
	cases := map[string]target{
		"gurt://example.gurt/":        {Host: "example.gurt", Port: defaultPort, Path: "/"},
		"gurt://example.gurt:9000/a":  {Host: "example.gurt", Port: "9000", Path: "/a"},
		"example.gurt":                {Host: "example.gurt", Port: defaultPort, Path: "/"},
		"127.0.0.1:4878/health/ready": {Host: "127.0.0.1", Port: "4878", Path: "/health/ready"},
	}
	for in, want := range cases {
		got, err := parseURL(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestConfigNormalizeClamps(t *testing.T) {
	c := Config{ConnectTimeout: time.Hour, HandshakeTimeout: time.Millisecond}.Normalize()
	require.Equal(t, 60*time.Second, c.ConnectTimeout)
	require.Equal(t, 200*time.Millisecond, c.HandshakeTimeout)
	require.Equal(t, defaultFetchTimeout, c.FetchTimeout)
}
