package proxy

import (
	"context"
	"net"
	"net/http"
	"time"

	xproxy "golang.org/x/net/proxy"
)

// NewClient builds the HTTP client used for all vendor API traffic. When
// socksAddr is non-empty the client dials through that SOCKS5 proxy,
// otherwise it goes direct with keep-alive pooling.
func NewClient(socksAddr string, timeout time.Duration) (*http.Client, error) {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   15 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        32,
		MaxIdleConnsPerHost: 8,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	if socksAddr != "" {
		dialer, err := xproxy.SOCKS5("tcp", socksAddr, nil, xproxy.Direct)
		if err != nil {
			return nil, err
		}
		transport.Proxy = nil
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}
