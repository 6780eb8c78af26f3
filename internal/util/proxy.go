// Package util holds small helpers shared by outbound HTTP clients.
package util

import (
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// NewProxyFunc creates a proxy function based on configuration.
// If no proxy URLs are provided, falls back to environment variables.
// Hosts matching noProxy (comma separated, HTTP_PROXY syntax) bypass the proxy.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	cfg := &httpproxy.Config{
		HTTPProxy:  httpProxy,
		HTTPSProxy: httpsProxy,
		NoProxy:    noProxy,
	}
	if httpsProxy == "" {
		cfg.HTTPSProxy = httpProxy
	}
	proxyFor := cfg.ProxyFunc()

	return func(req *http.Request) (*url.URL, error) {
		return proxyFor(req.URL)
	}
}

// NewTransport returns an http.Transport honouring the proxy settings
func NewTransport(httpProxy, httpsProxy, noProxy string) *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = NewProxyFunc(httpProxy, httpsProxy, noProxy)
	return transport
}
