package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds the proxy selector for scorer HTTP clients. Explicit
// proxy URLs take precedence; with none configured the standard
// HTTP_PROXY/HTTPS_PROXY environment handling applies. Hosts listed in
// noProxy (comma-separated, suffix-matched) bypass the configured proxies.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	var bypass []string
	for _, h := range strings.Split(noProxy, ",") {
		if h = strings.TrimSpace(strings.ToLower(h)); h != "" {
			bypass = append(bypass, h)
		}
	}

	return func(req *http.Request) (*url.URL, error) {
		host := strings.ToLower(req.URL.Hostname())
		for _, h := range bypass {
			if host == h || strings.HasSuffix(host, "."+h) {
				return nil, nil
			}
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
