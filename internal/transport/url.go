package transport

import (
	"fmt"
	"net"
	"strings"
)

// target is a parsed gurt:// URL split into the parts each fetch stage
// needs: Host for resolution, Port for dialing, Path+the original Host
// header value for the request line.
type target struct {
	Host string
	Port string
	Path string
}

const defaultPort = "4878"

// parseURL accepts "gurt://host[:port]/path" and bare "host[:port]/path"
// forms, since crawl candidates are frequently stored without a scheme.
func parseURL(raw string) (target, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "gurt://")
	if s == "" {
		return target{}, fmt.Errorf("transport: empty url")
	}

	path := "/"
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		path = s[idx:]
		s = s[:idx]
	}
	if path == "" {
		path = "/"
	}

	host, port, err := net.SplitHostPort(s)
	if err != nil {
		host = s
		port = defaultPort
	}
	if host == "" {
		return target{}, fmt.Errorf("transport: url %q has no host", raw)
	}
	return target{Host: host, Port: port, Path: path}, nil
}

func isLiteralIP(host string) bool {
	return net.ParseIP(host) != nil
}
