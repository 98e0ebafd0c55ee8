package ratelimit

import (
	"strings"
)

// unlimited marks an endpoint that is never rate limited.
var unlimited = EndpointConfig{}

// MatchEndpoint returns the configuration governing path and method, or nil when the default applies.
// An exact path match wins over a prefix match; prefix entries end with "/".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &unlimited
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if prefix == nil && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			prefix = c
		}
	}
	return prefix
}
