package gql

import (
	"net/http"
	"strings"
	"time"

	genqlientgraphql "github.com/Khan/genqlient/graphql"
)

const defaultTimeout = 15 * time.Second

//go:generate go run github.com/Khan/genqlient genqlient.yaml

// NewClient returns a genqlient client for endpoint. A non-empty token is
// sent as a bearer credential on every request.
func NewClient(endpoint string, token string, timeout time.Duration) genqlientgraphql.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &authTransport{
			base:  http.DefaultTransport,
			token: strings.TrimSpace(token),
		},
	}

	return genqlientgraphql.NewClient(endpoint, client)
}

type authTransport struct {
	base  http.RoundTripper
	token string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" {
		return t.base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(clone)
}
