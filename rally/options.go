package rally

import (
	"net/http"
	"time"
)

const (
	// DefaultHost is the public Rally SaaS host
	DefaultHost = "rally1.rallydev.com"
	// DefaultProtocolVersion is the web service version the client speaks
	DefaultProtocolVersion = "1.40"
	// DefaultUserAgent is sent when no user agent is configured
	DefaultUserAgent = "rallyctl"
	// DefaultTimeout bounds a single HTTP round-trip
	DefaultTimeout = 30 * time.Second
	// DefaultConcurrency limits the batch helpers
	DefaultConcurrency = 5
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	host            string
	protocolVersion string
	userAgent       string
	workspace       string
	timeout         time.Duration
	concurrency     int
	httpClient      *http.Client
}

func defaultOptions() clientOptions {
	return clientOptions{
		host:            DefaultHost,
		protocolVersion: DefaultProtocolVersion,
		userAgent:       DefaultUserAgent,
		timeout:         DefaultTimeout,
		concurrency:     DefaultConcurrency,
	}
}

// WithHost overrides the Rally host.
func WithHost(host string) Option {
	return func(o *clientOptions) {
		if host != "" {
			o.host = host
		}
	}
}

// WithProtocolVersion sets the web service version used in request URLs.
func WithProtocolVersion(version string) Option {
	return func(o *clientOptions) {
		if version != "" {
			o.protocolVersion = version
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithWorkspace sets the initial workspace reference. It is applied
// before the login user lookup.
func WithWorkspace(ref string) Option {
	return func(o *clientOptions) {
		o.workspace = ref
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithConcurrency sets how many requests GetMany and DeleteMany run at once.
func WithConcurrency(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithHTTPClient replaces the HTTP client. WithTimeout is ignored when
// a client is supplied.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}
