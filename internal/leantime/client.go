package leantime

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default HTTP timeout for Leantime requests
	DefaultTimeout = 30 * time.Second
)

// AuthMode is the credential scheme attached to every request.
type AuthMode int

const (
	AuthNone AuthMode = iota
	AuthBearer
	AuthBasic
)

func (m AuthMode) String() string {
	switch m {
	case AuthBearer:
		return "bearer"
	case AuthBasic:
		return "basic"
	default:
		return "none"
	}
}

// Credentials holds the configured Leantime credentials. An API key always
// wins over a username/password pair.
type Credentials struct {
	APIKey   string
	Username string
	Password string
}

// Client holds the immutable connection settings for a Leantime instance.
// It issues no requests itself; callers Open a Session per unit of work.
type Client struct {
	baseURL   string
	mode      AuthMode
	apiKey    string
	username  string
	password  string
	timeout   time.Duration
	transport http.RoundTripper
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithTransport sets the round tripper used by every session (tests, proxies).
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// NewClient creates a Leantime client. The credential mode is resolved here,
// once: bearer when an API key is set, basic when both username and password
// are set, none otherwise.
func NewClient(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}

	switch {
	case creds.APIKey != "":
		c.mode = AuthBearer
		c.apiKey = creds.APIKey
	case creds.Username != "" && creds.Password != "":
		c.mode = AuthBasic
		c.username = creds.Username
		c.password = creds.Password
	default:
		c.mode = AuthNone
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthMode reports the resolved credential scheme.
func (c *Client) AuthMode() AuthMode {
	return c.mode
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Open acquires a session with its own connection pool. The caller must Close it.
func (c *Client) Open() (*Session, error) {
	if c.baseURL == "" {
		return nil, errors.New("leantime base URL is not configured (set LEANTIME_URL)")
	}

	transport := c.transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Session{
		client: c,
		httpClient: &http.Client{
			Timeout:   c.timeout,
			Transport: transport,
		},
	}, nil
}

func (c *Client) authorize(req *http.Request) {
	switch c.mode {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	case AuthBasic:
		req.SetBasicAuth(c.username, c.password)
	}
}
