package rally

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
)

// Client represents a Rally web service client bound to one login session
type Client struct {
	host            string
	username        string
	password        string
	protocolVersion string
	userAgent       string
	concurrency     int
	httpClient      *http.Client
	logger          zerolog.Logger

	mu        sync.RWMutex
	workspace string

	user User
}

// NewClient creates a new Rally client and resolves the login user.
// The username is the user's email address.
func NewClient(ctx context.Context, username, password string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidConfig)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	client := &Client{
		host:            o.host,
		username:        username,
		password:        password,
		protocolVersion: o.protocolVersion,
		userAgent:       o.userAgent,
		concurrency:     o.concurrency,
		httpClient:      httpClient,
		logger:          logger,
		workspace:       o.workspace,
	}

	if err := client.login(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to Rally: %w", err)
	}

	return client, nil
}

// login looks up the user record matching the username
func (c *Client) login(ctx context.Context) error {
	users, err := c.Find(ctx, "user", fmt.Sprintf(`(EmailAddress = "%s")`, c.username))
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return fmt.Errorf("%w: no user with email address %s", ErrUserNotFound, c.username)
	}

	var user User
	if err := users[0].Decode(&user); err != nil {
		return err
	}
	if user.Ref == "" {
		return fmt.Errorf("%w: user record for %s has no _ref", ErrUserNotFound, c.username)
	}
	c.user = user

	c.logger.Debug().
		Str("user", user.GetDisplayName()).
		Str("ref", user.Ref).
		Msg("Authenticated with Rally")
	return nil
}

// Me returns the reference of the authenticated user
func (c *Client) Me() string {
	return c.user.Ref
}

// CurrentUser returns the authenticated user's record
func (c *Client) CurrentUser() User {
	return c.user
}

// Host returns the Rally host the client talks to
func (c *Client) Host() string {
	return c.host
}

// SetWorkspace sets the workspace reference added to every request.
// An empty ref clears it.
func (c *Client) SetWorkspace(ref string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.workspace = ref
}

// Workspace returns the current workspace reference
func (c *Client) Workspace() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.workspace
}
