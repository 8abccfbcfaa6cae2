package docker

import (
	"context"
	"path/filepath"
	"time"

	"github.com/docker/docker/client"
)

// stopGracePeriod is how long a container gets to exit before it is killed
const stopGracePeriod = 10 * time.Second

// Config holds the Docker client configuration
type Config struct {
	Host       string
	TLSVerify  bool
	CertPath   string
	Timeout    time.Duration
	APIVersion string // empty means negotiate with the daemon
}

func DefaultConfig() Config {
	return Config{
		Host:    "tcp://docker-proxy:2375",
		Timeout: 10 * time.Second,
	}
}

// Client wraps the Docker API client. It is safe for concurrent use.
type Client struct {
	cli     *client.Client
	timeout time.Duration
}

// NewClient creates a Docker client. It does not contact the daemon.
func NewClient(cfg Config) (*Client, error) {
	opts := []client.Opt{
		client.WithHost(cfg.Host),
	}

	if cfg.APIVersion != "" {
		opts = append(opts, client.WithVersion(cfg.APIVersion))
	} else {
		opts = append(opts, client.WithAPIVersionNegotiation())
	}

	if cfg.TLSVerify {
		opts = append(opts, client.WithTLSClientConfig(
			filepath.Join(cfg.CertPath, "ca.pem"),
			filepath.Join(cfg.CertPath, "cert.pem"),
			filepath.Join(cfg.CertPath, "key.pem"),
		))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}

	return &Client{
		cli:     cli,
		timeout: timeout,
	}, nil
}

// Ping checks that the daemon is reachable within the configured timeout
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.cli.Ping(ctx); err != nil {
		return classify("ping", "", err)
	}
	return nil
}

// Close sulkee yhteyden
func (c *Client) Close() error {
	if c.cli != nil {
		return c.cli.Close()
	}
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}
