// Package camunda wraps the Zeebe Go client with a connection probe,
// transient-failure retries, and mapping of broker errors onto the
// application's standard error codes.
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dealership-workers/internal/common/errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// RetryPolicy controls how broker commands are retried on transient failures.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// delay returns the backoff for a zero-based attempt index, capped at MaxDelay.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay << attempt
	if d > p.MaxDelay || d <= 0 {
		return p.MaxDelay
	}
	return d
}

// Options configures the broker connection.
type Options struct {
	GatewayAddress string
	UsePlaintext   bool
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	Retry          RetryPolicy
}

// DefaultOptions returns options suitable for a local broker.
func DefaultOptions(address string) Options {
	return Options{
		GatewayAddress: address,
		UsePlaintext:   true,
		ConnectTimeout: 10 * time.Second,
		RequestTimeout: 30 * time.Second,
		Retry: RetryPolicy{
			Attempts:  3,
			BaseDelay: 1 * time.Second,
			MaxDelay:  10 * time.Second,
		},
	}
}

// Client is a connected Zeebe gateway handle shared by every worker.
type Client struct {
	zbc  zbc.Client
	opts Options
}

// NewClient connects to the broker at address with default options.
func NewClient(address string) (*Client, error) {
	return Connect(DefaultOptions(address))
}

// Connect dials the gateway and verifies it with a topology request before
// handing the client out. A broker that accepts the dial but cannot answer
// topology is treated as down.
func Connect(opts Options) (*Client, error) {
	if opts.Retry.Attempts <= 0 {
		opts.Retry = DefaultOptions(opts.GatewayAddress).Retry
	}

	zc, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         opts.GatewayAddress,
		UsePlaintextConnection: opts.UsePlaintext,
	})
	if err != nil {
		return nil, fmt.Errorf("create zeebe client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if _, err := zc.NewTopologyCommand().Send(ctx); err != nil {
		zc.Close()
		return nil, fmt.Errorf("broker %s not reachable: %w", opts.GatewayAddress, err)
	}

	return &Client{zbc: zc, opts: opts}, nil
}

// GetClient exposes the raw Zeebe client for job worker registration.
func (c *Client) GetClient() zbc.Client {
	return c.zbc
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.zbc.Close()
}

// HealthCheck probes broker topology, retrying transient failures per the
// client's retry policy. Used by the readiness endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.ConnectTimeout)
	defer cancel()

	_, err := c.ExecuteWithRetry(ctx, func(ctx context.Context) (interface{}, error) {
		return c.zbc.NewTopologyCommand().Send(ctx)
	}, "topology")
	if err != nil {
		return fmt.Errorf("broker health check: %w", err)
	}
	return nil
}

// ExecuteWithRetry runs a broker command, retrying only transient failures
// with exponential backoff. Non-transient failures are classified and
// returned immediately.
func (c *Client) ExecuteWithRetry(
	ctx context.Context,
	command func(context.Context) (interface{}, error),
	operation string,
) (interface{}, error) {
	var lastErr error

	for attempt := 0; attempt <= c.opts.Retry.Attempts; attempt++ {
		result, err := command(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !transientBrokerError(err) || attempt == c.opts.Retry.Attempts {
			return nil, classifyBrokerError(err, operation, attempt)
		}

		select {
		case <-time.After(c.opts.Retry.delay(attempt)):
		case <-ctx.Done():
			return nil, fmt.Errorf("%s cancelled after %d attempts: %w", operation, attempt+1, ctx.Err())
		}
	}

	return nil, fmt.Errorf("%s failed after %d attempts: %w", operation, c.opts.Retry.Attempts+1, lastErr)
}

var transientPhrases = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"deadline exceeded",
	"unavailable",
	"unreachable",
	"broken pipe",
}

func transientBrokerError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, phrase := range transientPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

// classifyBrokerError maps a gRPC failure onto a StandardError so workers and
// callers see the same error codes regardless of where the failure happened.
func classifyBrokerError(err error, operation string, attempt int) error {
	msg := err.Error()
	lower := strings.ToLower(msg)

	detail := fmt.Sprintf("broker operation %q failed", operation)
	if attempt > 0 {
		detail += fmt.Sprintf(" after %d attempts", attempt+1)
	}

	switch {
	case strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "connection reset") ||
		strings.Contains(lower, "unavailable") ||
		strings.Contains(lower, "unreachable"):
		return errors.NewExternalServiceError("zeebe", fmt.Errorf("%s: %s", detail, msg))

	case strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "deadline exceeded"):
		return errors.NewTimeoutError("zeebe", fmt.Errorf("%s: %s", detail, msg))

	case strings.Contains(lower, "not found"):
		return errors.NewResourceNotFoundError("zeebe", fmt.Sprintf("%s: %s", detail, msg))

	case strings.Contains(lower, "already exists"):
		return errors.NewBusinessRuleError(
			fmt.Sprintf("%s: %s", detail, msg),
			"resource already exists",
		)

	case strings.Contains(lower, "permission denied") ||
		strings.Contains(lower, "unauthorized"):
		return errors.NewAuthenticationError(fmt.Sprintf("%s: %s", detail, msg))

	default:
		return errors.NewExternalServiceError("zeebe", fmt.Errorf("%s: %s", detail, msg))
	}
}
