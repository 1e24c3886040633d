package redisclient

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client wraps a Redis client with OpenTelemetry tracing
type Client struct {
	cmdable redis.Cmdable
}

// NewClient creates a new traced Redis client for a single Redis instance
func NewClient(client *redis.Client) *Client {
	return &Client{cmdable: client}
}

// NewClusterClient creates a new traced Redis client for a Redis cluster
func NewClusterClient(client *redis.ClusterClient) *Client {
	return &Client{cmdable: client}
}

// traced starts a span for one Redis command and returns a finish function
// that records the outcome and timing
func traced(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(err error)) {
	start := time.Now()
	attrs = append(attrs,
		attribute.String("redis.operation", operation),
		attribute.String("redis.client", "app-cirurgias"),
	)
	ctx, span := otel.Tracer("redis").Start(ctx, "redis."+operation, trace.WithAttributes(attrs...))

	return ctx, func(err error) {
		duration := time.Since(start)
		span.SetAttributes(
			attribute.Int64("redis.duration_ms", duration.Milliseconds()),
			attribute.String("redis.duration", duration.String()),
		)
		if err != nil && err != redis.Nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "success")
		}
		span.End()
	}
}

// Get wraps Redis GET
func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	ctx, finish := traced(ctx, "get", attribute.String("redis.key", key))
	cmd := c.cmdable.Get(ctx, key)
	finish(cmd.Err())
	return cmd
}

// Set wraps Redis SET
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	ctx, finish := traced(ctx, "set",
		attribute.String("redis.key", key),
		attribute.String("redis.expiration", expiration.String()),
	)
	cmd := c.cmdable.Set(ctx, key, value, expiration)
	finish(cmd.Err())
	return cmd
}

// Del wraps Redis DEL
func (c *Client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	ctx, finish := traced(ctx, "del",
		attribute.StringSlice("redis.keys", keys),
		attribute.Int("redis.key_count", len(keys)),
	)
	cmd := c.cmdable.Del(ctx, keys...)
	finish(cmd.Err())
	return cmd
}

// Ping wraps Redis PING
func (c *Client) Ping(ctx context.Context) *redis.StatusCmd {
	ctx, finish := traced(ctx, "ping")
	cmd := c.cmdable.Ping(ctx)
	finish(cmd.Err())
	return cmd
}

// Exists wraps Redis EXISTS
func (c *Client) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	ctx, finish := traced(ctx, "exists", attribute.StringSlice("redis.keys", keys))
	cmd := c.cmdable.Exists(ctx, keys...)
	finish(cmd.Err())
	return cmd
}

// Keys wraps Redis KEYS
func (c *Client) Keys(ctx context.Context, pattern string) *redis.StringSliceCmd {
	ctx, finish := traced(ctx, "keys", attribute.String("redis.pattern", pattern))
	cmd := c.cmdable.Keys(ctx, pattern)
	finish(cmd.Err())
	return cmd
}

// Incr wraps Redis INCR, used for unread-notification counters
func (c *Client) Incr(ctx context.Context, key string) *redis.IntCmd {
	ctx, finish := traced(ctx, "incr", attribute.String("redis.key", key))
	cmd := c.cmdable.Incr(ctx, key)
	finish(cmd.Err())
	return cmd
}

// Decr wraps Redis DECR
func (c *Client) Decr(ctx context.Context, key string) *redis.IntCmd {
	ctx, finish := traced(ctx, "decr", attribute.String("redis.key", key))
	cmd := c.cmdable.Decr(ctx, key)
	finish(cmd.Err())
	return cmd
}
