// internal/adapters/bucket/client.go
package bucket

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"pousada_manicaca/internal/adapters/observability"
)

// Client talks to a Supabase-compatible storage API. Public URLs are built
// deterministically; only uploads/removals/listings hit the network.
type Client struct {
	base   string // e.g. https://<project>.supabase.co/storage/v1
	bucket string
	hc     *http.Client
	key    string
	rl     *rate.Limiter
}

func New(base, bucket, key string, rps int) (*Client, error) {
	if base == "" || bucket == "" {
		return nil, fmt.Errorf("storage base URL and bucket are required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		bucket: bucket,
		hc:     &http.Client{Timeout: 20 * time.Second},
		key:    key,
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

// PublicURL maps a stored path to its fetchable URL. Pure string work; the
// backend guarantees the URL dereferences if the object exists.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.base, c.bucket, strings.TrimLeft(path, "/"))
}

func (c *Client) Upload(ctx context.Context, path, contentType string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/object/%s/%s", c.base, c.bucket, strings.TrimLeft(path, "/"))
	return c.do(ctx, http.MethodPost, u, contentType, b, nil)
}

func (c *Client) Remove(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	body, _ := json.Marshal(map[string][]string{"prefixes": paths})
	u := fmt.Sprintf("%s/object/%s", c.base, c.bucket)
	return c.do(ctx, http.MethodDelete, u, "application/json", body, nil)
}

func (c *Client) List(ctx context.Context, prefix string) ([]string, error) {
	body, _ := json.Marshal(map[string]any{"prefix": prefix, "limit": 1000})
	u := fmt.Sprintf("%s/object/list/%s", c.base, c.bucket)
	var entries []struct {
		Name string `json:"name"`
	}
	if err := c.do(ctx, http.MethodPost, u, "application/json", body, &entries); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}

// ---- Internals ----

var (
	ErrNotFound     = errors.New("bucket: not found")
	ErrUnauthorized = errors.New("bucket: unauthorized")
	ErrForbidden    = errors.New("bucket: forbidden")
)

// do performs a request with client-side rate limiting, retries, and an
// optional JSON decode into out. Retries on 429 and transient 5xx, honoring
// Retry-After when provided.
func (c *Client) do(ctx context.Context, method, url, contentType string, body []byte, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("Authorization", "Bearer "+c.key)
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		req.Header.Set("User-Agent", "pousada-manicaca/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			observability.ObserveExternal("storage", method, resp.StatusCode, time.Since(start))
			if out == nil {
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				return nil
			}
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			observability.ObserveExternal("storage", method, resp.StatusCode, time.Since(start))
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			observability.ObserveExternal("storage", method, resp.StatusCode, time.Since(start))
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			observability.ObserveExternal("storage", method, resp.StatusCode, time.Since(start))
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			observability.ObserveExternal("storage", method, resp.StatusCode, time.Since(start))
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			observability.ObserveExternal("storage", method, resp.StatusCode, time.Since(start))
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (200ms, 400ms, 800ms...),
// with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
