// Package upload ships encoded logstream packets to the ingest backend over
// HTTP.
//
// The client is deliberately thin: it takes finished packet bytes from a
// collector flush, optionally compresses them for transport, and POSTs them
// to the ingest endpoint for the packet's stream family. Retries are bounded
// and only cover failures worth retrying, transport errors and 5xx
// responses; 4xx means the payload itself is bad and retrying cannot help.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/playlytic/logstream/compress"
	"github.com/playlytic/logstream/errs"
	"github.com/playlytic/logstream/format"
	"github.com/playlytic/logstream/internal/hash"
	"github.com/playlytic/logstream/internal/options"
)

// Header names recognized by the ingest backend.
const (
	HeaderPayloadDigest = "X-Payload-Digest"
	HeaderSessionID     = "X-Session-ID"
)

const defaultMaxAttempts = 3

// ingest endpoint path per stream family
var endpointPaths = map[format.Kind]string{
	format.KindPosition:    "/v1/ingest/positions",
	format.KindFieldObject: "/v1/ingest/field-objects",
	format.KindEvent:       "/v1/ingest/events",
}

// Client uploads packet bodies to an ingest backend.
//
// A Client is safe for concurrent use. The zero value is not usable; create
// one with NewClient.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	codec       compress.Codec
	encoding    string
	logger      zerolog.Logger
	maxAttempts int
	retryDelay  time.Duration
}

// ClientOption configures a Client.
type ClientOption = options.Option[*Client]

// WithHTTPClient replaces the underlying HTTP client. The default is
// http.DefaultClient; pass a client with a Timeout set for production use.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return options.NoError(func(c *Client) {
		c.httpClient = httpClient
	})
}

// WithCompression enables transport compression of packet bodies with the
// given codec. The matching Content-Encoding header is sent so the backend
// can reverse it. CompressionNone disables compression again.
func WithCompression(compressionType format.CompressionType) ClientOption {
	return options.New(func(c *Client) error {
		codec, err := compress.ForType(compressionType)
		if err != nil {
			return err
		}

		c.codec = codec
		c.encoding = compressionType.ContentEncoding()

		return nil
	})
}

// WithUploadLogger sets the logger for upload diagnostics. The default
// discards everything.
func WithUploadLogger(logger zerolog.Logger) ClientOption {
	return options.NoError(func(c *Client) {
		c.logger = logger
	})
}

// WithMaxAttempts sets the total number of delivery attempts per upload,
// including the first one. Values below 1 are rejected.
func WithMaxAttempts(attempts int) ClientOption {
	return options.New(func(c *Client) error {
		if attempts < 1 {
			return fmt.Errorf("max attempts must be at least 1, got %d", attempts)
		}

		c.maxAttempts = attempts

		return nil
	})
}

// WithRetryDelay sets the pause between delivery attempts. The default is
// 500ms; zero disables the pause.
func WithRetryDelay(delay time.Duration) ClientOption {
	return options.New(func(c *Client) error {
		if delay < 0 {
			return fmt.Errorf("retry delay must not be negative, got %v", delay)
		}

		c.retryDelay = delay

		return nil
	})
}

// NewClient creates a Client targeting the ingest backend at baseURL, e.g.
// "https://ingest.example.com". The path of the target endpoint is derived
// from the packet kind at upload time.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL must not be empty")
	}

	client := &Client{
		baseURL:     baseURL,
		httpClient:  http.DefaultClient,
		logger:      zerolog.Nop(),
		maxAttempts: defaultMaxAttempts,
		retryDelay:  500 * time.Millisecond,
	}

	if err := options.Apply(client, opts...); err != nil {
		return nil, err
	}

	return client, nil
}

// Upload delivers one packet body to the ingest endpoint for its family.
//
// The digest header always covers the uncompressed packet bytes, so the
// backend verifies integrity after reversing the transport encoding. Upload
// blocks until delivery succeeds, the attempt budget is spent, or ctx is
// done.
func (c *Client) Upload(ctx context.Context, kind format.Kind, sessionID uuid.UUID, data []byte) error {
	path, ok := endpointPaths[kind]
	if !ok {
		return fmt.Errorf("%w: %q", errs.ErrUnknownMagic, string(kind))
	}

	digest := hash.DigestHex(data)

	body := data
	if c.codec != nil && c.encoding != "" {
		compressed, err := c.codec.Compress(data)
		if err != nil {
			return fmt.Errorf("compress packet body: %w", err)
		}

		body = compressed
	}

	url := c.baseURL + path

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.pause(ctx); err != nil {
				return err
			}
		}

		status, err := c.post(ctx, url, sessionID, digest, body)
		switch {
		case err != nil:
			lastErr = err
		case status >= 200 && status < 300:
			c.logger.Debug().
				Str("stream", kind.String()).
				Int("bytes", len(body)).
				Int("attempt", attempt).
				Msg("packet uploaded")

			return nil
		case status >= 500:
			lastErr = fmt.Errorf("%w: %d", errs.ErrUploadStatus, status)
		default:
			// Client errors are permanent; retrying the same payload
			// cannot change the outcome.
			return fmt.Errorf("%w: %d", errs.ErrUploadStatus, status)
		}

		c.logger.Warn().
			Err(lastErr).
			Str("stream", kind.String()).
			Int("attempt", attempt).
			Msg("packet upload failed")
	}

	return fmt.Errorf("upload failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *Client) post(ctx context.Context, url string, sessionID uuid.UUID, digest string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}

	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set(HeaderPayloadDigest, digest)
	req.Header.Set(HeaderSessionID, sessionID.String())
	if c.encoding != "" {
		req.Header.Set("Content-Encoding", c.encoding)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	return resp.StatusCode, nil
}

func (c *Client) pause(ctx context.Context) error {
	if c.retryDelay == 0 {
		return nil
	}

	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
