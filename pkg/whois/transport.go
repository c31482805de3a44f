package whois

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"whoisresolver/pkg/serrors"
)

// MaxBodyBytes caps how much of an upstream response body is read.
const MaxBodyBytes = 4 << 20

// Response is an upstream answer read into memory.
type Response struct {
	StatusCode int
	Body       []byte
}

// Do sends req with httpClient and reads the whole (capped) body. Transport
// failures are classified: deadlines become serrors.ErrTimeout, everything
// else serrors.ErrUnavailable. A timeout is never reported as "not found".
func Do(httpClient *http.Client, req *http.Request) (Response, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return Response{}, classifyTransport(err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return Response{}, classifyTransport(err, "could not read response body")
	}

	return Response{StatusCode: resp.StatusCode, Body: b}, nil
}

func classifyTransport(err error, msg string) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return serrors.Wrap(serrors.ErrTimeout, err, "%s", msg)
	}

	return serrors.Wrap(serrors.ErrUnavailable, err, "%s", msg)
}

// IsSuccess reports whether status is 2xx.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// UpstreamError builds the serrors.ErrUpstream error for an unexpected status.
func UpstreamError(provider string, resp Response) error {
	return serrors.With(serrors.ErrUpstream, "%s returned status %d: %s",
		provider, resp.StatusCode, Snippet(resp.Body))
}

// Snippet returns at most the first 256 bytes of body for error messages.
func Snippet(body []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return fmt.Sprintf("%s...", s[:limit])
	}

	return s
}
