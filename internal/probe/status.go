package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// StatusErrorKind classifies a status probe failure.
type StatusErrorKind string

const (
	StatusErrResponse   StatusErrorKind = "response_error"   // non-2xx status
	StatusErrConnection StatusErrorKind = "connection_error" // dial/refused/timeout
	StatusErrTLS        StatusErrorKind = "tls_error"
	StatusErrHTTP       StatusErrorKind = "http_error" // other transport failure
	StatusErrParse      StatusErrorKind = "parse_error"
)

// StatusError is a failed status probe. Callers decide whether a failure
// means "unknown" or "unhealthy"; this layer only classifies it.
type StatusError struct {
	Kind StatusErrorKind
	URL  string
	Err  error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status check %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// StatusClient probes the local HTTPS status API. The injected client is
// expected to carry the node's TLS identity and trust anchors.
type StatusClient struct {
	Certname string
	Client   *http.Client
	Logger   *zap.Logger
}

func NewStatusClient(certname string, tlsCfg *tls.Config, logger *zap.Logger) *StatusClient {
	return &StatusClient{
		Certname: certname,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: &http.Transport{TLSClientConfig: tlsCfg},
		},
		Logger: logger,
	}
}

// Check GETs https://{certname}:{port}/status/v1/services/{endpoint} and
// decodes the JSON body. One attempt, no retry. Every failure is logged
// once at debug level and returned as a *StatusError.
func (c *StatusClient) Check(ctx context.Context, port int, endpoint string) (map[string]any, error) {
	u := url.URL{
		Scheme: "https",
		Host:   net.JoinHostPort(c.Certname, strconv.Itoa(port)),
		Path:   "/status/v1/services/" + endpoint,
	}
	target := u.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, c.fail(StatusErrHTTP, target, err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, c.fail(classifyTransportError(err), target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(StatusErrHTTP, target, err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, c.fail(StatusErrResponse, target, fmt.Errorf("unexpected status %s", resp.Status))
	}

	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, c.fail(StatusErrParse, target, err)
	}
	return out, nil
}

func (c *StatusClient) fail(kind StatusErrorKind, target string, err error) error {
	if c.Logger != nil {
		c.Logger.Debug("status_check_failed",
			zap.String("url", target),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
	return &StatusError{Kind: kind, URL: target, Err: err}
}

func classifyTransportError(err error) StatusErrorKind {
	var (
		certVerify *tls.CertificateVerificationError
		recHdr     tls.RecordHeaderError
		unknownCA  x509.UnknownAuthorityError
		hostname   x509.HostnameError
		opErr      *net.OpError
	)
	switch {
	case errors.As(err, &certVerify), errors.As(err, &recHdr),
		errors.As(err, &unknownCA), errors.As(err, &hostname):
		return StatusErrTLS
	case errors.As(err, &opErr), errors.Is(err, context.DeadlineExceeded):
		return StatusErrConnection
	}
	return StatusErrHTTP
}
