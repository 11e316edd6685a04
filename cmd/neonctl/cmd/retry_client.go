package cmd

import (
	"context"
	"crypto/x509"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"slices"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/zthreefires/neonctl/pkg/config"
	"github.com/zthreefires/neonctl/pkg/logging"
)

var (
	// these errors aren't typed, so we match by regexp
	redirectsErrorRe  = regexp.MustCompile(`stopped after \d+ redirects\z`)
	schemeErrorRe     = regexp.MustCompile(`unsupported protocol scheme`)
	notTrustedErrorRe = regexp.MustCompile(`certificate is not trusted`)
)

// NewRetryClient returns an http.Client that retries requests as configured.
// MaxAttempts counts the first attempt.
func NewRetryClient(retriesCfg config.RetriesCfg, transport *http.Transport, checkRetry retryablehttp.CheckRetry) *http.Client {
	retryClient := retryablehttp.NewClient()
	if transport != nil {
		retryClient.HTTPClient.Transport = transport
	}
	retryClient.Logger = &retryLogger{log: logging.Default()}
	retryClient.RetryMax = int(retriesCfg.MaxAttempts) - 1
	retryClient.RetryWaitMin = retriesCfg.MinWaitInterval
	retryClient.RetryWaitMax = retriesCfg.MaxWaitInterval
	retryClient.CheckRetry = checkRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return retryClient.StandardClient()
}

// retryLogger adapts our logger to retryablehttp.LeveledLogger. Retry
// attempts are only interesting when debugging.
type retryLogger struct {
	log logging.Logger
}

func (l *retryLogger) with(keysAndValues []interface{}) logging.Logger {
	fields := logging.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return l.log.WithFields(fields)
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Trace(msg)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

// ShouldRetryer lists the HTTP statuses worth another attempt.
type ShouldRetryer []int

func (s ShouldRetryer) Retry(status int) bool {
	return slices.Contains(s, status)
}

// CheckRetry makes a retry decision.
//
// - It will _never_ retry on these unrecoverable errors:
//
//   - a context error (typically canceled or deadline exceeded);
//   - invalid http scheme/protocol
//   - TLS cert validation failure
//
// - Any other error is retriable.
//
// - When there is no error, it will retry if should says to retry this status.
func CheckRetry(ctx context.Context, resp *http.Response, err error, should ShouldRetryer) (bool, error) {
	// do not retry on context.Canceled or context.DeadlineExceeded
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			if redirectsErrorRe.MatchString(urlErr.Error()) ||
				schemeErrorRe.MatchString(urlErr.Error()) ||
				notTrustedErrorRe.MatchString(urlErr.Error()) {
				return false, errors.Unwrap(urlErr)
			}

			var unknownAuthority x509.UnknownAuthorityError
			if errors.As(urlErr.Err, &unknownAuthority) {
				return false, errors.Unwrap(urlErr)
			}
		}
		return true, nil
	}

	return should.Retry(resp.StatusCode), nil
}

// neonctlRetryPolicy retries in the following cases:
// HTTP status 423 - locked, the project has operations running
// HTTP status 429 - too many requests
// HTTP status 500 - internal server error - could be recoverable
// HTTP status 502 - bad gateway
// HTTP status 503 - service unavailable
// and on all client transport errors except for:
//   - too many redirects
//   - invalid http scheme/protocol
//   - TLS cert verification failure
func neonctlRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	return CheckRetry(ctx, resp, err, neonctlDefaultRetryStatuses)
}

var neonctlDefaultRetryStatuses = ShouldRetryer{
	http.StatusLocked,
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
}
