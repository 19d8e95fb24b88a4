package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
)

// TransportError is a network-level failure reaching an upstream api
// (timeout, dns, connection reset, open circuit). The response never arrived;
// there is no status code to report.
type TransportError struct {
	API string
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("error on %v api request: %v", e.API, e.Err)
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// Do executes req with up to three attempts on transport failure, guarded by
// the circuit breaker. Non-2xx responses are returned as-is for the caller to
// classify; only failures to get a response at all are retried.
func Do(client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) (*http.Response, error) {
	var lastErr error

	retries := 3
	for retries > 0 {
		result, err := cb.Execute(func() (interface{}, error) {
			return client.Do(req)
		})
		if err == nil {
			return result.(*http.Response), nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, TransportError{API: cb.Name(), Err: err}
		}
		lastErr = err
		retries--
	}
	return nil, TransportError{API: cb.Name(), Err: lastErr}
}
