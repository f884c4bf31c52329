package newrelic

import (
	"context"
	"net/http"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Agent methods are nil-safe, so every helper here degrades to a plain call
// when the context carries no transaction.

func txnFrom(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

// WithSegment times fn as a named segment of the current transaction
func WithSegment(ctx context.Context, name string, fn func() error) error {
	_, err := WithSegmentAndReturn(ctx, name, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// WithSegmentAndReturn is WithSegment for functions that produce a value
func WithSegmentAndReturn[T any](ctx context.Context, name string, fn func() (T, error)) (T, error) {
	defer txnFrom(ctx).StartSegment(name).End()
	return fn()
}

// InstrumentHTTPRequest records an outbound call as an external segment
func InstrumentHTTPRequest(ctx context.Context, req *http.Request, do func() (*http.Response, error)) (*http.Response, error) {
	seg := newrelic.StartExternalSegment(txnFrom(ctx), req)
	resp, err := do()
	seg.Response = resp
	seg.End()
	return resp, err
}

// StartBackgroundTransaction opens a non-web transaction, one per queue
// message. End it with the returned func.
func StartBackgroundTransaction(ctx context.Context, app *newrelic.Application, name string) (context.Context, func(error)) {
	if app == nil {
		return ctx, func(error) {}
	}
	txn := app.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), func(err error) {
		if err != nil {
			txn.NoticeError(err)
		}
		txn.End()
	}
}
