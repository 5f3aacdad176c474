package exceptions

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/getsentry/raven-go"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("exceptions")

// Reporter forwards errors and recovered panics to sentry. Without a DSN it
// only counts them; they are logged by whoever reports them.
type Reporter struct {
	ErrorService *raven.Client
	reported     int64
}

func NewReporter(dsn string) (*Reporter, error) {
	if dsn == "" {
		return &Reporter{}, nil
	}

	client, err := raven.New(dsn)
	if err != nil {
		return nil, fmt.Errorf("exceptions: sentry client: %w", err)
	}
	return &Reporter{ErrorService: client}, nil
}

// Report an error with optional tags.
func (r *Reporter) Report(err error, tags map[string]string) {
	if r == nil || err == nil {
		return
	}

	atomic.AddInt64(&r.reported, 1)
	if r.ErrorService != nil {
		r.ErrorService.CaptureError(err, tags)
	}
}

// Capture a value obtained from recover().
func (r *Reporter) Capture(rval interface{}) {
	if r == nil || rval == nil {
		return
	}

	var packet *raven.Packet
	switch rval := rval.(type) {
	case error:
		packet = raven.NewPacket(rval.Error(), raven.NewException(rval, raven.NewStacktrace(2, 3, nil)))
	default:
		rvalStr := fmt.Sprint(rval)
		packet = raven.NewPacket(rvalStr, raven.NewException(errors.New(rvalStr), raven.NewStacktrace(2, 3, nil)))
	}

	atomic.AddInt64(&r.reported, 1)
	log.Errorf("recovered: %v", rval)

	// Grab the error and send it to sentry
	if r.ErrorService != nil {
		r.ErrorService.Capture(packet, map[string]string{})
	}
}

// Recover must be deferred directly.
func (r *Reporter) Recover() {
	r.Capture(recover())
}

// Reported counts everything handed to the reporter so far.
func (r *Reporter) Reported() int64 {
	if r == nil {
		return 0
	}
	return atomic.LoadInt64(&r.reported)
}
