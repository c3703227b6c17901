package service

import (
	"context"
	"time"

	"kapitalbot/internal/domain"
	"kapitalbot/internal/sink"
)

// DefaultSubmitTimeout bounds how long a confirming actor waits on the
// downstream sheet before the submission is reported as failed.
const DefaultSubmitTimeout = 5 * time.Second

// EntryService submits completed records to the record sink.
type EntryService struct {
	sink    sink.RecordSink
	timeout time.Duration
}

// NewEntryService creates a new entry service
func NewEntryService(recordSink sink.RecordSink, timeout time.Duration) *EntryService {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	return &EntryService{
		sink:    recordSink,
		timeout: timeout,
	}
}

// Submit appends the record downstream under a bounded timeout. A
// timeout expiry surfaces as a sink failure to the caller.
func (s *EntryService) Submit(ctx context.Context, rec domain.Record, userName string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.sink.Append(ctx, rec, userName)
}
