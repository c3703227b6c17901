package sink

import (
	"context"

	"kapitalbot/internal/domain"
)

// RecordSink externalizes a completed record to the system of record.
type RecordSink interface {
	// Append durably appends the record downstream. userName is the
	// actor's resolved display name, exported alongside the record.
	Append(ctx context.Context, rec domain.Record, userName string) error
}
