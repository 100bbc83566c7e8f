package river

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/dspatoulas/urid"
)

// EventWorker processes resource event jobs from the River queue.
// For now it validates the identifier snapshot and logs the event; future
// versions will dispatch to webhooks or provisioning logic.
type EventWorker struct {
	river.WorkerDefaults[EventJobArgs]
}

// Work processes a single event job.
func (w *EventWorker) Work(ctx context.Context, job *river.Job[EventJobArgs]) error {
	// The id round-trips the queue as text; a decode failure here means the
	// snapshot was corrupted and the job should not be retried blindly.
	id, err := urid.Parse(job.Args.ResourceID)
	if err != nil {
		return fmt.Errorf("decoding resource id %q: %w", job.Args.ResourceID, err)
	}

	slog.InfoContext(ctx, "processing event",
		"event", job.Args.Event,
		"resource_id", id.String(),
		"kind", id.Resource(),
		"name", job.Args.Name,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}
