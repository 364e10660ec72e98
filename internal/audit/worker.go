package audit

import (
	"context"
	"log/slog"
)

// Worker drains the publisher's inbox into the sink. Sink failures are
// logged and the worker keeps going; an audit outage must not take the
// service down with it.
type Worker struct {
	sink  Sink
	inbox <-chan Event
	log   *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, log *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, log: log}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.log.ErrorContext(ctx, "audit append failed",
					"action", event.Action,
					"record_id", event.RecordID,
					"error", err,
				)
			}
		}
	}
}
