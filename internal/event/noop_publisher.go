package event

import (
	"context"
	"log/slog"
)

// NoopPublisher stands in when no broker is configured. Events are logged at
// debug level and dropped.
type NoopPublisher struct {
	logger *slog.Logger
}

var _ Publisher = (*NoopPublisher)(nil)

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger.With(slog.String("component", "NoopPublisher"))}
}

func (p *NoopPublisher) PublishLoanIssued(ctx context.Context, event LoanIssuedEvent) error {
	p.logger.DebugContext(ctx, "Dropping loan issued event", slog.Int64("loanID", event.LoanID))
	return nil
}

func (p *NoopPublisher) PublishLoanReturned(ctx context.Context, event LoanReturnedEvent) error {
	p.logger.DebugContext(ctx, "Dropping loan returned event", slog.Int64("loanID", event.LoanID))
	return nil
}
