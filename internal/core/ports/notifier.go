package ports

import "context"

// Notifier delivers outbound mail. Callers in this core treat delivery as
// best-effort: a returned error is logged, never propagated, and never
// rolls back the state change that triggered the message.
type Notifier interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
}
