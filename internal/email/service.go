package email

import (
	"context"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Service sends email. Implementations are constructed once at startup and
// injected; there is no package-level client.
type Service interface {
	Send(ctx context.Context, msg *Message) error
}
