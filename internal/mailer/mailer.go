package mailer

import "context"

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers email. Implementations must be safe for concurrent use;
// event handlers call Send from independent goroutines.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
