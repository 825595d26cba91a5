package notifications

import "context"

// MailSender delivers a composed mail. Implementations live in the outbound
// adapters (internal/adapters/out/smtp).
type MailSender interface {
	Send(ctx context.Context, mail Mail) error
}

// ThemeResolver maps a shop code to its ordered template theme chain.
// The last element is expected to be the default theme.
type ThemeResolver interface {
	Chain(shopCode string) []string
}
