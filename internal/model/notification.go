package model

import "context"

// EmailClient delivers second-factor codes to users. Delivery guarantees
// are the implementation's concern.
type EmailClient interface {
	SendCode(ctx context.Context, email Email, code TwoFACode) error
}
