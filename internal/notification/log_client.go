package notification

import (
	"context"

	"github.com/authgate/authgate-server/internal/logger"
	"github.com/authgate/authgate-server/internal/model"
)

// LogClient delivers second-factor codes to the log instead of a mailbox.
// It stands in for a real mail provider in development and tests.
type LogClient struct {
	logger *logger.Logger
}

var _ model.EmailClient = (*LogClient)(nil)

// NewLogClient creates a new LogClient.
func NewLogClient(logger *logger.Logger) *LogClient {
	return &LogClient{logger: logger}
}

// SendCode logs the code for the recipient.
func (c *LogClient) SendCode(_ context.Context, email model.Email, code model.TwoFACode) error {
	c.logger.Info("Notification: second-factor code issued",
		"email", email.String(),
		"code", code.String())
	return nil
}
