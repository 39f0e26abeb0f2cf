package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/rs/zerolog"
)

// Mailer delivers password-reset emails. Send failures are logged by the
// caller, never surfaced to the client.
type Mailer interface {
	SendPasswordResetEmail(ctx context.Context, to, token string) error
}

// SESMailer sends through AWS SES.
type SESMailer struct {
	client *ses.Client
	sender string
}

func NewSESMailer(ctx context.Context, region, sender string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), sender: sender}, nil
}

func (m *SESMailer) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	subject := "Password Reset"
	body := fmt.Sprintf("Your password reset token is: %s\n\nUse it in the app to set a new password. It expires in one hour.", token)

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(m.sender),
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// NoopMailer stands in when SES is not configured (local development,
// tests). It only logs that a mail would have gone out.
type NoopMailer struct {
	Log zerolog.Logger
}

func (m NoopMailer) SendPasswordResetEmail(_ context.Context, to, _ string) error {
	m.Log.Info().Str("to", to).Msg("mailer not configured, skipping password reset email")
	return nil
}
