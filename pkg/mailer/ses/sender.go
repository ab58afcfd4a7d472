package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/dmitrymomot/correio/pkg/mailer"
)

const charset = "UTF-8"

// API is the subset of the SES v2 client used by Sender.
type API interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Sender implements mailer.Sender using the SES v2 SendEmail API.
type Sender struct {
	api  API
	from string
}

// New loads AWS configuration for cfg.Region and creates a Sender.
// Static credentials are used when both keys are set.
func New(ctx context.Context, cfg Config) (*Sender, error) {
	if cfg.SenderEmail == "" {
		return nil, ErrMissingSender
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	client := sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewWithAPI(client, cfg)
}

// NewWithAPI creates a Sender around an existing SES client.
func NewWithAPI(api API, cfg Config) (*Sender, error) {
	if cfg.SenderEmail == "" {
		return nil, ErrMissingSender
	}
	return &Sender{
		api:  api,
		from: mailer.Recipient(cfg.SenderName, cfg.SenderEmail),
	}, nil
}

// Send implements mailer.Sender. The returned ID is the SES MessageId.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (*mailer.SendResult, error) {
	if len(email.Headers) > 0 || len(email.Attachments) > 0 {
		return nil, ErrUnsupported
	}

	from := email.From
	if from == "" {
		from = s.from
	}

	body := &types.Body{
		Html: &types.Content{Data: aws.String(email.HTML), Charset: aws.String(charset)},
	}
	if email.Text != "" {
		body.Text = &types.Content{Data: aws.String(email.Text), Charset: aws.String(charset)}
	}

	in := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses:  email.To,
			CcAddresses:  email.CC,
			BccAddresses: email.BCC,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(email.Subject), Charset: aws.String(charset)},
				Body:    body,
			},
		},
		EmailTags: convertTags(email.Tags),
	}
	if email.ReplyTo != "" {
		in.ReplyToAddresses = []string{email.ReplyTo}
	}

	out, err := s.api.SendEmail(ctx, in)
	if err != nil {
		return nil, wrapError(err)
	}

	return &mailer.SendResult{ID: aws.ToString(out.MessageId)}, nil
}

func convertTags(tags mailer.Tags) []types.MessageTag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]types.MessageTag, 0, len(tags))
	for name, v := range tags {
		value := "true"
		if sv, ok := v.(string); ok {
			value = sv
		}
		out = append(out, types.MessageTag{Name: aws.String(name), Value: aws.String(value)})
	}
	return out
}

var _ mailer.Sender = (*Sender)(nil)
