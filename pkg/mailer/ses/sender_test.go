package ses

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/correio/pkg/mailer"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) SendEmail(ctx context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*sesv2.SendEmailOutput)
	return out, args.Error(1)
}

type apiError struct {
	code string
}

func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return "boom" }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }
func (e *apiError) Error() string                 { return fmt.Sprintf("%s: boom", e.code) }

func TestNewWithAPI(t *testing.T) {
	t.Parallel()

	_, err := NewWithAPI(&mockAPI{}, Config{})
	require.ErrorIs(t, err, ErrMissingSender)
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	cfg := Config{SenderEmail: "notes@example.com", SenderName: "Correio Elegante"}

	t.Run("maps email and returns message id", func(t *testing.T) {
		t.Parallel()

		api := &mockAPI{}
		api.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *sesv2.SendEmailInput) bool {
			msg := in.Content.Simple
			return aws.ToString(in.FromEmailAddress) == "Correio Elegante <notes@example.com>" &&
				in.Destination.ToAddresses[0] == "crush@example.com" &&
				aws.ToString(msg.Subject.Data) == "Hi" &&
				aws.ToString(msg.Body.Html.Data) == "<p>Hi</p>" &&
				aws.ToString(msg.Body.Text.Data) == "Hi" &&
				len(in.EmailTags) == 1 &&
				aws.ToString(in.EmailTags[0].Value) == "anonymous_note"
		})).Return(&sesv2.SendEmailOutput{MessageId: aws.String("0100018f-abc")}, nil).Once()

		s, err := NewWithAPI(api, cfg)
		require.NoError(t, err)

		res, err := s.Send(context.Background(), &mailer.Email{
			To:      []string{"crush@example.com"},
			Subject: "Hi",
			HTML:    "<p>Hi</p>",
			Text:    "Hi",
			Tags:    mailer.Tags{"category": "anonymous_note"},
		})
		require.NoError(t, err)
		require.Equal(t, "0100018f-abc", res.ID)
		api.AssertExpectations(t)
	})

	t.Run("unsupported fields", func(t *testing.T) {
		t.Parallel()

		api := &mockAPI{}
		s, err := NewWithAPI(api, cfg)
		require.NoError(t, err)

		_, err = s.Send(context.Background(), &mailer.Email{
			To:          []string{"a@b.co"},
			Attachments: []mailer.Attachment{{Filename: "a.txt"}},
		})
		require.ErrorIs(t, err, ErrUnsupported)
		api.AssertNotCalled(t, "SendEmail")
	})

	t.Run("api errors are classified", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			err  error
			want error
		}{
			{err: &apiError{code: "MessageRejected"}, want: ErrRejected},
			{err: &apiError{code: "TooManyRequestsException"}, want: ErrThrottled},
			{err: &apiError{code: "SendingPausedException"}, want: ErrSendingPaused},
			{err: &apiError{code: "InternalFailure"}, want: ErrSendFailed},
			{err: errors.New("dial tcp: timeout"), want: ErrSendFailed},
		}

		for _, tt := range tests {
			api := &mockAPI{}
			api.On("SendEmail", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			s, err := NewWithAPI(api, cfg)
			require.NoError(t, err)

			res, err := s.Send(context.Background(), &mailer.Email{To: []string{"a@b.co"}, Subject: "s", HTML: "h"})
			require.ErrorIs(t, err, tt.want, tt.err.Error())
			require.Nil(t, res)
		}
	})
}
