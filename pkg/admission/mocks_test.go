package admission_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/correio/pkg/admission"
	"github.com/dmitrymomot/correio/pkg/captcha"
	"github.com/dmitrymomot/correio/pkg/ratelimit"
)

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ratelimit.Decision), args.Error(1)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token, remoteIP string) (*captcha.Verdict, error) {
	args := m.Called(ctx, token, remoteIP)
	v, _ := args.Get(0).(*captcha.Verdict)
	return v, args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, note admission.Note) (string, error) {
	args := m.Called(ctx, note)
	return args.String(0), args.Error(1)
}
