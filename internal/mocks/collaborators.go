package mocks

import (
	"context"
	"testing"

	"foodhub/internal/push"

	"github.com/stretchr/testify/mock"
)

// Provider mocks a social sign-in SDK.
type Provider struct {
	mock.Mock
}

func NewProvider(t *testing.T) *Provider {
	m := &Provider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Provider) Name() string {
	return m.Called().String(0)
}

func (m *Provider) Token(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

// Locator mocks the device location provider.
type Locator struct {
	mock.Mock
}

func NewLocator(t *testing.T) *Locator {
	m := &Locator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Locator) Location(ctx context.Context) (float64, float64, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(float64), ret.Get(1).(float64), ret.Error(2)
}

// Notifier mocks the OS notification tray.
type Notifier struct {
	mock.Mock
}

func NewNotifier(t *testing.T) *Notifier {
	m := &Notifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Notifier) Notify(ctx context.Context, n push.LocalNotification) error {
	return m.Called(ctx, n).Error(0)
}
