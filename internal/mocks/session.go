package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

type SessionStore struct {
	mock.Mock
}

func NewSessionStore(t *testing.T) *SessionStore {
	m := &SessionStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SessionStore) Token(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

func (m *SessionStore) SaveToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *SessionStore) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
