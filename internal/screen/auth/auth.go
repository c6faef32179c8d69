// Package auth holds the three entry screens: the social landing screen,
// email sign-in and email sign-up. All of them end in a stored session
// token and a single NavigateToHome.
package auth

import (
	"context"
	"errors"
	"fmt"

	"foodhub/internal/api"
	"foodhub/internal/domain"
	"foodhub/internal/logging"
	"foodhub/internal/state"

	"github.com/sirupsen/logrus"
)

type Status int

const (
	StatusNothing Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

type State struct {
	Status       Status
	Name         string
	Email        string
	Password     string
	ErrorTitle   string
	ErrorMessage string
}

type EventKind int

const (
	NavigateToHome EventKind = iota + 1
	NavigateToSignUp
	NavigateToLogin
	ShowErrorDialog
)

type Event struct {
	Kind    EventKind
	Title   string
	Message string
}

type API interface {
	SignIn(ctx context.Context, req domain.SignInRequest) api.Result[domain.AuthResponse]
	SignUp(ctx context.Context, req domain.SignUpRequest) api.Result[domain.AuthResponse]
	OAuth(ctx context.Context, req domain.OAuthRequest) api.Result[domain.AuthResponse]
}

// TokenStore receives the token of a successful sign-in.
type TokenStore interface {
	SaveToken(ctx context.Context, token string) error
}

type base struct {
	*state.Holder[State, Event]
	api    API
	tokens TokenStore
	log    *logrus.Entry
}

func newBase(client API, tokens TokenStore, component string) base {
	return base{
		Holder: state.NewHolder[State, Event](State{}),
		api:    client,
		tokens: tokens,
		log:    logging.New(component),
	}
}

func (b *base) loading() {
	b.Update(func(s State) State {
		s.Status = StatusLoading
		s.ErrorTitle, s.ErrorMessage = "", ""
		return s
	})
}

func (b *base) fail(title, message string) {
	b.Update(func(s State) State {
		s.Status = StatusError
		s.ErrorTitle, s.ErrorMessage = title, message
		return s
	})
	b.Emit(Event{Kind: ShowErrorDialog, Title: title, Message: message})
}

// complete stores the token and navigates home, or fails with the given
// title and message when the token is unusable.
func (b *base) complete(ctx context.Context, token, title, message string) {
	if token == "" {
		b.log.WithError(api.ErrEmptyToken).Warn("sign-in rejected")
		b.fail(title, message)
		return
	}
	if err := b.tokens.SaveToken(ctx, token); err != nil {
		b.log.WithError(fmt.Errorf("save session token: %w", err)).Error("sign-in not persisted")
		b.fail(title, message)
		return
	}
	b.Update(func(s State) State {
		s.Status = StatusSuccess
		s.Password = ""
		return s
	})
	b.Emit(Event{Kind: NavigateToHome})
}

func (b *base) navigate(kind EventKind) {
	b.Launch(func(ctx context.Context) {
		b.Emit(Event{Kind: kind})
	})
}

func isBadRequest[T any](res api.Result[T]) bool {
	return res.IsError() && res.Code == 400
}

var errNilProvider = errors.New("no sign-in provider configured")
