package auth

import (
	"context"

	"foodhub/internal/domain"
)

// Landing is the first screen of a signed-out user.
type Landing struct {
	base
}

func NewLanding(client API, tokens TokenStore) *Landing {
	return &Landing{base: newBase(client, tokens, "auth")}
}

func (l *Landing) SignUpClicked() { l.navigate(NavigateToSignUp) }

func (l *Landing) LoginClicked() { l.navigate(NavigateToLogin) }

type SignIn struct {
	base
}

func NewSignIn(client API, tokens TokenStore) *SignIn {
	return &SignIn{base: newBase(client, tokens, "signin")}
}

func (s *SignIn) SetEmail(email string) {
	s.Update(func(st State) State { st.Email = email; return st })
}

func (s *SignIn) SetPassword(password string) {
	s.Update(func(st State) State { st.Password = password; return st })
}

func (s *SignIn) SignUpClicked() { s.navigate(NavigateToSignUp) }

func (s *SignIn) Submit() {
	s.Launch(func(ctx context.Context) {
		s.loading()
		current := s.Current()
		res := s.api.SignIn(ctx, domain.SignInRequest{Email: current.Email, Password: current.Password})
		switch {
		case isBadRequest(res):
			s.fail("Invalid Credentials", "Please enter correct details.")
		case !res.OK():
			s.fail("Sign In Failed", "Failed to sign in")
		default:
			s.complete(ctx, res.Data.Token, "Sign In Failed", "Failed to sign in")
		}
	})
}

type SignUp struct {
	base
}

func NewSignUp(client API, tokens TokenStore) *SignUp {
	return &SignUp{base: newBase(client, tokens, "signup")}
}

func (s *SignUp) SetName(name string) {
	s.Update(func(st State) State { st.Name = name; return st })
}

func (s *SignUp) SetEmail(email string) {
	s.Update(func(st State) State { st.Email = email; return st })
}

func (s *SignUp) SetPassword(password string) {
	s.Update(func(st State) State { st.Password = password; return st })
}

func (s *SignUp) LoginClicked() { s.navigate(NavigateToLogin) }

func (s *SignUp) Submit() {
	s.Launch(func(ctx context.Context) {
		s.loading()
		current := s.Current()
		res := s.api.SignUp(ctx, domain.SignUpRequest{
			Name:     current.Name,
			Email:    current.Email,
			Password: current.Password,
		})
		switch {
		case isBadRequest(res):
			s.fail("Invalid Credentials", "Please enter correct details.")
		case !res.OK():
			s.fail("Sign In Failed", "Failed to sign up")
		default:
			s.complete(ctx, res.Data.Token, "Sign In Failed", "Failed to sign up")
		}
	})
}
