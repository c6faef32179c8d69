package auth

import (
	"context"

	"foodhub/internal/api"
	"foodhub/internal/domain"
)

const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// Provider is the platform sign-in SDK. Token yields the provider's own
// token; a cancelled flow is reported as an error.
type Provider interface {
	Name() string
	Token(ctx context.Context) (string, error)
}

// ProviderTitle is the dialog title for a failed social sign-in.
func ProviderTitle(provider string) string {
	switch provider {
	case ProviderGoogle:
		return "Google Sign In Failed"
	case ProviderFacebook:
		return "Facebook Sign In Failed"
	default:
		return "Sign In Failed"
	}
}

// OAuthFailure maps a failed token exchange to its user-facing message.
func OAuthFailure[T any](res api.Result[T]) string {
	if !res.IsError() {
		return "Failed"
	}
	switch res.Code {
	case 401:
		return "Invalid Token"
	case 500:
		return "Server Error"
	case 404:
		return "Not Found"
	default:
		return "Unknown Error"
	}
}

// SocialSignIn runs the provider flow and exchanges its token for a
// session token.
func (b *base) SocialSignIn(provider Provider) {
	b.Launch(func(ctx context.Context) {
		if provider == nil {
			b.fail(ProviderTitle(""), errNilProvider.Error())
			return
		}
		title := ProviderTitle(provider.Name())
		b.loading()

		providerToken, err := provider.Token(ctx)
		if err != nil {
			b.log.WithError(err).WithField("provider", provider.Name()).Warn("provider sign-in failed")
			b.fail(title, err.Error())
			return
		}

		res := b.api.OAuth(ctx, domain.OAuthRequest{Token: providerToken, Provider: provider.Name()})
		if !res.OK() {
			b.fail(title, OAuthFailure(res))
			return
		}
		b.complete(ctx, res.Data.Token, title, "Failed")
	})
}
