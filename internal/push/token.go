package push

import (
	"context"
	"errors"
	"fmt"

	"foodhub/internal/api"
	"foodhub/internal/domain"
)

var ErrEmptyRecipient = errors.New("push registration returned no recipient")

// TokenRegistrar sends the device push token to the backend.
type TokenRegistrar interface {
	UpdatePushToken(ctx context.Context, req domain.PushTokenRequest) api.Result[domain.PushTokenResponse]
}

// RegisterToken registers a new or rotated device token and returns the
// recipient key the backend puts on this user's push messages.
func RegisterToken(ctx context.Context, registrar TokenRegistrar, token string) (string, error) {
	res := registrar.UpdatePushToken(ctx, domain.PushTokenRequest{Token: token})
	if !res.OK() {
		return "", fmt.Errorf("register push token: %s", res.Describe())
	}
	if res.Data.UserID == "" {
		return "", ErrEmptyRecipient
	}
	return res.Data.UserID, nil
}
