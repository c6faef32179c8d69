package ordersuccess

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"foodhub/internal/state/statetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingQR struct{}

func (failingQR) Generate(string) ([]byte, error) { return nil, errors.New("too long") }

func TestDefaultQRGenerator(t *testing.T) {
	gen := DefaultQRGenerator{}
	assert.Equal(t, "foodhub://orders/o%2F1", gen.Link("o/1"))

	gen = DefaultQRGenerator{BaseURL: "https://foodhub.example/track/"}
	assert.Equal(t, "https://foodhub.example/track/o1", gen.Link("o1"))

	png, err := gen.Generate("o1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestScreen(t *testing.T) {
	screen := New("o1", DefaultQRGenerator{})
	defer screen.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := screen.Subscribe(ctx, 2)

	screen.ContinueShopping()
	screen.Sync()

	assert.Equal(t, "o1", screen.Current().OrderID)
	assert.NotEmpty(t, screen.Current().QRCode)
	assert.Equal(t, []Event{{Kind: NavigateToHome}}, statetest.Drain(events))
}

func TestScreen_QRFailureKeepsOrder(t *testing.T) {
	screen := New("o1", failingQR{})
	defer screen.Close()
	screen.Sync()

	assert.Equal(t, State{OrderID: "o1"}, screen.Current())
}
