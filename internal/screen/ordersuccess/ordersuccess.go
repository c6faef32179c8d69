// Package ordersuccess confirms a placed order and offers a tracking QR code.
package ordersuccess

import (
	"context"

	"foodhub/internal/logging"
	"foodhub/internal/state"
)

type State struct {
	OrderID string
	QRCode  []byte
}

type EventKind int

const (
	NavigateToHome EventKind = iota + 1
)

type Event struct {
	Kind EventKind
}

type Screen struct {
	*state.Holder[State, Event]
}

// New shows orderID and renders its QR code in the background. A nil
// generator skips the code.
func New(orderID string, qr QRGenerator) *Screen {
	s := &Screen{Holder: state.NewHolder[State, Event](State{OrderID: orderID})}
	if qr != nil {
		s.Launch(func(ctx context.Context) {
			png, err := qr.Generate(orderID)
			if err != nil {
				logging.New("ordersuccess").WithError(err).Warn("tracking code unavailable")
				return
			}
			s.Update(func(st State) State { st.QRCode = png; return st })
		})
	}
	return s
}

// ContinueShopping returns to home; the system back action does the same.
func (s *Screen) ContinueShopping() {
	s.Launch(func(ctx context.Context) {
		s.Emit(Event{Kind: NavigateToHome})
	})
}
