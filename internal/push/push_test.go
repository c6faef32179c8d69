package push_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"foodhub/internal/api"
	"foodhub/internal/domain"
	"foodhub/internal/mocks"
	"foodhub/internal/push"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	msg, err := push.Decode([]byte(`{"title":"20% off","body":"today only"}`))
	require.NoError(t, err)
	assert.Equal(t, push.TypeGeneral, msg.Type)

	_, err = push.Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, push.ChannelOrder, push.Classify("order"))
	assert.Equal(t, push.ChannelPromotion, push.Classify("general"))
	assert.Equal(t, push.ChannelAccount, push.Classify("account"))
	assert.Equal(t, push.ChannelAccount, push.Classify("password_reset"))
}

func TestRouter_Route(t *testing.T) {
	tests := []struct {
		name        string
		msg         push.Message
		wantChannel push.Channel
		wantExtras  map[string]string
	}{
		{
			name:        "order carries deep link",
			msg:         push.Message{Type: "order", OrderID: "o1", Title: "Order accepted"},
			wantChannel: push.ChannelOrder,
			wantExtras:  map[string]string{push.ExtraOrderID: "o1"},
		},
		{
			name:        "general drops order id",
			msg:         push.Message{Type: "general", OrderID: "o1", Title: "Promo"},
			wantChannel: push.ChannelPromotion,
			wantExtras:  map[string]string{},
		},
		{
			name:        "other types go to account",
			msg:         push.Message{Type: "security", Title: "New login"},
			wantChannel: push.ChannelAccount,
			wantExtras:  map[string]string{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			notifier := mocks.NewNotifier(t)
			notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n push.LocalNotification) bool {
				return n.Channel == testCase.wantChannel && n.Title == testCase.msg.Title
			})).Return(nil).Once()

			n, err := push.NewRouter(notifier).Route(context.Background(), testCase.msg)
			require.NoError(t, err)
			assert.NotEmpty(t, n.ID)
			assert.Equal(t, testCase.wantExtras, n.Extras)
		})
	}
}

func TestRouter_NotifierError(t *testing.T) {
	notifier := mocks.NewNotifier(t)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("tray full")).Once()

	_, err := push.NewRouter(notifier).Route(context.Background(), push.Message{Type: "order", OrderID: "o1"})
	assert.Error(t, err)
}

type fakeRead struct {
	message kafka.Message
	err     error
}

type fakeReader struct {
	reads  []fakeRead
	cancel context.CancelFunc
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(f.reads) == 0 {
		f.cancel()
		return kafka.Message{}, ctx.Err()
	}
	next := f.reads[0]
	f.reads = f.reads[1:]
	return next.message, next.err
}

func keyed(key, payload string) fakeRead {
	return fakeRead{message: kafka.Message{Key: []byte(key), Value: []byte(payload)}}
}

func TestConsumer_Start(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		reads: []fakeRead{
			keyed("user-ann", `{"type":"order","orderId":"o1","title":"Out for delivery","body":"Your food is on the way"}`),
			keyed("user-ann", `{broken`),
			{err: errors.New("broker unavailable")},
			keyed("user-ann", `{"title":"Weekend deal"}`),
		},
	}

	notifier := mocks.NewNotifier(t)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Twice()

	consumer := push.NewConsumer(reader, push.NewRouter(notifier), "user-ann")
	consumer.Backoff = time.Millisecond
	var routed []push.LocalNotification
	consumer.OnRouted = func(n push.LocalNotification) { routed = append(routed, n) }
	consumer.Start(ctx)

	require.Len(t, routed, 2)
	assert.Equal(t, push.ChannelOrder, routed[0].Channel)
	assert.Equal(t, "o1", routed[0].Extras[push.ExtraOrderID])
	assert.Equal(t, push.ChannelPromotion, routed[1].Channel)
}

func TestConsumer_SkipsOtherUsersMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		reads: []fakeRead{
			keyed("user-bob", `{"type":"order","orderId":"bob-order","title":"Order Placed"}`),
			keyed("", `{"type":"order","orderId":"nobody","title":"Order Placed"}`),
			keyed("user-ann", `{"type":"order","orderId":"ann-order","title":"Order Placed"}`),
		},
	}

	notifier := mocks.NewNotifier(t)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n push.LocalNotification) bool {
		return n.Extras[push.ExtraOrderID] == "ann-order"
	})).Return(nil).Once()

	consumer := push.NewConsumer(reader, push.NewRouter(notifier), "user-ann")
	var routed []string
	consumer.OnRouted = func(n push.LocalNotification) { routed = append(routed, n.Extras[push.ExtraOrderID]) }
	consumer.Start(ctx)

	assert.Equal(t, []string{"ann-order"}, routed)
}

func TestConsumer_StopsOnClosedReader(t *testing.T) {
	reader := &fakeReader{
		cancel: func() {},
		reads:  []fakeRead{{err: io.EOF}, keyed("user-ann", `{"title":"never read"}`)},
	}

	consumer := push.NewConsumer(reader, push.NewRouter(mocks.NewNotifier(t)), "user-ann")
	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.Start(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer kept reading after EOF")
	}
	assert.Len(t, reader.reads, 1)
}

func TestRegisterToken(t *testing.T) {
	tests := []struct {
		name    string
		result  api.Result[domain.PushTokenResponse]
		want    string
		wantErr bool
	}{
		{name: "returns recipient", result: api.Success(domain.PushTokenResponse{UserID: "user-ann"}), want: "user-ann"},
		{name: "empty recipient", result: api.Success(domain.PushTokenResponse{}), wantErr: true},
		{name: "server error", result: api.Error[domain.PushTokenResponse](401, "unauthorized"), wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			client := mocks.NewFoodAPI(t)
			client.On("UpdatePushToken", mock.Anything, domain.PushTokenRequest{Token: "device-1"}).Return(testCase.result).Once()

			recipient, err := push.RegisterToken(context.Background(), client, "device-1")
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, recipient)
		})
	}
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, push.NewLogNotifier().Notify(context.Background(), push.LocalNotification{Title: "hi"}))
}
