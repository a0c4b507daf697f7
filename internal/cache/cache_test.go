package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroker struct {
	published map[string][][]byte
	incoming  chan []byte
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{
		published: make(map[string][][]byte),
		incoming:  make(chan []byte, 10),
	}
}

func (b *fakeBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	b.published[channel] = append(b.published[channel], payload)
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return b.incoming, nil
}

func (b *fakeBroker) Close() error { return nil }

func TestStore_SetGet(t *testing.T) {
	s := NewStore(time.Minute, nil)

	_, ok := s.Get(KeyUsers)
	assert.False(t, ok)

	s.Set(KeyUsers, []string{"a", "b"})

	got, ok := s.Get(KeyUsers)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestInvalidate_DropsLocalKeys(t *testing.T) {
	s := NewStore(time.Minute, nil)
	s.Set(KeyUsers, "u")
	s.Set(KeyClinics, "c")
	s.Set(KeyAdmins, "a")

	s.Invalidate(context.Background(), KeyUsers, KeyClinics)

	_, ok := s.Get(KeyUsers)
	assert.False(t, ok)
	_, ok = s.Get(KeyClinics)
	assert.False(t, ok)
	_, ok = s.Get(KeyAdmins)
	assert.True(t, ok)
}

func TestInvalidate_BroadcastsToPeers(t *testing.T) {
	broker := newFakeBroker()
	s := NewStore(time.Minute, broker)

	s.Invalidate(context.Background(), KeyUsers)

	require.Len(t, broker.published[InvalidateChannel], 1)

	var msg struct {
		Keys []string `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(broker.published[InvalidateChannel][0], &msg))
	assert.Equal(t, []string{KeyUsers}, msg.Keys)
}

func TestListen_AppliesPeerInvalidations(t *testing.T) {
	broker := newFakeBroker()
	s := NewStore(time.Minute, broker)
	s.Set(KeyClinics, "cached")

	done := make(chan struct{})
	go func() {
		s.Listen(context.Background())
		close(done)
	}()

	broker.incoming <- []byte(`{"keys":["clinics"]}`)
	close(broker.incoming)
	<-done

	_, ok := s.Get(KeyClinics)
	assert.False(t, ok)
}
