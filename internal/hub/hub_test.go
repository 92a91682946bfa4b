package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubscriber 把测试中推入的通知交给 Hub
type fakeSubscriber struct {
	messages chan []uint
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, deliver func([]uint, []byte)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ids := <-f.messages:
			deliver(ids, []byte(`{"type":"new_post"}`))
		}
	}
}

func newTestClient(h *Hub, userID uint) *Client {
	return &Client{hub: h, userID: userID, send: make(chan []byte, sendBufferSize)}
}

func TestHub_DeliverOnlyToRecipients(t *testing.T) {
	sub := &fakeSubscriber{messages: make(chan []uint, 1)}
	h := NewHub(sub)
	go h.Run()
	defer h.Stop()

	alice := newTestClient(h, 1)
	bob := newTestClient(h, 2)
	require.True(t, h.QueueMessage(HubMessage{Type: "register", UserID: 1, Client: alice}))
	require.True(t, h.QueueMessage(HubMessage{Type: "register", UserID: 2, Client: bob}))
	require.Eventually(t, func() bool { return h.ConnectedUsers() == 2 }, time.Second, 10*time.Millisecond)

	sub.messages <- []uint{1, 3}

	select {
	case msg := <-alice.send:
		assert.JSONEq(t, `{"type":"new_post"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("alice should receive the notification")
	}
	assert.Empty(t, bob.send, "未被通知的用户不应收到消息")
}

func TestHub_SlowClientDropsMessages(t *testing.T) {
	h := NewHub(nil)
	slow := newTestClient(h, 1)
	h.registerClient(slow)

	for i := 0; i < sendBufferSize+5; i++ {
		h.Deliver([]uint{1}, []byte("x"))
	}

	assert.Len(t, slow.send, sendBufferSize, "缓冲区满后的消息被丢弃而不是阻塞")
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := NewHub(nil)
	c := newTestClient(h, 1)
	h.registerClient(c)

	h.unregisterClient(c)
	h.unregisterClient(c) // 重复注销不应 panic

	_, ok := <-c.send
	assert.False(t, ok)
	assert.Equal(t, 0, h.ConnectedUsers())
}
