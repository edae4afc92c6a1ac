package realtime

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-webinar/landing/internal/models"
	"github.com/aura-webinar/landing/internal/store"
	"github.com/aura-webinar/landing/internal/view"
	"github.com/aura-webinar/landing/pkg/kv"
)

func newTestClient(t *testing.T) (*Hub, *store.Store, *Client) {
	t.Helper()
	hub := NewHub(nil)
	s := store.New(kv.NewMemory(), store.WithNavigator(hub))
	s.Load(context.Background())
	gate, err := view.NewGate(view.DefaultUsername, view.DefaultPassword)
	require.NoError(t, err)
	c := NewClient(hub, s, gate, nil, nil)
	hub.Register(c)
	return hub, s, c
}

func message(t *testing.T, event string, payload any) WSMessage {
	t.Helper()
	msg, err := newMessage(event, payload)
	require.NoError(t, err)
	return msg
}

func decode[T any](t *testing.T, msg WSMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(msg.Data, &v))
	return v
}

func TestHub_NavigateBroadcasts(t *testing.T) {
	hub, s, c := newTestClient(t)
	other := NewClient(hub, s, nil, nil, nil)
	hub.Register(other)
	assert.Equal(t, 2, hub.Count())

	_, err := s.Create(context.Background(), models.NewSessionTemplate(s.Active()))
	require.NoError(t, err)

	for _, cl := range []*Client{c, other} {
		select {
		case msg := <-cl.send:
			assert.Equal(t, EventNavigate, msg.Event)
			assert.Equal(t, "#/webinar/2", decode[FragmentPayload](t, msg).Fragment)
		default:
			t.Fatal("expected a navigate message")
		}
	}
}

func TestHub_UnregisterClosesQueue(t *testing.T) {
	hub, _, c := newTestClient(t)
	hub.Unregister(c)
	_, open := <-c.send
	assert.False(t, open)
	assert.Equal(t, 0, hub.Count())

	hub.Unregister(c)
	hub.Navigate("#/webinar/1")
}

func TestClient_HashChange(t *testing.T) {
	_, s, c := newTestClient(t)
	_, err := s.Create(context.Background(), models.NewSessionTemplate(s.Active()))
	require.NoError(t, err)
	<-c.send

	tests := []struct {
		name        string
		fragment    string
		wantActive  string
		wantChanged bool
	}{
		{"existing", "#/webinar/1", "1", true},
		{"unknown", "#/webinar/9", "1", false},
		{"malformed", "#/other/2", "1", false},
		{"switch back", "#/webinar/2", "2", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, ok := c.Handle(message(t, EventHashChange, FragmentPayload{Fragment: tt.fragment}))
			require.True(t, ok)
			assert.Equal(t, EventActive, reply.Event)
			got := decode[ActivePayload](t, reply)
			assert.Equal(t, tt.wantActive, got.ActiveID)
			assert.Equal(t, tt.wantChanged, got.Changed)
			assert.Equal(t, tt.wantActive, s.ActiveID())
		})
	}
}

func TestClient_ViewFlow(t *testing.T) {
	_, _, c := newTestClient(t)

	steps := []struct {
		name       string
		msg        WSMessage
		wantScreen string
		wantError  string
	}{
		{"enter admin", WSMessage{Event: EventAdminEntry}, "LOGIN", ""},
		{"cancel", WSMessage{Event: EventCancel}, "LANDING", ""},
		{"enter again", WSMessage{Event: EventAdminEntry}, "LOGIN", ""},
		{"bad login", message(t, EventLogin, credentials{Username: "Admin", Password: "nope"}), "LOGIN", view.MsgInvalidCredentials},
		{"login", message(t, EventLogin, credentials{Username: "Admin", Password: "12345"}), "ADMIN", ""},
		{"preview", WSMessage{Event: EventPreview}, "LANDING", ""},
		{"logout from landing", WSMessage{Event: EventLogout}, "LANDING", view.ErrInvalidTransition.Error()},
	}
	for _, st := range steps {
		reply, ok := c.Handle(st.msg)
		require.True(t, ok, st.name)
		assert.Equal(t, EventView, reply.Event, st.name)
		got := decode[ViewPayload](t, reply)
		assert.Equal(t, st.wantScreen, got.Screen, st.name)
		assert.Equal(t, st.wantError, got.Error, st.name)
	}
}

func TestClient_UnknownEvent(t *testing.T) {
	_, _, c := newTestClient(t)
	_, ok := c.Handle(WSMessage{Event: "chat_message"})
	assert.False(t, ok)
	_, ok = c.Handle(WSMessage{Event: EventHashChange, Data: json.RawMessage(`"oops"`)})
	assert.False(t, ok)
}

func TestClient_HashChangeRelaysToOtherPages(t *testing.T) {
	hub, s, c := newTestClient(t)
	_, err := s.Create(context.Background(), models.NewSessionTemplate(s.Active()))
	require.NoError(t, err)
	<-c.send

	other := NewClient(hub, s, nil, nil, nil)
	hub.Register(other)

	_, ok := c.Handle(message(t, EventHashChange, FragmentPayload{Fragment: "#/webinar/1"}))
	require.True(t, ok)

	select {
	case msg := <-other.send:
		assert.Equal(t, EventNavigate, msg.Event)
		assert.Equal(t, "#/webinar/1", decode[FragmentPayload](t, msg).Fragment)
	default:
		t.Fatal("other page was not told about the new active webinar")
	}
	select {
	case msg := <-c.send:
		t.Fatalf("sender got an echo: %s", msg.Event)
	default:
	}

	_, ok = c.Handle(message(t, EventHashChange, FragmentPayload{Fragment: "#/webinar/9"}))
	require.True(t, ok)
	select {
	case msg := <-other.send:
		t.Fatalf("unknown fragment relayed: %s", msg.Event)
	default:
	}
}
