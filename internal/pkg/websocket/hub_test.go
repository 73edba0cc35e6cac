package websocket

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records write-throughs in memory.
type fakeStore struct {
	notes   map[string]bool
	content map[string]string
	editors map[string]int
	failSet bool
}

func newFakeStore(slugs ...string) *fakeStore {
	s := &fakeStore{
		notes:   make(map[string]bool),
		content: make(map[string]string),
		editors: make(map[string]int),
	}
	for _, slug := range slugs {
		s.notes[slug] = true
	}
	return s
}

func (s *fakeStore) SlugExists(_ context.Context, slug string) (bool, error) {
	return s.notes[slug], nil
}

// SetContent mirrors the repository UPDATE: a slug with no stored note
// matches zero rows and writes nothing.
func (s *fakeStore) SetContent(_ context.Context, slug, content string) error {
	if s.failSet {
		return assert.AnError
	}
	if s.notes[slug] {
		s.content[slug] = content
	}
	return nil
}

func (s *fakeStore) SetActiveEditors(_ context.Context, slug string, count int) error {
	if s.notes[slug] {
		s.editors[slug] = count
	}
	return nil
}

func newTestHub(store LiveNoteStore) *Hub {
	return NewHub(store, zerolog.Nop())
}

func newTestClient(h *Hub, userID string) *Client {
	return &Client{
		hub:    h,
		send:   make(chan []byte, 16),
		userID: userID,
		rooms:  make(map[string]bool),
		logger: zerolog.Nop(),
	}
}

// drainEvents decodes everything buffered on the client's send channel.
func drainEvents(t *testing.T, c *Client) []Event {
	t.Helper()
	var events []Event
	for {
		select {
		case data := <-c.send:
			var e Event
			require.NoError(t, json.Unmarshal(data, &e))
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestJoinRoomBroadcastsPresence(t *testing.T) {
	store := newFakeStore("calc-notes")
	h := newTestHub(store)
	alice := newTestClient(h, "alice")
	bob := newTestClient(h, "bob")

	h.joinRoom(alice, "calc-notes")
	h.joinRoom(bob, "calc-notes")

	assert.Equal(t, 2, h.RoomCount("calc-notes"))
	assert.Equal(t, 2, store.editors["calc-notes"])

	// Alice sees her own join and bob's; both carry the live count.
	aliceEvents := drainEvents(t, alice)
	require.Len(t, aliceEvents, 2)
	assert.Equal(t, EventUserJoined, aliceEvents[0].Type)
	assert.Equal(t, "alice", aliceEvents[0].UserID)
	assert.Equal(t, 1, aliceEvents[0].ActiveUsers)
	assert.Equal(t, "bob", aliceEvents[1].UserID)
	assert.Equal(t, 2, aliceEvents[1].ActiveUsers)

	bobEvents := drainEvents(t, bob)
	require.Len(t, bobEvents, 1)
	assert.Equal(t, EventUserJoined, bobEvents[0].Type)
	assert.Equal(t, "bob", bobEvents[0].UserID)
}

func TestUnknownRoomTracksMembershipWithoutPersistence(t *testing.T) {
	store := newFakeStore()
	h := newTestHub(store)
	alice := newTestClient(h, "alice")
	bob := newTestClient(h, "bob")

	h.joinRoom(alice, "ghost-note")
	h.joinRoom(bob, "ghost-note")

	assert.Equal(t, 2, h.RoomCount("ghost-note"))
	assert.Empty(t, store.editors)

	aliceEvents := drainEvents(t, alice)
	require.Len(t, aliceEvents, 2)
	assert.Equal(t, EventUserJoined, aliceEvents[0].Type)
	assert.Equal(t, 2, aliceEvents[1].ActiveUsers)
	drainEvents(t, bob)

	// Edits still relay to the room even though nothing backs them.
	h.contentChange(alice, &Event{Type: EventContentChange, NoteSlug: "ghost-note", Content: "ephemeral"})

	bobEvents := drainEvents(t, bob)
	require.Len(t, bobEvents, 1)
	assert.Equal(t, EventContentUpdated, bobEvents[0].Type)
	assert.Equal(t, "ephemeral", bobEvents[0].Content)
	assert.Empty(t, store.content)

	h.leaveRoom(bob, "ghost-note")
	aliceEvents = drainEvents(t, alice)
	require.Len(t, aliceEvents, 1)
	assert.Equal(t, EventUserLeft, aliceEvents[0].Type)
	assert.Empty(t, store.editors)
}

func TestJoinRoomTwiceIsNoop(t *testing.T) {
	store := newFakeStore("calc-notes")
	h := newTestHub(store)
	alice := newTestClient(h, "alice")

	h.joinRoom(alice, "calc-notes")
	h.joinRoom(alice, "calc-notes")

	assert.Equal(t, 1, h.RoomCount("calc-notes"))
	assert.Len(t, drainEvents(t, alice), 1)
}

func TestContentChangePersistsAndExcludesSender(t *testing.T) {
	store := newFakeStore("calc-notes")
	h := newTestHub(store)
	alice := newTestClient(h, "alice")
	bob := newTestClient(h, "bob")
	h.joinRoom(alice, "calc-notes")
	h.joinRoom(bob, "calc-notes")
	drainEvents(t, alice)
	drainEvents(t, bob)

	h.contentChange(alice, &Event{Type: EventContentChange, NoteSlug: "calc-notes", Content: "<p>derivatives</p>"})

	assert.Equal(t, "<p>derivatives</p>", store.content["calc-notes"])

	bobEvents := drainEvents(t, bob)
	require.Len(t, bobEvents, 1)
	assert.Equal(t, EventContentUpdated, bobEvents[0].Type)
	assert.Equal(t, "alice", bobEvents[0].UserID)
	assert.Equal(t, "<p>derivatives</p>", bobEvents[0].Content)

	assert.Empty(t, drainEvents(t, alice))
}

func TestContentChangeSkipsBroadcastOnStoreFailure(t *testing.T) {
	store := newFakeStore("calc-notes")
	store.failSet = true
	h := newTestHub(store)
	alice := newTestClient(h, "alice")
	bob := newTestClient(h, "bob")
	h.joinRoom(alice, "calc-notes")
	h.joinRoom(bob, "calc-notes")
	drainEvents(t, bob)

	h.contentChange(alice, &Event{Type: EventContentChange, NoteSlug: "calc-notes", Content: "lost"})

	assert.Empty(t, drainEvents(t, bob))
}

func TestContentChangeFromOutsiderIgnored(t *testing.T) {
	store := newFakeStore("calc-notes")
	h := newTestHub(store)
	alice := newTestClient(h, "alice")
	outsider := newTestClient(h, "mallory")
	h.joinRoom(alice, "calc-notes")
	drainEvents(t, alice)

	h.contentChange(outsider, &Event{Type: EventContentChange, NoteSlug: "calc-notes", Content: "spam"})

	assert.Empty(t, store.content)
	assert.Empty(t, drainEvents(t, alice))
}

func TestCursorPositionRelayedWithoutPersistence(t *testing.T) {
	store := newFakeStore("calc-notes")
	h := newTestHub(store)
	alice := newTestClient(h, "alice")
	bob := newTestClient(h, "bob")
	h.joinRoom(alice, "calc-notes")
	h.joinRoom(bob, "calc-notes")
	drainEvents(t, alice)
	drainEvents(t, bob)

	h.cursorPosition(alice, &Event{
		Type:     EventCursorPosition,
		NoteSlug: "calc-notes",
		Position: json.RawMessage(`{"line":3,"ch":14}`),
	})

	bobEvents := drainEvents(t, bob)
	require.Len(t, bobEvents, 1)
	assert.Equal(t, EventCursorMoved, bobEvents[0].Type)
	assert.Equal(t, "alice", bobEvents[0].UserID)
	assert.JSONEq(t, `{"line":3,"ch":14}`, string(bobEvents[0].Position))

	assert.Empty(t, store.content)
	assert.Empty(t, drainEvents(t, alice))
}

func TestCursorPositionWithoutPositionDropped(t *testing.T) {
	store := newFakeStore("calc-notes")
	h := newTestHub(store)
	alice := newTestClient(h, "alice")
	bob := newTestClient(h, "bob")
	h.joinRoom(alice, "calc-notes")
	h.joinRoom(bob, "calc-notes")
	drainEvents(t, bob)

	h.cursorPosition(alice, &Event{Type: EventCursorPosition, NoteSlug: "calc-notes"})

	assert.Empty(t, drainEvents(t, bob))
}

func TestEventRoomField(t *testing.T) {
	var e Event
	require.NoError(t, json.Unmarshal([]byte(`{"type":"join_note","room":"calc-notes"}`), &e))
	assert.Equal(t, EventJoinNote, e.Type)
	assert.Equal(t, "calc-notes", e.NoteSlug)

	data, err := json.Marshal(&Event{Type: EventUserJoined, NoteSlug: "calc-notes", UserID: "alice", ActiveUsers: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"user_joined","room":"calc-notes","user_id":"alice","active_users":1}`, string(data))
}

func TestLeaveRoomAnnouncesAndCleansUp(t *testing.T) {
	store := newFakeStore("calc-notes")
	h := newTestHub(store)
	alice := newTestClient(h, "alice")
	bob := newTestClient(h, "bob")
	h.joinRoom(alice, "calc-notes")
	h.joinRoom(bob, "calc-notes")
	drainEvents(t, alice)
	drainEvents(t, bob)

	h.leaveRoom(bob, "calc-notes")

	assert.Equal(t, 1, h.RoomCount("calc-notes"))
	assert.Equal(t, 1, store.editors["calc-notes"])

	aliceEvents := drainEvents(t, alice)
	require.Len(t, aliceEvents, 1)
	assert.Equal(t, EventUserLeft, aliceEvents[0].Type)
	assert.Equal(t, "bob", aliceEvents[0].UserID)
	assert.Equal(t, 1, aliceEvents[0].ActiveUsers)

	// Last one out removes the room.
	h.leaveRoom(alice, "calc-notes")
	assert.Equal(t, 0, h.RoomCount("calc-notes"))
	assert.Equal(t, 0, store.editors["calc-notes"])
	assert.NotContains(t, h.rooms, "calc-notes")
}

func TestDisconnectLeavesEveryRoom(t *testing.T) {
	store := newFakeStore("calc-notes", "algebra-notes")
	h := newTestHub(store)
	alice := newTestClient(h, "alice")
	bob := newTestClient(h, "bob")
	h.joinRoom(alice, "calc-notes")
	h.joinRoom(alice, "algebra-notes")
	h.joinRoom(bob, "calc-notes")
	drainEvents(t, alice)
	drainEvents(t, bob)

	h.disconnectClient(alice)

	assert.Equal(t, 1, h.RoomCount("calc-notes"))
	assert.Equal(t, 0, h.RoomCount("algebra-notes"))
	assert.Equal(t, 0, store.editors["algebra-notes"])

	bobEvents := drainEvents(t, bob)
	require.Len(t, bobEvents, 1)
	assert.Equal(t, EventUserLeft, bobEvents[0].Type)
	assert.Equal(t, "alice", bobEvents[0].UserID)

	// Send channel is closed so the write pump shuts down.
	_, open := <-alice.send
	assert.False(t, open)
}
