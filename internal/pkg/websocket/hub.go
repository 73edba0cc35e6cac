package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// storeTimeout bounds each write-through to the live note store.
const storeTimeout = 5 * time.Second

// Event names exchanged with editor clients.
const (
	// Inbound
	EventJoinNote       = "join_note"
	EventLeaveNote      = "leave_note"
	EventContentChange  = "content_change"
	EventCursorPosition = "cursor_position"

	// Outbound
	EventConnected      = "connected"
	EventUserJoined     = "user_joined"
	EventUserLeft       = "user_left"
	EventContentUpdated = "content_updated"
	EventCursorMoved    = "cursor_moved"
)

// Event is the envelope exchanged over the live note socket. Fields are
// populated per event type; Position passes through untouched so editors
// can carry whatever cursor shape they like.
type Event struct {
	Type        string          `json:"type"`
	NoteSlug    string          `json:"room,omitempty"`
	UserID      string          `json:"user_id,omitempty"`
	Content     string          `json:"content,omitempty"`
	Position    json.RawMessage `json:"position,omitempty"`
	ActiveUsers int             `json:"active_users,omitempty"`
}

// LiveNoteStore is the persistence the hub writes through to. The live
// note repository satisfies it.
type LiveNoteStore interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	SetContent(ctx context.Context, slug, content string) error
	SetActiveEditors(ctx context.Context, slug string, count int) error
}

// clientEvent pairs an inbound event with the client that sent it.
type clientEvent struct {
	client *Client
	event  *Event
}

// Hub maintains the live note editing rooms and routes events between the
// clients in each room. All room mutations happen on the Run goroutine;
// the mutex only covers reads from outside it.
type Hub struct {
	store LiveNoteStore

	// Connected clients per note slug
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	inbound    chan *clientEvent

	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(store LiveNoteStore, logger zerolog.Logger) *Hub {
	return &Hub{
		store:      store,
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan *clientEvent, 64),
		logger:     logger,
	}
}

// Run starts the hub loop, handling registrations, disconnects and editor
// events until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.logger.Info().
				Str("userID", client.userID).
				Str("addr", client.conn.RemoteAddr().String()).
				Msg("Editor connected")

		case client := <-h.unregister:
			h.disconnectClient(client)

		case ce := <-h.inbound:
			h.dispatch(ce.client, ce.event)

		case <-ctx.Done():
			return
		}
	}
}

// dispatch routes one inbound event
func (h *Hub) dispatch(client *Client, event *Event) {
	switch event.Type {
	case EventJoinNote:
		h.joinRoom(client, event.NoteSlug)
	case EventLeaveNote:
		h.leaveRoom(client, event.NoteSlug)
	case EventContentChange:
		h.contentChange(client, event)
	case EventCursorPosition:
		h.cursorPosition(client, event)
	default:
		h.logger.Debug().
			Str("type", event.Type).
			Str("userID", client.userID).
			Msg("Unknown live note event")
	}
}

// joinRoom adds the client to a note's room, persists the new editor
// count and tells the whole room who arrived. Rooms whose slug has no
// stored note still track membership and broadcast; only the
// write-through is skipped.
func (h *Hub) joinRoom(client *Client, slug string) {
	if slug == "" || client.rooms[slug] {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	persist := true
	exists, err := h.store.SlugExists(ctx, slug)
	if err != nil {
		h.logger.Error().Err(err).Str("noteSlug", slug).Msg("Failed to check live note")
		persist = false
	} else if !exists {
		h.logger.Debug().Str("noteSlug", slug).Msg("Room has no stored note, tracking membership only")
		persist = false
	}

	h.mu.Lock()
	if _, ok := h.rooms[slug]; !ok {
		h.rooms[slug] = make(map[*Client]bool)
	}
	h.rooms[slug][client] = true
	count := len(h.rooms[slug])
	h.mu.Unlock()

	client.rooms[slug] = true

	if persist {
		h.persistEditorCount(slug, count)
	}
	h.broadcast(slug, nil, &Event{
		Type:        EventUserJoined,
		NoteSlug:    slug,
		UserID:      client.userID,
		ActiveUsers: count,
	})

	h.logger.Info().
		Str("noteSlug", slug).
		Str("userID", client.userID).
		Int("activeUsers", count).
		Msg("Editor joined live note")
}

// leaveRoom removes the client from a note's room, persists the new
// editor count and tells the remaining editors. Empty rooms are dropped.
func (h *Hub) leaveRoom(client *Client, slug string) {
	if !client.rooms[slug] {
		return
	}
	delete(client.rooms, slug)

	h.mu.Lock()
	room, ok := h.rooms[slug]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(room, client)
	count := len(room)
	if count == 0 {
		delete(h.rooms, slug)
	}
	h.mu.Unlock()

	h.persistEditorCount(slug, count)
	if count > 0 {
		h.broadcast(slug, client, &Event{
			Type:        EventUserLeft,
			NoteSlug:    slug,
			UserID:      client.userID,
			ActiveUsers: count,
		})
	}

	h.logger.Info().
		Str("noteSlug", slug).
		Str("userID", client.userID).
		Int("activeUsers", count).
		Msg("Editor left live note")
}

// disconnectClient treats a dropped connection as leaving every room the
// client was editing in.
func (h *Hub) disconnectClient(client *Client) {
	for slug := range client.rooms {
		h.leaveRoom(client, slug)
	}
	close(client.send)

	h.logger.Info().
		Str("userID", client.userID).
		Msg("Editor disconnected")
}

// contentChange persists the new content, then shares it with every other
// editor in the room. Content from clients outside the room is ignored.
// A slug with no stored note matches zero rows, so such rooms relay
// without persisting anything.
func (h *Hub) contentChange(client *Client, event *Event) {
	slug := event.NoteSlug
	if !client.rooms[slug] {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := h.store.SetContent(ctx, slug, event.Content); err != nil {
		h.logger.Error().Err(err).Str("noteSlug", slug).Msg("Failed to persist live note content")
		return
	}

	h.broadcast(slug, client, &Event{
		Type:     EventContentUpdated,
		NoteSlug: slug,
		UserID:   client.userID,
		Content:  event.Content,
	})
}

// cursorPosition relays a cursor update to the other editors in the room.
// Events without a position are dropped.
func (h *Hub) cursorPosition(client *Client, event *Event) {
	slug := event.NoteSlug
	if !client.rooms[slug] || len(event.Position) == 0 {
		return
	}

	h.broadcast(slug, client, &Event{
		Type:     EventCursorMoved,
		NoteSlug: slug,
		UserID:   client.userID,
		Position: event.Position,
	})
}

// broadcast sends an event to every client in the room; exclude skips the
// sender. Clients with a full send buffer drop the event.
func (h *Hub) broadcast(slug string, exclude *Client, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("noteSlug", slug).Msg("Failed to marshal event for broadcast")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[slug] {
		if client == exclude {
			continue
		}
		select {
		case client.send <- data:
		default:
			h.logger.Warn().
				Str("noteSlug", slug).
				Str("userID", client.userID).
				Msg("Dropped event for slow editor")
		}
	}
}

// persistEditorCount writes the room size through to the store
func (h *Hub) persistEditorCount(slug string, count int) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := h.store.SetActiveEditors(ctx, slug, count); err != nil {
		h.logger.Error().Err(err).Str("noteSlug", slug).Msg("Failed to persist editor count")
	}
}

// RoomCount returns the number of editors currently in a note's room
func (h *Hub) RoomCount(slug string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[slug])
}
