package staging

import (
	"sync"
	"time"

	"agentdeck/internal/logging"
)

// DraftAgent is the in-progress agent being assembled.
type DraftAgent struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

// Snapshot is the durable form of a session: the draft agent plus the ordered
// item list. Structure matters, bytes don't.
type Snapshot struct {
	Draft   DraftAgent `json:"draft"`
	Items   []Item     `json:"-"`
	SavedAt time.Time  `json:"saved_at"`
}

// SaveFunc persists a snapshot. Injected so the session itself stays free of
// I/O and tests can observe every write-through.
type SaveFunc func(Snapshot) error

// Session is the pre-commit working set: one draft agent and an ordered
// collection of staged items. Every mutation is written through to the
// injected saver; a failed save is logged and otherwise ignored, since
// persistence here is a convenience, not a correctness contract.
type Session struct {
	mu       sync.Mutex
	draft    DraftAgent
	items    []Item
	defaults DraftAgent
	save     SaveFunc
}

// NewSession creates an empty session with the given draft defaults.
// save may be nil for purely in-memory sessions.
func NewSession(defaults DraftAgent, save SaveFunc) *Session {
	return &Session{
		draft:    defaults,
		defaults: defaults,
		save:     save,
	}
}

// Restore builds a session from a previously saved snapshot. The snapshot's
// draft is taken verbatim: a blanked name was blanked on purpose and stays
// blank until commit-time validation rejects it. Callers with no snapshot at
// all use NewSession instead.
func Restore(snap Snapshot, defaults DraftAgent, save SaveFunc) *Session {
	s := NewSession(defaults, save)
	s.draft = snap.Draft
	s.items = append(s.items, snap.Items...)
	return s
}

// SetAgentName replaces the draft agent's name. No validation happens at
// write time; validation is deferred to commit.
func (s *Session) SetAgentName(name string) {
	s.mu.Lock()
	s.draft.Name = name
	s.mu.Unlock()
	s.writeThrough()
}

// SetAgentModel replaces the draft agent's model.
func (s *Session) SetAgentModel(model string) {
	s.mu.Lock()
	s.draft.Model = model
	s.mu.Unlock()
	s.writeThrough()
}

// Draft returns the current draft agent.
func (s *Session) Draft() DraftAgent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Add appends an item to the end of the collection. The caller is responsible
// for a collision-resistant id; the session applies no dedup.
func (s *Session) Add(item Item) {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	s.writeThrough()
}

// Remove deletes the item with the given id. Removing an absent id is a no-op,
// not an error.
func (s *Session) Remove(id string) {
	s.mu.Lock()
	for i, item := range s.items {
		if item.ID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.writeThrough()
}

// RemoveMany deletes every item whose id is in ids, preserving the order of
// the survivors.
func (s *Session) RemoveMany(ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if !drop[item.ID()] {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()
	s.writeThrough()
}

// ClearAll resets the draft agent to its defaults and empties the items.
// Called once per successful commit, or on explicit abandon.
func (s *Session) ClearAll() {
	s.mu.Lock()
	s.draft = s.defaults
	s.items = nil
	s.mu.Unlock()
	s.writeThrough()
}

// ReplaceFrom swaps the session's contents for those of snap, without a
// write-through. Used when the snapshot on disk changed under us and the
// in-memory view needs to follow it. The draft is taken verbatim so an
// explicitly blanked name survives the reload.
func (s *Session) ReplaceFrom(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = snap.Draft
	s.items = append([]Item(nil), snap.Items...)
}

// Items returns the staged items in insertion order.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalCount returns the number of staged items.
func (s *Session) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// TotalBytes returns the combined size of staged file items.
func (s *Session) TotalBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, item := range s.items {
		if f, ok := item.(*FileItem); ok {
			total += f.SizeBytes
		}
	}
	return total
}

// Snapshot returns a copy of the session suitable for persistence.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return Snapshot{
		Draft:   s.draft,
		Items:   items,
		SavedAt: time.Now(),
	}
}

func (s *Session) writeThrough() {
	if s.save == nil {
		return
	}
	if err := s.save(s.Snapshot()); err != nil {
		logging.Warn("failed to persist staging session", "error", err)
	}
}
