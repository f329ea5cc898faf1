package geom

import "sync"

// ShapesStorage is the per-layout mutable registry of engravers-in-progress
// and pending (not-yet-attached) shapes described in spec §5. It is
// exclusively owned by the score layouter; nothing else should hold one.
//
// Engraver lifetimes are tracked by ShapeID-free handles (arbitrary
// comparable keys, such as a relation pointer or a lyric key) so that a
// three-phase relation engraver (start/continue/finish, spec §4.3) can be
// looked up again on the next staff-object without the creator needing to
// thread a pointer through the cursor loop.
type ShapesStorage struct {
	mu        sync.Mutex
	pending   map[ShapeID]*Shape
	engravers map[interface{}]interface{}
}

// NewShapesStorage returns an empty storage.
func NewShapesStorage() *ShapesStorage {
	return &ShapesStorage{
		pending:   make(map[ShapeID]*Shape),
		engravers: make(map[interface{}]interface{}),
	}
}

// Hold registers a freshly created shape as pending (owned by storage,
// not yet attached to a box).
func (s *ShapesStorage) Hold(shape *Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[shape.ID] = shape
}

// Take removes and returns a pending shape so it can be attached to a box.
// Returns nil if the shape is not (or no longer) pending.
func (s *ShapesStorage) Take(id ShapeID) *Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh := s.pending[id]
	delete(s.pending, id)
	return sh
}

// StartEngraver records an in-progress relation engraver under key (an
// identity for the relation object, or an (instr, number, voice) tag for
// lyrics per spec §4.3).
func (s *ShapesStorage) StartEngraver(key interface{}, engraver interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engravers[key] = engraver
}

// Engraver looks up an in-progress relation engraver by key. The second
// return value is false if start was never called for key — the "finish
// called without start" contract failure.
func (s *ShapesStorage) Engraver(key interface{}) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.engravers[key]
	return e, ok
}

// FinishEngraver releases an in-progress engraver once its finish phase
// has run, per spec §5's memory discipline ("every engraver the layout
// allocates must be released before returning").
func (s *ShapesStorage) FinishEngraver(key interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.engravers, key)
}

// ReleaseAll drops every pending shape and live engraver. Called on
// premature termination (spec §5) so nothing not-yet-committed outlives
// the layout attempt that created it.
func (s *ShapesStorage) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = make(map[ShapeID]*Shape)
	s.engravers = make(map[interface{}]interface{})
}

// PendingCount reports how many shapes are still unattached. Used by tests
// to assert that a completed layout leaves nothing dangling.
func (s *ShapesStorage) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// LiveEngraverCount reports how many relation engravers are still open.
func (s *ShapesStorage) LiveEngraverCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.engravers)
}
