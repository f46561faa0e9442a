// Package collections is the collection service: validated mutations over
// the Store, read-only queries, and change notifications through the Bus.
package collections

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"collectio/internal/application"
	"collectio/internal/application/notify"
	"collectio/internal/application/store"
	"collectio/internal/domain"
	"collectio/internal/ports"
)

// Service implements ports.Collections.
//
// Every mutation re-reads the persisted list (load-fresh) before changing it,
// so a window only ever overwrites the snapshot it just read. Mutations are
// expected to be issued one at a time per window.
type Service struct {
	store  *store.Store
	bus    *notify.Bus
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	mu        sync.Mutex
	lastNotes domain.NoteSet
}

// Ensure Service implements ports.Collections
var _ ports.Collections = (*Service)(nil)

// Option configures a Service
type Option func(*Service)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides uuid generation
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService wires a Store and a Bus. The bus is expected to load through
// the same store.
func NewService(st *store.Store, bus *notify.Bus, opts ...Option) *Service {
	s := &Service{
		store:  st,
		bus:    bus,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("collections")
	return s
}

// New builds the Store, Bus and Service for one window in one call
func New(blobs ports.BlobStore, logger *zap.Logger, busOpts []notify.Option, opts ...Option) *Service {
	st := store.New(blobs, logger)
	load := func(ctx context.Context, location string) ([]domain.Collection, error) {
		return st.Load(ctx, location, false)
	}
	bus := notify.New(load, append([]notify.Option{notify.WithLogger(logger)}, busOpts...)...)
	return NewService(st, bus, append([]Option{WithLogger(logger)}, opts...)...)
}

// --- queries ---

// GetAllCollections returns every collection, default first. On a read
// error the default-only fallback list is returned alongside the error.
func (s *Service) GetAllCollections(ctx context.Context, location string) ([]domain.Collection, error) {
	return s.store.Load(ctx, location, false)
}

// GetCollection returns the collection with id, or nil if there is none
func (s *Service) GetCollection(ctx context.Context, location, id string) (*domain.Collection, error) {
	all, err := s.store.Load(ctx, location, false)
	if err != nil {
		return nil, err
	}
	if i := domain.FindIndex(all, id); i >= 0 {
		return &all[i], nil
	}
	return nil, nil
}

// GetCollectionsForNote returns the user collections noteID belongs to
func (s *Service) GetCollectionsForNote(ctx context.Context, location, noteID string) ([]domain.Collection, error) {
	all, err := s.store.Load(ctx, location, false)
	if err != nil {
		return nil, err
	}
	var out []domain.Collection
	for _, c := range all {
		if !c.IsDefault && c.HasNote(noteID) {
			out = append(out, c)
		}
	}
	return out, nil
}

// GetCollectionsWithCounts returns every collection with its live note count
func (s *Service) GetCollectionsWithCounts(ctx context.Context, location string, notes domain.NoteSet) ([]domain.CollectionWithCount, error) {
	s.ObserveNotes(notes)
	all, err := s.store.Load(ctx, location, false)
	return domain.WithCounts(all, notes), err
}

// IsProtected reports whether id can never be changed or deleted
func (s *Service) IsProtected(id string) bool {
	return domain.IsDefaultID(id)
}

// --- mutations ---

// Create adds a new collection at the end of the display order
func (s *Service) Create(ctx context.Context, location string, input domain.CreateInput) (*domain.Collection, error) {
	if err := application.ValidateRequired("name", input.Name); err != nil {
		return nil, err
	}

	all, err := s.store.Load(ctx, location, true)
	if err != nil {
		return nil, err
	}

	now := s.now()
	created := domain.Collection{
		ID:        s.newID(),
		Name:      strings.TrimSpace(input.Name),
		Icon:      input.Icon,
		Color:     input.Color,
		NoteIDs:   []string{},
		SortOrder: domain.NextSortOrder(all),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Save(ctx, location, append(all, created)); err != nil {
		return nil, err
	}

	s.logger.Info("collection created", zap.String("id", created.ID), zap.String("name", created.Name))
	s.notify(ctx, location, s.observed(), true)
	return &created, nil
}

// Update applies the fields present in patch. A missing id yields nil, nil.
func (s *Service) Update(ctx context.Context, location, id string, patch domain.Patch) (*domain.Collection, error) {
	if err := application.ValidateMutable(id, "update"); err != nil {
		return nil, err
	}
	if err := application.ValidatePatch(patch); err != nil {
		return nil, err
	}

	all, err := s.store.Load(ctx, location, true)
	if err != nil {
		return nil, err
	}
	i := domain.FindIndex(all, id)
	if i < 0 {
		return nil, nil
	}

	c := &all[i]
	if patch.Name != nil {
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Icon != nil {
		c.Icon = *patch.Icon
	}
	if patch.Color != nil {
		c.Color = *patch.Color
	}
	c.UpdatedAt = s.now()

	if err := s.store.Save(ctx, location, all); err != nil {
		return nil, err
	}

	updated := c.Clone()
	s.notify(ctx, location, s.observed(), true)
	return &updated, nil
}

// Delete removes the collection. Member notes are not touched.
// It returns false when id does not exist, and false with a
// *application.ProtectedCollectionError for the default collection.
func (s *Service) Delete(ctx context.Context, location, id string) (bool, error) {
	if err := application.ValidateMutable(id, "delete"); err != nil {
		return false, err
	}

	all, err := s.store.Load(ctx, location, true)
	if err != nil {
		return false, err
	}
	i := domain.FindIndex(all, id)
	if i < 0 {
		return false, nil
	}

	removed := all[i]
	all = append(all[:i], all[i+1:]...)
	if err := s.store.Save(ctx, location, all); err != nil {
		return false, err
	}

	s.logger.Info("collection deleted", zap.String("id", id), zap.Int("members", len(removed.NoteIDs)))
	s.notify(ctx, location, s.observed(), true)
	return true, nil
}

// AddNoteToCollection makes noteID a member of the collection. Adding an
// existing member changes nothing and does not rewrite the file.
func (s *Service) AddNoteToCollection(ctx context.Context, location, collectionID, noteID string, notes domain.NoteSet) (*domain.CollectionWithCount, error) {
	return s.changeMembership(ctx, location, collectionID, noteID, notes, "add note to", (*domain.Collection).AddNote)
}

// RemoveNoteFromCollection drops noteID from the collection; a non-member is a no-op
func (s *Service) RemoveNoteFromCollection(ctx context.Context, location, collectionID, noteID string, notes domain.NoteSet) (*domain.CollectionWithCount, error) {
	return s.changeMembership(ctx, location, collectionID, noteID, notes, "remove note from", (*domain.Collection).RemoveNote)
}

func (s *Service) changeMembership(
	ctx context.Context,
	location, collectionID, noteID string,
	notes domain.NoteSet,
	operation string,
	apply func(*domain.Collection, string) bool,
) (*domain.CollectionWithCount, error) {
	if err := application.ValidateMutable(collectionID, operation); err != nil {
		return nil, err
	}
	if err := application.ValidateRequired("noteID", noteID); err != nil {
		return nil, err
	}
	s.ObserveNotes(notes)

	all, err := s.store.Load(ctx, location, true)
	if err != nil {
		return nil, err
	}
	i := domain.FindIndex(all, collectionID)
	if i < 0 {
		return nil, nil
	}

	c := &all[i]
	if apply(c, noteID) {
		c.UpdatedAt = s.now()
		if err := s.store.Save(ctx, location, all); err != nil {
			return nil, err
		}
	}

	result := domain.CollectionWithCount{Collection: c.Clone(), NoteCount: domain.NoteCount(*c, notes)}
	s.notify(ctx, location, notes, true)
	return &result, nil
}

// --- note lifecycle hooks ---

// HandleNoteCreated refreshes counts after a note was created. New notes
// belong to no user collection, so nothing is persisted.
func (s *Service) HandleNoteCreated(ctx context.Context, location, noteID string, notes domain.NoteSet) error {
	s.ObserveNotes(notes)
	s.notify(ctx, location, notes, false)
	return nil
}

// HandleNoteDeleted prunes noteID from every collection in a single save
func (s *Service) HandleNoteDeleted(ctx context.Context, location, noteID string, notes domain.NoteSet) error {
	return s.HandleNotesDeleted(ctx, location, []string{noteID}, notes)
}

// HandleNotesDeleted prunes every id in noteIDs with one save
func (s *Service) HandleNotesDeleted(ctx context.Context, location string, noteIDs []string, notes domain.NoteSet) error {
	s.ObserveNotes(notes)

	deleted := domain.NewNoteSet(noteIDs...)
	if _, err := s.retain(ctx, location, func(id string) bool { return !deleted.Contains(id) }); err != nil {
		return err
	}

	s.notify(ctx, location, notes, false)
	return nil
}

// PruneStale removes every member that is not in notes and returns how many
// membership entries were dropped. Use it at startup to catch deletions that
// happened while no window was running.
func (s *Service) PruneStale(ctx context.Context, location string, notes domain.NoteSet) (int, error) {
	s.ObserveNotes(notes)

	removed, err := s.retain(ctx, location, notes.Contains)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("pruned stale memberships", zap.Int("removed", removed))
		s.notify(ctx, location, notes, false)
	}
	return removed, nil
}

func (s *Service) retain(ctx context.Context, location string, keep func(string) bool) (int, error) {
	all, err := s.store.Load(ctx, location, true)
	if err != nil {
		return 0, err
	}

	removed := 0
	now := s.now()
	for i := range all {
		if n := all[i].RetainNotes(keep); n > 0 {
			all[i].UpdatedAt = now
			removed += n
		}
	}
	if removed == 0 {
		return 0, nil
	}

	if err := s.store.Save(ctx, location, all); err != nil {
		return 0, err
	}
	return removed, nil
}

// --- subscriptions ---

// Subscribe registers fn for change notifications
func (s *Service) Subscribe(fn ports.Subscriber) func() {
	return s.bus.Subscribe(fn)
}

// ObserveNotes records the latest note set. Notifications from operations
// that take no note set (Create, Update, Delete) are computed against it.
func (s *Service) ObserveNotes(notes domain.NoteSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastNotes = notes
}

// Invalidate drops the Store cache, e.g. after another window saved
func (s *Service) Invalidate() {
	s.store.Invalidate()
}

// Cleanup drops every subscriber and cancels a pending notification
func (s *Service) Cleanup() {
	s.bus.Cleanup()
}

// Path returns the concrete file the collections for location live in
func (s *Service) Path(location string) string {
	return s.store.Path(location)
}

func (s *Service) observed() domain.NoteSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastNotes
}

// notify never fails the mutation that triggered it: the change is already
// persisted, so a failed delivery is only logged.
func (s *Service) notify(ctx context.Context, location string, notes domain.NoteSet, immediate bool) {
	snap := notify.Snapshot{Location: location, Notes: notes}
	if err := s.bus.Notify(ctx, snap, immediate); err != nil {
		s.logger.Warn("change notification failed", zap.Error(err))
	}
}
