// Package board owns the live board document. Every user command goes
// through a Session, which mutates the document, saves it and tells
// subscribers to redraw.
package board

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskflow/internal/filter"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

// ExportFileName is the suggested name for exported boards.
const ExportFileName = "taskflow-board.json"

// Store persists the document. Save failures are logged and ignored.
type Store interface {
	Load(ctx context.Context) storage.LoadResult
	Save(ctx context.Context, b *model.Board) error
}

// Confirmer gates destructive commands.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm accepts every prompt.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

func (d Direction) IsValid() bool { return d == Left || d == Right }

type ChangeKind string

const (
	ChangeSeeded   ChangeKind = "seeded"
	ChangeAdded    ChangeKind = "added"
	ChangeEdited   ChangeKind = "edited"
	ChangeMoved    ChangeKind = "moved"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeEditing  ChangeKind = "editing"
	ChangeDropped  ChangeKind = "dropped"
	ChangeImported ChangeKind = "imported"
	ChangeFiltered ChangeKind = "filtered"
)

// Change is delivered to subscribers after every successful command.
type Change struct {
	Kind   ChangeKind
	CardID string
}

// CardInput carries user-entered card fields. Labels is raw comma
// separated text; a non-nil LabelList replaces it with labels that are
// already split, so a label containing a comma survives an edit.
type CardInput struct {
	Title     string
	Desc      string
	Labels    string
	LabelList []string
	Due       string
}

func (in CardInput) labels() []string {
	if in.LabelList != nil {
		return model.CleanLabels(in.LabelList)
	}
	return model.SplitLabels(in.Labels)
}

// validateCard maps model validation failures onto the session errors.
func validateCard(card model.Card) error {
	err := card.Validate()
	switch {
	case errors.Is(err, model.ErrNoTitle):
		return ErrEmptyTitle
	case errors.Is(err, model.ErrInvalidDue):
		return ErrInvalidDue
	}
	return err
}

type Options struct {
	IDs       IDGenerator
	Clock     model.Clock
	Confirmer Confirmer
	Logger    *log.Logger
}

type Session struct {
	doc       *model.Board
	criteria  filter.Criteria
	dragging  string
	store     Store
	ids       IDGenerator
	clock     model.Clock
	confirmer Confirmer
	logger    *log.Logger
	nextSub   int
	subs      map[int]func(Change)
	loaded    storage.LoadResult
}

// Open loads the persisted board, falling back to a default board when
// nothing usable is stored, and seeds demo cards into an empty board.
func Open(ctx context.Context, store Store, opts Options) *Session {
	s := newSession(store, opts)
	s.loaded = store.Load(ctx)
	switch s.loaded.Status {
	case storage.LoadFound:
		s.doc = s.loaded.Board
	case storage.LoadCorrupt:
		s.logger.Warn("stored board unreadable, starting fresh", "err", s.loaded.Err)
		s.doc = model.NewBoard()
	default:
		s.doc = model.NewBoard()
	}
	if s.doc.Cards.Len() == 0 {
		s.seed(ctx)
	}
	return s
}

func newSession(store Store, opts Options) *Session {
	s := &Session{
		store:     store,
		ids:       opts.IDs,
		clock:     opts.Clock,
		confirmer: opts.Confirmer,
		logger:    opts.Logger,
		subs:      make(map[int]func(Change)),
	}
	if s.clock == nil {
		s.clock = model.SystemClock{}
	}
	if s.ids == nil {
		s.ids = TimestampIDs{Clock: s.clock}
	}
	if s.confirmer == nil {
		s.confirmer = AlwaysConfirm
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

func (s *Session) seed(ctx context.Context) {
	seeded := 0
	for _, card := range demoCards(s.clock) {
		if !s.doc.HasList(card.List) {
			continue
		}
		s.doc.Cards.Put(card)
		seeded++
	}
	if seeded == 0 {
		return
	}
	s.logger.Info("seeded demo cards", "count", seeded)
	s.commit(ctx, Change{Kind: ChangeSeeded})
}

// LoadResult reports how the board was obtained when the session opened.
func (s *Session) LoadResult() storage.LoadResult { return s.loaded }

// Subscribe registers fn for change notifications. The returned func
// removes it.
func (s *Session) Subscribe(fn func(Change)) (cancel func()) {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Board returns a copy of the current document.
func (s *Session) Board() *model.Board { return s.doc.Clone() }

func (s *Session) Card(id string) (model.Card, bool) { return s.doc.Cards.Get(id) }

func (s *Session) Criteria() filter.Criteria { return s.criteria }

func (s *Session) Today() string { return model.Today(s.clock) }

// Columns projects the current board through the active filter.
func (s *Session) Columns() []filter.Column {
	return filter.Project(s.doc, s.criteria, s.Today())
}

// Dragging returns the id of the card being dragged, if any.
func (s *Session) Dragging() (string, bool) { return s.dragging, s.dragging != "" }

func (s *Session) AddCard(ctx context.Context, list model.ListID, in CardInput) (model.Card, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Card{}, ErrEmptyTitle
	}
	if !s.doc.HasList(list) {
		return model.Card{}, ErrUnknownList
	}
	card := model.Card{
		ID:     s.ids.NewID(s.doc.Cards.Has),
		Title:  strings.TrimSpace(in.Title),
		Desc:   strings.TrimSpace(in.Desc),
		Labels: in.labels(),
		Due:    strings.TrimSpace(in.Due),
		List:   list,
	}
	if err := validateCard(card); err != nil {
		return model.Card{}, err
	}
	s.doc.Cards.Put(card)
	s.logger.Debug("card added", "card", card.ID, "list", list)
	s.commit(ctx, Change{Kind: ChangeAdded, CardID: card.ID})
	return card, nil
}

func (s *Session) EditCard(ctx context.Context, id string, in CardInput) (model.Card, error) {
	next, ok := s.doc.Cards.Get(id)
	if !ok {
		return model.Card{}, ErrCardNotFound
	}
	next.Title = strings.TrimSpace(in.Title)
	next.Desc = strings.TrimSpace(in.Desc)
	next.Labels = in.labels()
	next.Due = strings.TrimSpace(in.Due)
	next.Editing = false
	if err := validateCard(next); err != nil {
		return model.Card{}, err
	}
	s.doc.Cards.Update(id, func(c *model.Card) { *c = next })
	s.commit(ctx, Change{Kind: ChangeEdited, CardID: id})
	card, _ := s.doc.Cards.Get(id)
	return card, nil
}

// MoveCard shifts a card one list left or right in board order.
func (s *Session) MoveCard(ctx context.Context, id string, dir Direction) (model.Card, error) {
	card, ok := s.doc.Cards.Get(id)
	if !ok {
		return model.Card{}, ErrCardNotFound
	}
	idx := s.doc.ListIndex(card.List)
	target := idx
	switch dir {
	case Left:
		target = idx - 1
	case Right:
		target = idx + 1
	}
	if idx < 0 || target < 0 || target >= len(s.doc.Lists) || target == idx {
		return model.Card{}, ErrAtBoundary
	}
	next := s.doc.Lists[target]
	s.doc.Cards.Update(id, func(c *model.Card) { c.List = next })
	s.logger.Debug("card moved", "card", id, "from", card.List, "to", next)
	s.commit(ctx, Change{Kind: ChangeMoved, CardID: id})
	card.List = next
	return card, nil
}

// DeleteCard removes a card once the confirmer accepts.
func (s *Session) DeleteCard(ctx context.Context, id string) error {
	card, ok := s.doc.Cards.Get(id)
	if !ok {
		return ErrCardNotFound
	}
	if !s.confirmer.Confirm("Delete " + card.Title + "?") {
		return ErrNotConfirmed
	}
	s.doc.Cards.Delete(id)
	if s.dragging == id {
		s.dragging = ""
	}
	s.logger.Debug("card deleted", "card", id)
	s.commit(ctx, Change{Kind: ChangeDeleted, CardID: id})
	return nil
}

// SetEditing switches a card between display and inline edit form.
func (s *Session) SetEditing(ctx context.Context, id string, editing bool) error {
	if !s.doc.Cards.Update(id, func(c *model.Card) { c.Editing = editing }) {
		return ErrCardNotFound
	}
	s.commit(ctx, Change{Kind: ChangeEditing, CardID: id})
	return nil
}

// BeginDrag remembers which card is being dragged. Unknown ids are ignored.
func (s *Session) BeginDrag(id string) {
	if s.doc.Cards.Has(id) {
		s.dragging = id
	}
}

func (s *Session) CancelDrag() { s.dragging = "" }

// Drop moves the dragged card into target.
func (s *Session) Drop(ctx context.Context, target model.ListID) (model.Card, error) {
	if s.dragging == "" {
		return model.Card{}, ErrNoDrag
	}
	return s.DropCard(ctx, s.dragging, target)
}

// DropCard puts a card straight into target, skipping over lists in
// between.
func (s *Session) DropCard(ctx context.Context, id string, target model.ListID) (model.Card, error) {
	if id == "" {
		return model.Card{}, ErrNoDrag
	}
	if !s.doc.Cards.Has(id) {
		s.dragging = ""
		return model.Card{}, ErrCardNotFound
	}
	if !s.doc.HasList(target) {
		return model.Card{}, ErrUnknownList
	}
	s.doc.Cards.Update(id, func(c *model.Card) { c.List = target })
	s.dragging = ""
	s.commit(ctx, Change{Kind: ChangeDropped, CardID: id})
	card, _ := s.doc.Cards.Get(id)
	return card, nil
}

// ImportBoard replaces the whole document with the board in raw. On any
// error the current document is kept.
func (s *Session) ImportBoard(ctx context.Context, raw []byte) error {
	board, err := model.ParseBoard(raw)
	if err != nil {
		s.logger.Warn("import rejected", "err", err)
		return &ImportError{Err: err}
	}
	s.doc = board
	s.dragging = ""
	s.logger.Info("board imported", "lists", len(board.Lists), "cards", board.Cards.Len())
	s.commit(ctx, Change{Kind: ChangeImported})
	return nil
}

// ExportBoard returns the document as two-space indented JSON.
func (s *Session) ExportBoard() ([]byte, error) {
	return model.EncodeBoard(s.doc)
}

func (s *Session) SetSearch(search string) {
	s.criteria.Search = strings.ToLower(search)
	s.notify(Change{Kind: ChangeFiltered})
}

func (s *Session) SetLabelFilter(label string) {
	s.criteria.Label = strings.ToLower(label)
	s.notify(Change{Kind: ChangeFiltered})
}

func (s *Session) SetOverdueOnly(on bool) {
	s.criteria.Overdue = on
	s.notify(Change{Kind: ChangeFiltered})
}

// SetCriteria replaces all filter criteria at once.
func (s *Session) SetCriteria(c filter.Criteria) {
	s.criteria = filter.NewCriteria(c.Search, c.Label, c.Overdue)
	s.notify(Change{Kind: ChangeFiltered})
}

func (s *Session) commit(ctx context.Context, ch Change) {
	if err := s.store.Save(ctx, s.doc); err != nil {
		s.logger.Warn("save failed, continuing with in-memory board", "err", err)
	}
	s.notify(ch)
}

func (s *Session) notify(ch Change) {
	for _, fn := range s.subs {
		fn(ch)
	}
}
