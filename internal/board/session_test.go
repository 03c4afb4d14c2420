package board

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

var testNow = time.Date(2026, 2, 9, 10, 30, 0, 0, time.UTC)

func newTestSession(t *testing.T) (*Session, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	s := Open(context.Background(), storage.NewBoardStore(kv), Options{Clock: model.FixedClock(testNow)})
	return s, kv
}

func storedBoard(t *testing.T, kv *storage.MemoryKV) *model.Board {
	t.Helper()
	res := storage.NewBoardStore(kv).Load(context.Background())
	if res.Status != storage.LoadFound {
		t.Fatalf("expected stored board, got %s (%v)", res.Status, res.Err)
	}
	return res.Board
}

func assertMembership(t *testing.T, b *model.Board) {
	t.Helper()
	for _, card := range b.Cards.All() {
		if !b.HasList(card.List) {
			t.Fatalf("card %s in unknown list %q", card.ID, card.List)
		}
	}
}

func TestOpenSeedsOnceOnFreshStore(t *testing.T) {
	s, kv := newTestSession(t)
	if s.LoadResult().Status != storage.LoadNotFound {
		t.Fatalf("expected not_found load, got %s", s.LoadResult().Status)
	}
	b := s.Board()
	if b.Cards.Len() != 3 {
		t.Fatalf("expected 3 seeded cards, got %d", b.Cards.Len())
	}
	want := map[string]model.ListID{"c-1": model.ListBacklog, "c-2": model.ListInProgress, "c-3": model.ListDone}
	for id, list := range want {
		card, ok := b.Cards.Get(id)
		if !ok || card.List != list {
			t.Fatalf("expected %s in %s, got %+v", id, list, card)
		}
	}
	c2, _ := b.Cards.Get("c-2")
	if c2.Due != "2026-02-08" {
		t.Fatalf("expected yesterday due, got %q", c2.Due)
	}

	again := Open(context.Background(), storage.NewBoardStore(kv), Options{Clock: model.FixedClock(testNow)})
	if again.LoadResult().Status != storage.LoadFound {
		t.Fatalf("expected persisted board on second open, got %s", again.LoadResult().Status)
	}
	if again.Board().Cards.Len() != 3 {
		t.Fatalf("expected no reseed, got %d cards", again.Board().Cards.Len())
	}
}

func TestOpenFallsBackOnCorruptStore(t *testing.T) {
	kv := storage.NewMemoryKV()
	if err := kv.Set(context.Background(), storage.BoardKey, []byte("{not json")); err != nil {
		t.Fatalf("seed kv: %v", err)
	}
	s := Open(context.Background(), storage.NewBoardStore(kv), Options{Clock: model.FixedClock(testNow)})
	if s.LoadResult().Status != storage.LoadCorrupt {
		t.Fatalf("expected corrupt load, got %s", s.LoadResult().Status)
	}
	b := s.Board()
	if !reflect.DeepEqual(b.Lists, model.DefaultLists()) || b.Cards.Len() != 3 {
		t.Fatalf("expected default seeded board, got %+v", b)
	}
}

func TestOpenKeepsEmptyCustomBoardWithoutDemoLists(t *testing.T) {
	kv := storage.NewMemoryKV()
	if err := kv.Set(context.Background(), storage.BoardKey, []byte(`{"lists":["x"],"cards":{}}`)); err != nil {
		t.Fatalf("seed kv: %v", err)
	}
	s := Open(context.Background(), storage.NewBoardStore(kv), Options{Clock: model.FixedClock(testNow)})
	if s.Board().Cards.Len() != 0 {
		t.Fatalf("expected no demo cards outside their lists, got %d", s.Board().Cards.Len())
	}
}

func TestAddCardTrimsAndSplitsLabels(t *testing.T) {
	s, kv := newTestSession(t)
	card, err := s.AddCard(context.Background(), model.ListDone, CardInput{Title: "  Ship  ", Labels: "a, b, a"})
	if err != nil {
		t.Fatalf("add card: %v", err)
	}
	if card.Title != "Ship" || card.List != model.ListDone {
		t.Fatalf("unexpected card %+v", card)
	}
	if !reflect.DeepEqual(card.Labels, []string{"a", "b", "a"}) {
		t.Fatalf("unexpected labels %#v", card.Labels)
	}
	if card.Desc != "" || card.Due != "" {
		t.Fatalf("expected empty desc and due, got %+v", card)
	}
	stored, ok := storedBoard(t, kv).Cards.Get(card.ID)
	if !ok || stored.Title != "Ship" {
		t.Fatalf("expected card persisted, got %+v", stored)
	}
	ids := s.Board().Cards.IDs()
	if ids[len(ids)-1] != card.ID {
		t.Fatalf("expected new card appended last, got %v", ids)
	}
}

func TestAddCardRejectsInvalidInput(t *testing.T) {
	s, _ := newTestSession(t)
	before := s.Board()
	cases := []struct {
		list model.ListID
		in   CardInput
		want error
	}{
		{model.ListBacklog, CardInput{Title: "   "}, ErrEmptyTitle},
		{"nowhere", CardInput{Title: "x"}, ErrUnknownList},
		{model.ListBacklog, CardInput{Title: "x", Due: "09/02/2026"}, ErrInvalidDue},
	}
	for _, tc := range cases {
		if _, err := s.AddCard(context.Background(), tc.list, tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("expected %v, got %v", tc.want, err)
		}
	}
	if !reflect.DeepEqual(before, s.Board()) {
		t.Fatal("expected board unchanged after rejected adds")
	}
}

func TestAddCardIDsStayUniqueWithinOneMillisecond(t *testing.T) {
	s, _ := newTestSession(t)
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		card, err := s.AddCard(context.Background(), model.ListBacklog, CardInput{Title: "same instant"})
		if err != nil {
			t.Fatalf("add card: %v", err)
		}
		if seen[card.ID] {
			t.Fatalf("duplicate id %s", card.ID)
		}
		seen[card.ID] = true
	}
	if s.Board().Cards.Len() != 8 {
		t.Fatalf("expected 8 cards, got %d", s.Board().Cards.Len())
	}
}

func TestEditCardOverwritesAndClearsEditing(t *testing.T) {
	s, kv := newTestSession(t)
	ctx := context.Background()
	if err := s.SetEditing(ctx, "c-1", true); err != nil {
		t.Fatalf("set editing: %v", err)
	}
	if card, _ := storedBoard(t, kv).Cards.Get("c-1"); !card.Editing {
		t.Fatal("expected editing flag persisted")
	}
	card, err := s.EditCard(ctx, "c-1", CardInput{Title: " New title ", Desc: " body ", Labels: "x,,y", Due: "2026-03-01"})
	if err != nil {
		t.Fatalf("edit card: %v", err)
	}
	if card.Title != "New title" || card.Desc != "body" || card.Due != "2026-03-01" || card.Editing {
		t.Fatalf("unexpected edited card %+v", card)
	}
	if !reflect.DeepEqual(card.Labels, []string{"x", "y"}) {
		t.Fatalf("unexpected labels %#v", card.Labels)
	}
	if s.Board().Cards.IDs()[0] != "c-1" {
		t.Fatal("expected edit to keep insertion position")
	}
	if _, err := s.EditCard(ctx, "c-1", CardInput{Title: ""}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := s.EditCard(ctx, "missing", CardInput{Title: "x"}); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestEditCardKeepsSplitLabels(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()
	card, err := s.AddCard(ctx, model.ListBacklog, CardInput{Title: "Imported", LabelList: []string{"a,b", " c "}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !reflect.DeepEqual(card.Labels, []string{"a,b", "c"}) {
		t.Fatalf("unexpected labels %#v", card.Labels)
	}
	edited, err := s.EditCard(ctx, card.ID, CardInput{Title: "Renamed", LabelList: card.Labels})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Title != "Renamed" || !reflect.DeepEqual(edited.Labels, []string{"a,b", "c"}) {
		t.Fatalf("unexpected edited card %+v", edited)
	}
	if _, err := s.EditCard(ctx, card.ID, CardInput{Title: "x", Due: "tomorrow"}); !errors.Is(err, ErrInvalidDue) {
		t.Fatalf("expected ErrInvalidDue, got %v", err)
	}
	if got, _ := s.Card(card.ID); got.Title != "Renamed" {
		t.Fatalf("expected rejected edit to leave card alone, got %+v", got)
	}
}

func TestMoveCardFollowsListOrder(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()
	before := s.Board()
	if _, err := s.MoveCard(ctx, "c-1", Left); !errors.Is(err, ErrAtBoundary) {
		t.Fatalf("expected ErrAtBoundary, got %v", err)
	}
	if _, err := s.MoveCard(ctx, "c-3", Right); !errors.Is(err, ErrAtBoundary) {
		t.Fatalf("expected ErrAtBoundary, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Board()) {
		t.Fatal("expected boundary moves to leave board unchanged")
	}
	card, err := s.MoveCard(ctx, "c-1", Right)
	if err != nil || card.List != model.ListInProgress {
		t.Fatalf("expected move to inprogress, got %+v err=%v", card, err)
	}
	card, err = s.MoveCard(ctx, "c-2", Left)
	if err != nil || card.List != model.ListBacklog {
		t.Fatalf("expected move to backlog, got %+v err=%v", card, err)
	}
	if _, err := s.MoveCard(ctx, "missing", Left); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestDeleteCardRequiresConfirmation(t *testing.T) {
	kv := storage.NewMemoryKV()
	answer := false
	var prompt string
	s := Open(context.Background(), storage.NewBoardStore(kv), Options{
		Clock: model.FixedClock(testNow),
		Confirmer: ConfirmFunc(func(p string) bool {
			prompt = p
			return answer
		}),
	})
	if err := s.DeleteCard(context.Background(), "c-2"); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if prompt != "Delete Fix login bug?" {
		t.Fatalf("unexpected prompt %q", prompt)
	}
	if _, ok := s.Card("c-2"); !ok {
		t.Fatal("expected card kept after declined delete")
	}
	answer = true
	if err := s.DeleteCard(context.Background(), "c-2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := storedBoard(t, kv).Cards.Get("c-2"); ok {
		t.Fatal("expected delete persisted")
	}
	if err := s.DeleteCard(context.Background(), "c-2"); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestDragAndDrop(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()
	if _, err := s.Drop(ctx, model.ListDone); !errors.Is(err, ErrNoDrag) {
		t.Fatalf("expected ErrNoDrag, got %v", err)
	}
	s.BeginDrag("missing")
	if _, ok := s.Dragging(); ok {
		t.Fatal("expected unknown id ignored")
	}
	s.BeginDrag("c-1")
	if _, err := s.Drop(ctx, "nowhere"); !errors.Is(err, ErrUnknownList) {
		t.Fatalf("expected ErrUnknownList, got %v", err)
	}
	card, err := s.Drop(ctx, model.ListDone)
	if err != nil || card.List != model.ListDone {
		t.Fatalf("expected drop into done, got %+v err=%v", card, err)
	}
	if _, ok := s.Dragging(); ok {
		t.Fatal("expected drag state cleared after drop")
	}
	s.BeginDrag("c-3")
	s.CancelDrag()
	if _, err := s.Drop(ctx, model.ListBacklog); !errors.Is(err, ErrNoDrag) {
		t.Fatalf("expected ErrNoDrag after cancel, got %v", err)
	}
}

func TestImportRejectsMissingCards(t *testing.T) {
	s, kv := newTestSession(t)
	before := s.Board()
	err := s.ImportBoard(context.Background(), []byte(`{"lists":["x"]}`))
	var importErr *ImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("expected ImportError, got %v", err)
	}
	if !errors.Is(err, model.ErrInvalidBoard) {
		t.Fatalf("expected wrapped ErrInvalidBoard, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Board()) || !reflect.DeepEqual(before, storedBoard(t, kv)) {
		t.Fatal("expected document unchanged after rejected import")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s, kv := newTestSession(t)
	ctx := context.Background()
	if _, err := s.AddCard(ctx, model.ListDone, CardInput{Title: "Ship", Labels: "a,b", Due: "2026-03-01"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.MoveCard(ctx, "c-1", Right); err != nil {
		t.Fatalf("move: %v", err)
	}
	raw, err := s.ExportBoard()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := s.Board()

	other := Open(ctx, storage.NewBoardStore(storage.NewMemoryKV()), Options{Clock: model.FixedClock(testNow)})
	if err := other.ImportBoard(ctx, raw); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(want, other.Board()) {
		t.Fatalf("round trip mismatch\nwant %+v\ngot  %+v", want, other.Board())
	}
	if err := s.ImportBoard(ctx, raw); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if !reflect.DeepEqual(want, storedBoard(t, kv)) {
		t.Fatal("expected import persisted")
	}
}

func TestImportThenAddKeepsIDsUnique(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()
	clash := []byte(`{"lists":["backlog"],"cards":{"c-` +
		itoa(testNow.UnixMilli()) + `":{"id":"c-` + itoa(testNow.UnixMilli()) + `","title":"t","list":"backlog"}}}`)
	if err := s.ImportBoard(ctx, clash); err != nil {
		t.Fatalf("import: %v", err)
	}
	card, err := s.AddCard(ctx, model.ListBacklog, CardInput{Title: "fresh"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if s.Board().Cards.Len() != 2 || card.ID == "c-"+itoa(testNow.UnixMilli()) {
		t.Fatalf("expected a fresh id, got %s", card.ID)
	}
}

func TestCommandsPreserveListMembership(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()
	s.AddCard(ctx, model.ListBacklog, CardInput{Title: "a"})
	s.MoveCard(ctx, "c-1", Right)
	s.MoveCard(ctx, "c-1", Right)
	s.MoveCard(ctx, "c-1", Right)
	s.BeginDrag("c-2")
	s.Drop(ctx, "bogus")
	s.Drop(ctx, model.ListBacklog)
	s.ImportBoard(ctx, []byte(`{"lists":["a"],"cards":{"k":{"id":"k","title":"t","list":"b"}}}`))
	s.EditCard(ctx, "c-3", CardInput{Title: "renamed"})
	s.DeleteCard(ctx, "c-3")
	assertMembership(t, s.Board())
}

func TestSaveFailureDoesNotBlockCommands(t *testing.T) {
	s, kv := newTestSession(t)
	kv.FailWrites = errors.New("disk full")
	card, err := s.AddCard(context.Background(), model.ListBacklog, CardInput{Title: "still works"})
	if err != nil {
		t.Fatalf("expected add to succeed despite save failure, got %v", err)
	}
	if _, ok := s.Card(card.ID); !ok {
		t.Fatal("expected card in memory")
	}
}

func TestSubscribersSeeChanges(t *testing.T) {
	s, _ := newTestSession(t)
	var got []Change
	cancel := s.Subscribe(func(c Change) { got = append(got, c) })
	ctx := context.Background()
	s.MoveCard(ctx, "c-1", Right)
	s.MoveCard(ctx, "c-1", Left)
	s.MoveCard(ctx, "c-1", Left)
	s.SetSearch("LOGIN")
	cancel()
	s.SetOverdueOnly(true)

	want := []Change{
		{Kind: ChangeMoved, CardID: "c-1"},
		{Kind: ChangeMoved, CardID: "c-1"},
		{Kind: ChangeFiltered},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected changes %+v", got)
	}
	if s.Criteria().Search != "login" || !s.Criteria().Overdue {
		t.Fatalf("unexpected criteria %+v", s.Criteria())
	}
}

func TestColumnsApplyFilters(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetSearch("login")
	s.SetLabelFilter("URGENT")
	s.SetOverdueOnly(true)
	cols := s.Columns()
	if len(cols) != 3 || len(cols[1].Cards) != 1 || cols[1].Cards[0].ID != "c-2" {
		t.Fatalf("expected only Fix login bug visible, got %+v", cols)
	}
	if len(cols[0].Cards) != 0 || len(cols[2].Cards) != 0 {
		t.Fatalf("expected other columns empty, got %+v", cols)
	}
}
