package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sandeepkv93/taskflow/internal/model"
)

func TestBoardStoreLoadStatuses(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewBoardStore(kv)

	if res := store.Load(ctx); res.Status != LoadNotFound || res.Board != nil {
		t.Fatalf("expected not found on empty store, got %+v", res)
	}

	if err := kv.Set(ctx, BoardKey, []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}
	res := store.Load(ctx)
	if res.Status != LoadCorrupt || res.Err == nil || res.Board != nil {
		t.Fatalf("expected corrupt result, got %+v", res)
	}

	if err := kv.Set(ctx, BoardKey, []byte(`{"lists":["backlog"]}`)); err != nil {
		t.Fatalf("seed partial value: %v", err)
	}
	if res := store.Load(ctx); res.Status != LoadCorrupt {
		t.Fatalf("expected document without cards to be corrupt, got %+v", res)
	}

	if err := kv.Set(ctx, BoardKey, []byte("null")); err != nil {
		t.Fatalf("seed null value: %v", err)
	}
	if res := store.Load(ctx); res.Status != LoadNotFound {
		t.Fatalf("expected null document to read as not found, got %+v", res)
	}
}

func TestBoardStoreSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	store := NewBoardStore(NewMemoryKV())

	b := model.NewBoard()
	b.Cards.Put(model.Card{ID: "c-1", Title: "One", Labels: []string{"a"}, List: model.ListBacklog})
	b.Cards.Put(model.Card{ID: "c-0", Title: "Zero", Labels: []string{}, List: model.ListDone, Editing: true})
	if err := store.Save(ctx, b); err != nil {
		t.Fatalf("save: %v", err)
	}

	res := store.Load(ctx)
	if res.Status != LoadFound {
		t.Fatalf("expected found, got %+v", res)
	}
	if !reflect.DeepEqual(res.Board, b) {
		t.Fatalf("loaded board differs:\n got %#v\nwant %#v", res.Board, b)
	}
}

func TestBoardStoreSaveSurfacesWriteFailure(t *testing.T) {
	kv := NewMemoryKV()
	kv.FailWrites = errors.New("quota exceeded")
	store := NewBoardStore(kv)
	err := store.Save(context.Background(), model.NewBoard())
	if err == nil || !errors.Is(err, kv.FailWrites) {
		t.Fatalf("expected wrapped write failure, got %v", err)
	}
}

func TestBoardStoreTheme(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewBoardStore(kv)

	if _, ok := store.Theme(ctx); ok {
		t.Fatal("expected no theme preference on empty store")
	}
	if err := store.SetTheme(ctx, ThemeDark); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if got, ok := store.Theme(ctx); !ok || got != ThemeDark {
		t.Fatalf("unexpected theme: %q ok=%v", got, ok)
	}
	if err := store.SetTheme(ctx, Theme("sepia")); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	if err := kv.Set(ctx, ThemeKey, []byte("sepia")); err != nil {
		t.Fatalf("seed theme: %v", err)
	}
	if _, ok := store.Theme(ctx); ok {
		t.Fatal("expected unknown stored theme to be ignored")
	}
}

func TestParseTheme(t *testing.T) {
	if got, err := ParseTheme(" Light "); err != nil || got != ThemeLight {
		t.Fatalf("unexpected parse: %q %v", got, err)
	}
	if _, err := ParseTheme("blue"); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
}
