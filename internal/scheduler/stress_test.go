package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

func TestEngineDeliversEachDueEventOnceUnderContention(t *testing.T) {
	engine := NewEngine(2048)
	engine.Start()
	defer engine.Stop()

	future := []model.Card{{ID: "future", Due: "2999-01-01"}}
	if err := engine.Sync(future, "2026-02-09", time.UTC); err != nil {
		t.Fatalf("sync: %v", err)
	}

	const writers = 6
	const perWriter = 150
	past := time.Now().Add(-time.Minute)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				ev := DueEvent{CardID: fmt.Sprintf("c-%d-%d", w, i), Due: "2026-02-09", TriggerAt: past}
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("schedule %s: %v", ev.CardID, err)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = engine.Pending()
			_ = engine.Dropped()
		}
	}()
	wg.Wait()

	seen := make(map[string]bool)
	deadline := time.After(5 * time.Second)
	for len(seen) < writers*perWriter {
		select {
		case ev := <-engine.C():
			if ev.CardID == "future" {
				t.Fatalf("future event fired early")
			}
			if seen[ev.CardID] {
				t.Fatalf("event %s delivered twice", ev.CardID)
			}
			seen[ev.CardID] = true
		case <-deadline:
			t.Fatalf("timeout: received=%d dropped=%d", len(seen), engine.Dropped())
		}
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected only the future event queued, got %d", engine.Pending())
	}
}
