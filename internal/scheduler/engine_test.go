package scheduler

import (
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(DueEvent{CardID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(DueEvent{CardID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.CardID != "sooner" || second.CardID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.CardID, second.CardID)
	}
}

func TestEngineKeepsScheduleOrderForEqualTriggers(t *testing.T) {
	engine := NewEngine(8)
	at := time.Now().UTC().Add(20 * time.Millisecond)
	for _, id := range []string{"a", "b", "c"} {
		if err := engine.Schedule(DueEvent{CardID: id, TriggerAt: at}); err != nil {
			t.Fatalf("schedule %s: %v", id, err)
		}
	}
	engine.Start()
	defer engine.Stop()

	for _, want := range []string{"a", "b", "c"} {
		if got := waitEvent(t, engine.C(), time.Second); got.CardID != want {
			t.Fatalf("expected %s, got %s", want, got.CardID)
		}
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(DueEvent{
			CardID:    "evt",
			TriggerAt: now,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestClearDiscardsPendingEvents(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	if err := engine.Schedule(DueEvent{CardID: "gone", TriggerAt: time.Now().Add(40 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	engine.Clear()
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
	select {
	case ev := <-engine.C():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(120 * time.Millisecond):
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(DueEvent{CardID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestScheduleAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(DueEvent{CardID: "late", TriggerAt: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected closed channel after stop")
	}
}

func waitEvent(t *testing.T, ch <-chan DueEvent, timeout time.Duration) DueEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return DueEvent{}
	}
}
