package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/grunfink/snac-core/internal/queueitem"
)

// TestQueue_FIFOOrdering verifies two normal posts from the same
// goroutine dequeue in post order with no reordering.
func TestQueue_FIFOOrdering(t *testing.T) {
	q := New()

	a := Item(testItem("a"))
	b := Item(testItem("b"))

	q.Post(a, false)
	q.Post(b, false)

	got1 := q.Wait()
	got2 := q.Wait()

	if got1.Item.Type != "a" || got2.Item.Type != "b" {
		t.Errorf("expected order a, b; got %s, %s", got1.Item.Type, got2.Item.Type)
	}
}

// TestQueue_UrgentInsertsAtFront verifies an urgent post jumps ahead of
// already-queued normal items.
func TestQueue_UrgentInsertsAtFront(t *testing.T) {
	q := New()

	q.Post(Item(testItem("normal-1")), false)
	q.Post(Item(testItem("normal-2")), false)
	q.Post(Item(testItem("urgent")), true)

	first := q.Wait()
	if first.Item.Type != "urgent" {
		t.Errorf("expected urgent item first, got %s", first.Item.Type)
	}
}

// TestQueue_AtMostOnceConsumption verifies a posted job is observed by
// exactly one waiter even under concurrent waiting.
func TestQueue_AtMostOnceConsumption(t *testing.T) {
	q := New()
	const n = 50

	for i := 0; i < n; i++ {
		q.Post(Item(testItem("x")), false)
	}

	var mu sync.Mutex
	count := 0
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job := q.Wait()
			if job.Kind == KindQueueItem {
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if count != n {
		t.Errorf("expected %d items consumed exactly once, got %d", n, count)
	}
}

// TestQueue_SentinelWakesWaiter verifies posting the shutdown sentinel
// still releases a wake token without enqueuing an element.
func TestQueue_SentinelWakesWaiter(t *testing.T) {
	q := New()

	done := make(chan Job, 1)
	go func() {
		done <- q.Wait()
	}()

	q.Post(Sentinel(), false)

	select {
	case job := <-done:
		if job.Kind != KindSentinel {
			t.Errorf("expected sentinel, got kind %v", job.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter was never woken by sentinel post")
	}
}

// TestQueue_ReadyReflectsLifecycle verifies Ready() gates on init/close.
func TestQueue_ReadyReflectsLifecycle(t *testing.T) {
	q := New()
	if !q.Ready() {
		t.Error("expected Ready() true right after New()")
	}

	q.Close()
	if q.Ready() {
		t.Error("expected Ready() false after Close()")
	}
}

func testItem(kind string) queueitem.QueueItem {
	return queueitem.QueueItem{Type: kind}
}
