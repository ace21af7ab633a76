package www

import (
	"sync"
	"testing"
)

type recordingTarget struct {
	mu    sync.Mutex
	calls [][]int
}

func (r *recordingTarget) NotifyRefresh(years []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, years)
}

func TestRefreshNotifierBeforeBind(t *testing.T) {
	var n RefreshNotifier
	n.Notify([]int{2024}) // must not panic without a target
}

func TestRefreshNotifierDelivers(t *testing.T) {
	var n RefreshNotifier
	target := &recordingTarget{}
	n.Bind(target)
	n.Notify([]int{2024, 2025})

	if len(target.calls) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(target.calls))
	}
	if len(target.calls[0]) != 2 || target.calls[0][0] != 2024 {
		t.Errorf("unexpected years: %v", target.calls[0])
	}
}

func TestRefreshNotifierConcurrentBind(t *testing.T) {
	var n RefreshNotifier
	target := &recordingTarget{}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			n.Bind(target)
		}()
		go func() {
			defer wg.Done()
			n.Notify([]int{2025})
		}()
	}
	wg.Wait()
}
