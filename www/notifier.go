package www

import "sync"

type refreshTarget interface {
	NotifyRefresh(years []int)
}

// RefreshNotifier decouples the refresh task from the server it
// notifies. The task is constructed before the server exists, so the
// target is bound late; notifications arriving before Bind are dropped.
type RefreshNotifier struct {
	mu     sync.Mutex
	target refreshTarget
}

func (n *RefreshNotifier) Bind(t refreshTarget) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.target = t
}

func (n *RefreshNotifier) Notify(years []int) {
	n.mu.Lock()
	t := n.target
	n.mu.Unlock()

	if t != nil {
		t.NotifyRefresh(years)
	}
}
