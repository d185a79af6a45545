package services

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

// --- Manual scheduler ---

// manualScheduler records scheduled calls and runs them only when fired.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Live returns the number of timers neither stopped nor fired.
func (s *manualScheduler) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		t.mu.Lock()
		if !t.stopped && !t.fired {
			n++
		}
		t.mu.Unlock()
	}
	return n
}

// FireAll runs every live timer in scheduling order.
func (s *manualScheduler) FireAll() {
	s.mu.Lock()
	timers := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, t := range timers {
		t.mu.Lock()
		run := !t.stopped && !t.fired
		t.fired = true
		t.mu.Unlock()
		if run {
			t.f()
		}
	}
}

// --- Mock navigator ---

type mockNavigator struct {
	mock.Mock
}

func (m *mockNavigator) GoToUsers(page int) {
	m.Called(page)
}

func (m *mockNavigator) GoToEdit(id int, hint *domain.EditHint) {
	m.Called(id, hint)
}

func (m *mockNavigator) GoToLogin() {
	m.Called()
}

// --- Helpers ---

func ids(entries []domain.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func testNotifier() *Notifier {
	return NewNotifier(domain.DefaultSettings().Notifications)
}

func messages(n *Notifier) []string {
	var out []string
	for _, item := range n.Active() {
		out = append(out, item.Message)
	}
	return out
}
