package cart

import (
	"sync"
	"time"

	"github.com/linkon63/neocomerze/internal/domain"
)

// ToastDuration is how long a toast message stays visible before it
// auto-clears. A new toast restarts the timer and replaces the message.
const ToastDuration = 1800 * time.Millisecond

// Store is the authoritative in-memory cart for one shopping session.
// At most one line exists per (product, variant) identity; repeated adds
// merge into the existing line's quantity. None of its operations can
// fail: inputs are normalized, not rejected.
type Store struct {
	mu         sync.Mutex
	lines      []domain.CartLine
	toast      string
	toastTimer *time.Timer
	toastGen   uint64
	toastTTL   time.Duration
}

func NewStore() *Store {
	return &Store{toastTTL: ToastDuration}
}

// AddItem merges item into the cart. Quantity is floored at 1; zero,
// negative and fractional inputs are coerced by the caller before they
// reach here, so the only normalization left is the floor. When a line
// with the same identity exists its quantity grows and its display
// fields keep their first-written values.
func (s *Store) AddItem(item domain.CartLine, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.lines {
		if s.lines[i].SameIdentity(item.ProductID, item.VariantID) {
			s.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		s.lines = append(s.lines, item)
	}
	s.showToastLocked("Added to cart")
	s.mu.Unlock()
}

// Remove deletes the line matching the identity pair. A missing line is
// a silent no-op.
func (s *Store) Remove(productID int64, variantID *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].SameIdentity(productID, variantID) {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
}

// Lines returns a copy of the cart contents in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// ShowToast replaces the current toast message and restarts the
// auto-clear timer.
func (s *Store) ShowToast(message string) {
	s.mu.Lock()
	s.showToastLocked(message)
	s.mu.Unlock()
}

func (s *Store) showToastLocked(message string) {
	s.toast = message
	s.toastGen++
	gen := s.toastGen
	if s.toastTimer != nil {
		s.toastTimer.Stop()
	}
	s.toastTimer = time.AfterFunc(s.toastTTL, func() {
		s.mu.Lock()
		// A newer toast superseded this timer while it was firing.
		if s.toastGen == gen {
			s.toast = ""
		}
		s.mu.Unlock()
	})
}

// Toast returns the currently visible message, or "" when idle.
func (s *Store) Toast() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toast
}
