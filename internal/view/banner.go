package view

import (
	"sync"
	"time"
)

// DefaultBannerClear matches the short-lived success/error banners in
// the UI.
const DefaultBannerClear = 2500 * time.Millisecond

type BannerKind int

const (
	BannerNone BannerKind = iota
	BannerSuccess
	BannerError
)

// Banner holds one transient message with an auto-clear timer. A new
// message always supersedes the previous one and cancels its pending
// clear, so a rapid second action can never have its banner wiped by
// the first action's timer.
type Banner struct {
	mu         sync.Mutex
	message    string
	kind       BannerKind
	clearAfter time.Duration
	timer      *time.Timer
	seq        uint64
}

func NewBanner(clearAfter time.Duration) *Banner {
	if clearAfter <= 0 {
		clearAfter = DefaultBannerClear
	}
	return &Banner{clearAfter: clearAfter}
}

// Success shows a success message that auto-clears.
func (b *Banner) Success(msg string) {
	b.show(msg, BannerSuccess)
}

// Error shows an error message that auto-clears.
func (b *Banner) Error(msg string) {
	b.show(msg, BannerError)
}

func (b *Banner) show(msg string, kind BannerKind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
	b.seq++
	b.message = msg
	b.kind = kind

	// The sequence guard covers the window where an old timer has
	// already fired but not yet taken the lock.
	seq := b.seq
	b.timer = time.AfterFunc(b.clearAfter, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.seq != seq {
			return
		}
		b.message = ""
		b.kind = BannerNone
	})
}

// Clear removes the current message immediately.
func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.seq++
	b.message = ""
	b.kind = BannerNone
}

// Message returns the current message and kind; "" when cleared.
func (b *Banner) Message() (string, BannerKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message, b.kind
}
