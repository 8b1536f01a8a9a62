package notify

import (
	"concert-booking/internal/model"
	"sync"
)

// ChanHandle 以 channel 實作的 CompletionHandle
//
// 投遞與取消只有一個會生效：先發生的決定結果，之後的呼叫都被忽略。
type ChanHandle struct {
	ch   chan model.Notification
	done chan struct{}
	once sync.Once
}

func NewChanHandle() *ChanHandle {
	return &ChanHandle{
		ch:   make(chan model.Notification, 1),
		done: make(chan struct{}),
	}
}

func (h *ChanHandle) Deliver(n model.Notification) {
	h.once.Do(func() {
		h.ch <- n
	})
}

func (h *ChanHandle) Cancel() {
	h.once.Do(func() {
		close(h.done)
	})
}

// Notification 收到通知時可讀
func (h *ChanHandle) Notification() <-chan model.Notification {
	return h.ch
}

// Cancelled 被取消 (hub 關閉或取消訂閱) 時關閉
func (h *ChanHandle) Cancelled() <-chan struct{} {
	return h.done
}
