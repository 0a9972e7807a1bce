// Package viewmodel implements the client-side state holders behind the
// catalog views: list browsing, item detail, and the favorites page. The
// view-models own fetched data, derive the visible view from it, and
// reconcile optimistic mutations against the backend. They are independent
// of any rendering layer; presentations subscribe for change notification
// or simply re-read state after each operation.
package viewmodel

import (
	"sync"

	"moviehub/models"
)

// Session exposes the read side of the session store needed by view-models
type Session interface {
	Active() bool
	Current() *models.User
}

// notifier implements the subscribe/notify contract shared by all view-models
type notifier struct {
	subMu  sync.Mutex
	nextID int
	subs   map[int]func()
}

// Subscribe registers fn to run after every state change and returns a
// function that cancels the subscription.
func (n *notifier) Subscribe(fn func()) (cancel func()) {
	n.subMu.Lock()
	defer n.subMu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]func())
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.subMu.Lock()
		defer n.subMu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify() {
	n.subMu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
