package transform

// Notifier is a synchronous callback registry. A transform owns one and
// fires it whenever its parameters change; composite transforms subscribe to
// their children and forward notifications upward.
//
// Delivery is synchronous and recursive: a listener runs on the caller's
// stack and may itself notify further subscribers. Notifier is not safe for
// concurrent use; callers mutating transforms from multiple goroutines must
// serialize access externally.
type Notifier struct {
	seq       int
	listeners []listener
}

type listener struct {
	id int
	fn func()
}

// Subscribe registers fn to run on every Notify and returns a token for
// Unsubscribe. Listeners run in subscription order.
func (n *Notifier) Subscribe(fn func()) int {
	n.seq++
	n.listeners = append(n.listeners, listener{id: n.seq, fn: fn})
	return n.seq
}

// Unsubscribe removes the listener registered under token. Unknown tokens
// are ignored.
func (n *Notifier) Unsubscribe(token int) {
	for i, l := range n.listeners {
		if l.id == token {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

// Notify invokes every registered listener synchronously. The listener set
// is snapshotted first, so a listener may subscribe or unsubscribe during
// delivery without affecting the current fan-out.
func (n *Notifier) Notify() {
	if len(n.listeners) == 0 {
		return
	}
	snapshot := make([]listener, len(n.listeners))
	copy(snapshot, n.listeners)
	for _, l := range snapshot {
		l.fn()
	}
}

// Len returns the number of registered listeners.
func (n *Notifier) Len() int { return len(n.listeners) }
