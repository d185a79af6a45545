package services

// changeFeed is a coalescing notification channel. Any number of
// notifications between two receives collapse into one.
type changeFeed struct {
	ch chan struct{}
}

func newChangeFeed() *changeFeed {
	return &changeFeed{ch: make(chan struct{}, 1)}
}

func (f *changeFeed) notify() {
	select {
	case f.ch <- struct{}{}:
	default:
	}
}

func (f *changeFeed) C() <-chan struct{} {
	return f.ch
}
