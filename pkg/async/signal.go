package async

// Signal is a lossy single-slot notification channel. Senders never block:
// while a previous value is still undelivered, new values are dropped. The
// receive loop uses one to surface faults without ever stalling on a slow
// consumer.
type Signal[T any] struct {
	ch chan T
}

func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{ch: make(chan T, 1)}
}

// TrySend delivers v unless an earlier value is still pending. Reports
// whether the value was accepted.
func (s *Signal[T]) TrySend(v T) bool {
	select {
	case s.ch <- v:
		return true
	default:
		return false
	}
}

// Chan exposes the receive side of the signal.
func (s *Signal[T]) Chan() <-chan T {
	return s.ch
}
