package storage

// ChangeKind identifies which entity collection changed.
type ChangeKind string

// Entity collections that can be watched.
const (
	KindTransactions ChangeKind = "transactions"
	KindCategories   ChangeKind = "categories"
	KindBudgets      ChangeKind = "budgets"
	KindUsers        ChangeKind = "users"
)

// Watch returns a channel that receives a signal after every committed
// mutation of the given collection, plus a cancel function that removes the
// subscription. The channel has capacity one; rapid consecutive changes
// coalesce into a single pending signal, so readers re-query the collection
// on receipt rather than relying on one event per write.
func (s *SQLiteStorage) Watch(kind ChangeKind) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.watchMu.Lock()
	s.watchers[kind] = append(s.watchers[kind], ch)
	s.watchMu.Unlock()

	cancel := func() {
		s.watchMu.Lock()
		defer s.watchMu.Unlock()
		subs := s.watchers[kind]
		for i, sub := range subs {
			if sub == ch {
				s.watchers[kind] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}

	return ch, cancel
}

// notify signals all watchers of a collection. Sends never block: a watcher
// that already has a pending signal is skipped.
func (s *SQLiteStorage) notify(kind ChangeKind) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	for _, ch := range s.watchers[kind] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// closeWatchers closes all subscription channels at shutdown.
func (s *SQLiteStorage) closeWatchers() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	for kind, subs := range s.watchers {
		for _, ch := range subs {
			close(ch)
		}
		delete(s.watchers, kind)
	}
}
