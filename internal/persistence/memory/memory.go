// Package memory provides map-backed repositories used by handler and
// service tests. Stores hand out copies so callers cannot mutate shared
// state behind the mutex.
package memory

import "sync"

// UserOwned is implemented by stores whose rows belong to a user, so
// UserStore.Delete can mirror the schema's ON DELETE CASCADE.
type UserOwned interface {
	DeleteByUser(userID int64)
}

type seq struct {
	mu   sync.Mutex
	next int64
}

func (s *seq) id() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}
