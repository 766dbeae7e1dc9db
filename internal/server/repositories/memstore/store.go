// Package memstore holds the in-memory dataset shared by the memory
// repositories. It mirrors the relational constraints of the PostgreSQL
// schema that the services rely on: auto-increment ids, unique username and
// email, and owner foreign keys.
package memstore

import (
	"sync"

	"github.com/dmitrijs2005/focusflow/internal/server/models"
)

// Store is safe for concurrent use. Repositories take Mu for every access.
type Store struct {
	Mu sync.RWMutex

	Accounts map[int64]models.Account
	Tasks    map[int64]models.Task
	Sessions map[string]models.Session

	lastAccountID int64
	lastTaskID    int64
}

func New() *Store {
	return &Store{
		Accounts: make(map[int64]models.Account),
		Tasks:    make(map[int64]models.Task),
		Sessions: make(map[string]models.Session),
	}
}

// NextAccountID and NextTaskID behave like BIGSERIAL: ids are never reused.
// Callers must hold Mu for writing.
func (s *Store) NextAccountID() int64 {
	s.lastAccountID++
	return s.lastAccountID
}

func (s *Store) NextTaskID() int64 {
	s.lastTaskID++
	return s.lastTaskID
}
