package state

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"kapitalbot/internal/domain"
)

// DefaultCapacity bounds the number of in-flight conversations held in
// memory. Evicting a stale conversation abandons that form, which is the
// same loss the process accepts on restart.
const DefaultCapacity = 1024

// Store keeps per-actor conversation state in memory. Mutations to a
// single actor's conversation are serialized through Update; distinct
// actors proceed concurrently.
type Store struct {
	conversations *lru.Cache[int64, *domain.Conversation]

	locks   map[int64]*sync.Mutex
	locksMu sync.Mutex
}

// NewStore creates a conversation store with the given capacity.
func NewStore(capacity int) (*Store, error) {
	cache, err := lru.New[int64, *domain.Conversation](capacity)
	if err != nil {
		return nil, err
	}
	return &Store{
		conversations: cache,
		locks:         make(map[int64]*sync.Mutex),
	}, nil
}

func (s *Store) lockFor(userID int64) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// Update runs fn with exclusive access to the actor's conversation,
// creating an empty one if none exists.
func (s *Store) Update(userID int64, fn func(c *domain.Conversation)) {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	conv, ok := s.conversations.Get(userID)
	if !ok {
		conv = &domain.Conversation{}
		s.conversations.Add(userID, conv)
	}
	fn(conv)
}

// Snapshot returns a copy of the actor's current conversation. An absent
// conversation reads as the zero value.
func (s *Store) Snapshot(userID int64) domain.Conversation {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	conv, ok := s.conversations.Get(userID)
	if !ok {
		return domain.Conversation{}
	}
	return *conv
}

// Reset clears the actor's conversation.
func (s *Store) Reset(userID int64) {
	s.Update(userID, func(c *domain.Conversation) {
		c.Reset()
	})
}
