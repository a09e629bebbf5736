// Package memory provides an in-memory implementation of the repository
// interfaces. It backs the test suite and lets the server run without a
// Postgres DSN. A single store-wide mutex serializes mutations, which makes
// the support-responded latch trivially linearizable: once a support comment
// commits the latch, every later read observes it.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
)

// Store holds all entities behind one lock.
type Store struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	byEmail  map[string]string
	tickets  map[string]domain.Ticket
	comments map[string]domain.Comment
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		byEmail:  make(map[string]string),
		tickets:  make(map[string]domain.Ticket),
		comments: make(map[string]domain.Comment),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository { return (*userStore)(s) }

// Tickets returns the ticket repository view of the store.
func (s *Store) Tickets() repository.TicketRepository { return (*ticketStore)(s) }

// Comments returns the comment repository view of the store.
func (s *Store) Comments() repository.CommentRepository { return (*commentStore)(s) }

type userStore Store

func (s *userStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return repository.ErrDuplicateEmail
	}
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	s.byEmail[key] = user.ID
	return nil
}

func (s *userStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (s *userStore) UpdateRole(_ context.Context, id string, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return nil
}

type ticketStore Store

func (s *ticketStore) Create(_ context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	ticket.ID = uuid.NewString()
	ticket.Version = 1
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = now
	}
	ticket.UpdatedAt = now
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (s *ticketStore) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ticket, nil
}

func (s *ticketStore) Update(_ context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.tickets[ticket.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if current.Version != ticket.Version {
		return repository.ErrVersionConflict
	}
	// The latch survives any concurrent CAS update.
	ticket.SupportResponded = ticket.SupportResponded || current.SupportResponded
	ticket.Version++
	ticket.UpdatedAt = time.Now()
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (s *ticketStore) SetSupportResponded(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !ticket.SupportResponded {
		ticket.SupportResponded = true
		ticket.UpdatedAt = time.Now()
		s.tickets[id] = ticket
	}
	return nil
}

func (s *ticketStore) Delete(_ context.Context, id string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.tickets, id)
	for cid, comment := range s.comments {
		if comment.TicketID == id {
			delete(s.comments, cid)
		}
	}
	return &ticket, nil
}

func (s *ticketStore) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var owned []domain.Ticket
	for _, ticket := range s.tickets {
		if ticket.OwnerID == ownerID {
			owned = append(owned, ticket)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	if offset >= len(owned) {
		return []domain.Ticket{}, nil
	}
	owned = owned[offset:]
	if limit > 0 && limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (s *ticketStore) ListClosedBetween(_ context.Context, from, to time.Time) ([]domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var closed []domain.Ticket
	for _, ticket := range s.tickets {
		if ticket.Status != domain.TicketStatusClosed {
			continue
		}
		if ticket.CreatedAt.Before(from) || ticket.CreatedAt.After(to) {
			continue
		}
		closed = append(closed, ticket)
	}
	sort.Slice(closed, func(i, j int) bool {
		return closed[i].CreatedAt.After(closed[j].CreatedAt)
	})
	return closed, nil
}

type commentStore Store

func (s *commentStore) Create(_ context.Context, comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	comment.ID = uuid.NewString()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now
	s.comments[comment.ID] = *comment
	return nil
}

func (s *commentStore) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comment, ok := s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &comment, nil
}

func (s *commentStore) Update(_ context.Context, comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[comment.ID]; !ok {
		return repository.ErrNotFound
	}
	comment.UpdatedAt = time.Now()
	s.comments[comment.ID] = *comment
	return nil
}

func (s *commentStore) Delete(_ context.Context, id string) (*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.comments, id)
	return &comment, nil
}

func (s *commentStore) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Comment
	for _, comment := range s.comments {
		if comment.TicketID == ticketID {
			result = append(result, comment)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
