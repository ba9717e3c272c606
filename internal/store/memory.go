package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/avelichko/postbook/internal/models"
)

// MemoryStore is an in-memory Store used by tests and local experiments.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID map[string]int64
	posts  map[int64]models.Post
	groups map[int64]models.Group
	users  map[int64]models.User
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		nextID: map[string]int64{"posts": 1, "groups": 1, "users": 1},
		posts:  map[int64]models.Post{},
		groups: map[int64]models.Group{},
		users:  map[int64]models.User{},
	}
}

func (s *MemoryStore) next(entity string) int64 {
	id := s.nextID[entity]
	s.nextID[entity] = id + 1
	return id
}

// decorate fills the display-only Author and Group fields the way the
// Postgres join does.
func (s *MemoryStore) decorate(p models.Post) models.Post {
	if u, ok := s.users[p.AuthorID]; ok {
		p.Author = u
	}
	if p.GroupID != nil {
		if g, ok := s.groups[*p.GroupID]; ok {
			p.Group = &g
		}
	}
	return p
}

func (s *MemoryStore) Posts(_ context.Context, f PostFilter) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if f.AuthorID != nil && p.AuthorID != *f.AuthorID {
			continue
		}
		if f.GroupID != nil && (p.GroupID == nil || *p.GroupID != *f.GroupID) {
			continue
		}
		posts = append(posts, s.decorate(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}

func (s *MemoryStore) PostByID(_ context.Context, id int64) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = s.decorate(p)
	return &p, nil
}

func (s *MemoryStore) CreatePost(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.next("posts")
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.posts[p.ID] = *p
	return nil
}

func (s *MemoryStore) UpdatePost(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.posts[p.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Text = p.Text
	stored.GroupID = p.GroupID
	s.posts[p.ID] = stored
	return nil
}

func (s *MemoryStore) Groups(_ context.Context) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

func (s *MemoryStore) GroupBySlug(_ context.Context, slug string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if g.Slug == slug {
			return &g, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GroupByID(_ context.Context, id int64) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &g, nil
}

func (s *MemoryStore) CreateGroup(_ context.Context, g *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g.ID = s.next("groups")
	s.groups[g.ID] = *g
	return nil
}

func (s *MemoryStore) UserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return ErrDuplicate
		}
	}
	u.ID = s.next("users")
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = *u
	return nil
}
