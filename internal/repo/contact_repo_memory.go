package repo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"contact-book/internal/domain"
)

// MemoryRepo is an in-process ContactRepository with the same contract as
// the GORM one. It backs tests and the mock runtime; no persistence.
type MemoryRepo struct {
	mu   sync.Mutex
	rows map[string]domain.Contact
	seq  map[string]int64
	next int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: map[string]domain.Contact{}, seq: map[string]int64{}}
}

func (r *MemoryRepo) Create(c *domain.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(c)
	return nil
}

func (r *MemoryRepo) CreateBatch(cs []domain.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range cs {
		r.insert(&cs[i])
	}
	return nil
}

// insert mirrors the gorm auto-fields: id and CreatedAt/UpdatedAt are only
// assigned when unset, so tests can pin creation times.
func (r *MemoryRepo) insert(c *domain.Contact) {
	if strings.TrimSpace(c.ID) == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	r.next++
	r.seq[c.ID] = r.next
	r.rows[c.ID] = *c
}

func (r *MemoryRepo) List() ([]domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Contact, 0, len(r.rows))
	for _, c := range r.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return r.seq[a.ID] > r.seq[b.ID]
	})
	return out, nil
}

func (r *MemoryRepo) FindByIDs(ids []string) ([]domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Contact
	for _, id := range ids {
		if c, ok := r.rows[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *MemoryRepo) Update(id, name, number string) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	c.Name = name
	c.Number = number
	c.UpdatedAt = time.Now()
	r.rows[id] = c
	return &c, nil
}

func (r *MemoryRepo) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	delete(r.seq, id)
	return true, nil
}
