package service

import (
	"strings"
	"time"

	"contact-book/internal/apperr"
	"contact-book/internal/domain"
)

const recentWindow = 7 * 24 * time.Hour

type ContactService struct {
	repo domain.ContactRepository
}

func NewContactService(repo domain.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) Create(name, number string) (*domain.Contact, error) {
	name, number = strings.TrimSpace(name), strings.TrimSpace(number)
	if name == "" || number == "" {
		return nil, apperr.BadRequest("name and number required")
	}
	c := &domain.Contact{Name: name, Number: number}
	if err := s.repo.Create(c); err != nil {
		return nil, apperr.Internal("failed to create contact", err)
	}
	return c, nil
}

// List returns the collection newest-first. q and filter are optional; both
// empty (filter "all") reproduce the raw store order untouched.
func (s *ContactService) List(q, filter string) ([]domain.Contact, error) {
	cs, err := s.repo.List()
	if err != nil {
		return nil, apperr.Internal("failed to fetch contacts", err)
	}
	return filterContacts(cs, q, filter, time.Now()), nil
}

func (s *ContactService) Update(id, name, number string) (*domain.Contact, error) {
	name, number = strings.TrimSpace(name), strings.TrimSpace(number)
	if name == "" || number == "" {
		return nil, apperr.BadRequest("name and number required")
	}
	c, err := s.repo.Update(id, name, number)
	if err != nil {
		return nil, apperr.Internal("failed to update contact", err)
	}
	if c == nil {
		return nil, apperr.NotFound("contact not found")
	}
	return c, nil
}

func (s *ContactService) Delete(id string) error {
	ok, err := s.repo.Delete(id)
	if err != nil {
		return apperr.Internal("failed to delete contact", err)
	}
	if !ok {
		return apperr.NotFound("contact not found")
	}
	return nil
}

// filterContacts is a pure function over a list snapshot. Search is a
// case-insensitive substring match on name OR number. Filter modes: "all",
// "recent" (created strictly within the last 7 days of now) and "old"
// (7 days or older; the exact boundary instant counts as old).
func filterContacts(cs []domain.Contact, q, filter string, now time.Time) []domain.Contact {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]domain.Contact, 0, len(cs))
	for _, c := range cs {
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Number), q) {
			continue
		}
		age := now.Sub(c.CreatedAt)
		switch filter {
		case "recent":
			if age >= recentWindow {
				continue
			}
		case "old":
			if age < recentWindow {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
