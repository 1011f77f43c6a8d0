package domain

import "time"

// Contact is the single persisted entity: a name/number pair. Name and
// number are always present and non-empty for a stored record; CreatedAt is
// set once and never modified.
type Contact struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Number    string    `gorm:"size:64;not null" json:"number"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Contact) TableName() string { return "contacts" }

type ContactRepository interface {
	Create(c *Contact) error
	CreateBatch(cs []Contact) error
	// List returns the full collection, newest first.
	List() ([]Contact, error)
	FindByIDs(ids []string) ([]Contact, error)
	// Update replaces name/number of an existing record and refreshes
	// UpdatedAt. Returns the stored record, or nil when the id is unknown.
	Update(id, name, number string) (*Contact, error)
	// Delete reports whether a record was actually removed.
	Delete(id string) (bool, error)
}
