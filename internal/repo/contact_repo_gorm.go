package repo

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"contact-book/internal/domain"
)

type ContactRepo struct{ db *gorm.DB }

func NewContactRepo(db *gorm.DB) *ContactRepo { return &ContactRepo{db: db} }

func (r *ContactRepo) Create(c *domain.Contact) error {
	if strings.TrimSpace(c.ID) == "" {
		c.ID = uuid.NewString()
	}
	return r.db.Create(c).Error
}

func (r *ContactRepo) CreateBatch(cs []domain.Contact) error {
	if len(cs) == 0 {
		return nil
	}
	for i := range cs {
		if strings.TrimSpace(cs[i].ID) == "" {
			cs[i].ID = uuid.NewString()
		}
	}
	return r.db.Create(&cs).Error
}

func (r *ContactRepo) List() ([]domain.Contact, error) {
	var cs []domain.Contact
	err := r.db.Order("created_at DESC").Find(&cs).Error
	return cs, err
}

func (r *ContactRepo) FindByIDs(ids []string) ([]domain.Contact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var cs []domain.Contact
	err := r.db.Where("id IN ?", ids).Find(&cs).Error
	return cs, err
}

func (r *ContactRepo) Update(id, name, number string) (*domain.Contact, error) {
	res := r.db.Model(&domain.Contact{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "number": number})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	var c domain.Contact
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepo) Delete(id string) (bool, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.Contact{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
