package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pawly/internal/models/db_models"
)

type PetRepository interface {
	Insert(ctx context.Context, pet *db_models.Pet) error
	FindById(ctx context.Context, id string) (*db_models.Pet, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Pet, error)
	Update(ctx context.Context, pet *db_models.Pet) error
	Delete(ctx context.Context, id string) error
}

type petRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Insert(ctx context.Context, pet *db_models.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

func (r *petRepository) FindById(ctx context.Context, id string) (*db_models.Pet, error) {
	var pet db_models.Pet
	err := r.db.WithContext(ctx).First(&pet, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &pet, nil
}

func (r *petRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Pet, error) {
	var pets []db_models.Pet
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) Update(ctx context.Context, pet *db_models.Pet) error {
	return r.db.WithContext(ctx).Save(pet).Error
}

func (r *petRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&db_models.Pet{}, "id = ?", id).Error
}
