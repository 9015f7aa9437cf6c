package repositories

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pawly/internal/models/db_models"
	"pawly/pkg/utils"
)

// referral code provisioning retries on collision instead of failing the
// approval transaction
const maxReferralAttempts = 3

type ClinicRepository interface {
	Insert(ctx context.Context, clinic *db_models.Clinic) error

	// FindByID is the privileged path; it ignores verification state.
	FindByID(ctx context.Context, id string) (*db_models.Clinic, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Clinic, error)

	// Verified-only read paths. A non-verified clinic is indistinguishable
	// from a missing one here.
	FindVerifiedByID(ctx context.Context, id string) (*db_models.Clinic, error)
	FindByReferralCode(ctx context.Context, code string) (*db_models.Clinic, error)
	ListVerified(ctx context.Context, page, pageSize int) ([]db_models.Clinic, int64, error)
	SearchVerified(ctx context.Context, query string, page, pageSize int) ([]db_models.Clinic, int64, error)

	// ListAll includes unverified rows; callers must gate it behind privilege.
	ListAll(ctx context.Context, page, pageSize int) ([]db_models.Clinic, int64, error)

	// UpdateApproval runs mutate against the locked clinic row in one
	// transaction. When the mutation reports a false->true verification
	// transition and no referral code exists yet, one is provisioned inside
	// the same transaction.
	UpdateApproval(ctx context.Context, id string, mutate func(*db_models.Clinic) (db_models.ApprovalChange, error)) (*db_models.Clinic, error)

	// SetConfirmationToken stores a fresh token and send timestamp.
	SetConfirmationToken(ctx context.Context, id string, token string, sentAt int64) error
}

type clinicRepository struct {
	db *gorm.DB
}

func NewClinicRepository(db *gorm.DB) ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) Insert(ctx context.Context, clinic *db_models.Clinic) error {
	return r.db.WithContext(ctx).Create(clinic).Error
}

func (r *clinicRepository) FindByID(ctx context.Context, id string) (*db_models.Clinic, error) {
	var clinic db_models.Clinic
	err := r.db.WithContext(ctx).First(&clinic, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &clinic, nil
}

func (r *clinicRepository) FindByEmail(ctx context.Context, email string) (*db_models.Clinic, error) {
	var clinic db_models.Clinic
	err := r.db.WithContext(ctx).First(&clinic, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &clinic, nil
}

func (r *clinicRepository) FindVerifiedByID(ctx context.Context, id string) (*db_models.Clinic, error) {
	var clinic db_models.Clinic
	err := r.db.WithContext(ctx).
		First(&clinic, "id = ? AND is_verified = ?", id, true).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &clinic, nil
}

func (r *clinicRepository) FindByReferralCode(ctx context.Context, code string) (*db_models.Clinic, error) {
	var clinic db_models.Clinic
	err := r.db.WithContext(ctx).
		First(&clinic, "referral_code = ? AND is_verified = ?", code, true).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &clinic, nil
}

func (r *clinicRepository) ListVerified(ctx context.Context, page, pageSize int) ([]db_models.Clinic, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("is_verified = ?", true), page, pageSize)
}

func (r *clinicRepository) ListAll(ctx context.Context, page, pageSize int) ([]db_models.Clinic, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx), page, pageSize)
}

func (r *clinicRepository) SearchVerified(ctx context.Context, query string, page, pageSize int) ([]db_models.Clinic, int64, error) {
	// search is a restriction of the verified listing, never a wider index
	pattern := "%" + query + "%"
	q := r.db.WithContext(ctx).
		Where("is_verified = ?", true).
		Where("name ILIKE ? OR address ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	return r.list(ctx, q, page, pageSize)
}

func (r *clinicRepository) list(ctx context.Context, q *gorm.DB, page, pageSize int) ([]db_models.Clinic, int64, error) {
	var total int64
	if err := q.Model(&db_models.Clinic{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clinics []db_models.Clinic
	err := q.Model(&db_models.Clinic{}).
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&clinics).Error
	if err != nil {
		return nil, 0, err
	}

	return clinics, total, nil
}

func (r *clinicRepository) UpdateApproval(
	ctx context.Context,
	id string,
	mutate func(*db_models.Clinic) (db_models.ApprovalChange, error),
) (*db_models.Clinic, error) {

	var out *db_models.Clinic
	var err error

	for attempt := 0; attempt < maxReferralAttempts; attempt++ {
		out, err = r.updateApprovalOnce(ctx, id, mutate)
		if err == nil || !isUniqueViolation(err) {
			return out, err
		}
		// referral code collided with another clinic; a fresh code is drawn
		// on the next round
	}

	return nil, err
}

func (r *clinicRepository) updateApprovalOnce(
	ctx context.Context,
	id string,
	mutate func(*db_models.Clinic) (db_models.ApprovalChange, error),
) (*db_models.Clinic, error) {

	var clinic db_models.Clinic

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&clinic, "id = ?", id).Error; err != nil {
			return err
		}

		change, err := mutate(&clinic)
		if err != nil {
			return err
		}

		// Provision once, on the first transition into verified. The code is
		// never removed on the way back out.
		if change.BecameVerified && clinic.ReferralCode == nil {
			code, err := utils.GenerateReferralCode(10)
			if err != nil {
				return err
			}
			clinic.ReferralCode = &code
		}

		return tx.Save(&clinic).Error
	})
	if err != nil {
		return nil, err
	}

	return &clinic, nil
}

func (r *clinicRepository) SetConfirmationToken(ctx context.Context, id string, token string, sentAt int64) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Clinic{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email_confirmation_token":   token,
			"email_confirmation_sent_at": sentAt,
		}).Error
}

// isUniqueViolation matches Postgres unique-constraint errors from either the
// pq driver or gorm's translated variant.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
