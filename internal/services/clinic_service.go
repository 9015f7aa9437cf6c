package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"pawly/internal/models/db_models"
	"pawly/internal/models/request_models"
	"pawly/internal/models/response_models"
	"pawly/internal/repositories"
	"pawly/pkg/utils"
)

// confirmation links die 24 hours after the send timestamp
const confirmationWindow = 24 * time.Hour

type ClinicServiceInterface interface {
	RegisterClinic(ctx context.Context, request request_models.RegisterClinicRequest) (response_models.AdminClinicResponse, error)
	ResendConfirmation(ctx context.Context, email string) error
	ConfirmEmail(ctx context.Context, clinicID, token string) error
	SetAdminApproval(ctx context.Context, clinicID string, approved bool) (response_models.AdminClinicResponse, error)

	GetClinicById(ctx context.Context, id string) (response_models.ClinicResponse, error)
	ListClinics(ctx context.Context, page, pageSize int) (response_models.ClinicListResponse, error)
	SearchClinics(ctx context.Context, query string, page, pageSize int) (response_models.ClinicListResponse, error)
	ResolveReferralCode(ctx context.Context, code string) (response_models.ClinicResponse, error)

	ListAllClinics(ctx context.Context, page, pageSize int) ([]response_models.AdminClinicResponse, int64, error)
}

type ClinicService struct {
	clinicRepo  repositories.ClinicRepository
	mailService IMailService
	now         func() time.Time
}

func NewClinicService(clinicRepo repositories.ClinicRepository, mailService IMailService) ClinicServiceInterface {
	return &ClinicService{
		clinicRepo:  clinicRepo,
		mailService: mailService,
		now:         time.Now,
	}
}

func (s *ClinicService) RegisterClinic(ctx context.Context, request request_models.RegisterClinicRequest) (response_models.AdminClinicResponse, error) {

	existing, err := s.clinicRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return response_models.AdminClinicResponse{}, utils.ErrDatabaseError
	}
	if existing != nil {
		return response_models.AdminClinicResponse{}, utils.ErrEmailAlreadyExists
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return response_models.AdminClinicResponse{}, utils.ErrDatabaseError
	}
	sentAt := s.now().Unix()

	clinic := &db_models.Clinic{
		Name:                    request.Name,
		Email:                   request.Email,
		Address:                 request.Address,
		Phone:                   request.Phone,
		Description:             request.Description,
		EmailConfirmationToken:  &token,
		EmailConfirmationSentAt: &sentAt,
	}

	if err := s.clinicRepo.Insert(ctx, clinic); err != nil {
		return response_models.AdminClinicResponse{}, utils.ErrDatabaseError
	}

	if err := s.mailService.SendMailToConfirmClinic(clinic.Email, clinic.ID.String(), token); err != nil {
		// the clinic can always ask for a new link
		log.Printf("Failed to send confirmation mail to %s: %v", clinic.Email, err)
	}

	return toAdminClinicResponse(clinic), nil
}

func (s *ClinicService) ResendConfirmation(ctx context.Context, email string) error {

	clinic, err := s.clinicRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if clinic == nil || clinic.EmailConfirmed {
		// do not reveal whether the address is registered
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}
	sentAt := s.now().Unix()

	if err := s.clinicRepo.SetConfirmationToken(ctx, clinic.ID.String(), token, sentAt); err != nil {
		return utils.ErrDatabaseError
	}

	if err := s.mailService.SendMailToConfirmClinic(clinic.Email, clinic.ID.String(), token); err != nil {
		log.Printf("Failed to send confirmation mail to %s: %v", clinic.Email, err)
	}

	return nil
}

// ConfirmEmail validates the token and its freshness window, marks the email
// confirmed and re-evaluates verification, all against the locked clinic row.
func (s *ClinicService) ConfirmEmail(ctx context.Context, clinicID, token string) error {

	now := s.now().Unix()

	_, err := s.clinicRepo.UpdateApproval(ctx, clinicID, func(c *db_models.Clinic) (db_models.ApprovalChange, error) {
		if c.EmailConfirmationToken == nil ||
			subtle.ConstantTimeCompare([]byte(*c.EmailConfirmationToken), []byte(token)) != 1 {
			return db_models.ApprovalChange{}, utils.ErrTokenInvalid
		}
		if c.EmailConfirmationSentAt == nil ||
			now > *c.EmailConfirmationSentAt+int64(confirmationWindow.Seconds()) {
			return db_models.ApprovalChange{}, utils.ErrTokenExpired
		}

		c.EmailConfirmed = true
		c.EmailConfirmationToken = nil // single use
		return c.Reevaluate(), nil
	})

	return s.translateApprovalError(err)
}

func (s *ClinicService) SetAdminApproval(ctx context.Context, clinicID string, approved bool) (response_models.AdminClinicResponse, error) {

	clinic, err := s.clinicRepo.UpdateApproval(ctx, clinicID, func(c *db_models.Clinic) (db_models.ApprovalChange, error) {
		c.AdminApproved = approved
		return c.Reevaluate(), nil
	})
	if err != nil {
		return response_models.AdminClinicResponse{}, s.translateApprovalError(err)
	}

	return toAdminClinicResponse(clinic), nil
}

func (s *ClinicService) translateApprovalError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.ErrClinicNotFound
	case errors.Is(err, utils.ErrTokenInvalid), errors.Is(err, utils.ErrTokenExpired):
		return err
	default:
		return utils.ErrDatabaseError
	}
}

func (s *ClinicService) GetClinicById(ctx context.Context, id string) (response_models.ClinicResponse, error) {

	clinic, err := s.clinicRepo.FindVerifiedByID(ctx, id)
	if err != nil {
		return response_models.ClinicResponse{}, utils.ErrDatabaseError
	}
	if clinic == nil {
		return response_models.ClinicResponse{}, utils.ErrClinicNotFound
	}

	return toClinicResponse(clinic), nil
}

func (s *ClinicService) ListClinics(ctx context.Context, page, pageSize int) (response_models.ClinicListResponse, error) {

	if err := validatePaging(page, pageSize); err != nil {
		return response_models.ClinicListResponse{}, err
	}

	clinics, total, err := s.clinicRepo.ListVerified(ctx, page, pageSize)
	if err != nil {
		return response_models.ClinicListResponse{}, utils.ErrDatabaseError
	}

	return toClinicListResponse(clinics, total, page, pageSize), nil
}

func (s *ClinicService) SearchClinics(ctx context.Context, query string, page, pageSize int) (response_models.ClinicListResponse, error) {

	if err := validatePaging(page, pageSize); err != nil {
		return response_models.ClinicListResponse{}, err
	}

	clinics, total, err := s.clinicRepo.SearchVerified(ctx, query, page, pageSize)
	if err != nil {
		return response_models.ClinicListResponse{}, utils.ErrDatabaseError
	}

	return toClinicListResponse(clinics, total, page, pageSize), nil
}

func (s *ClinicService) ResolveReferralCode(ctx context.Context, code string) (response_models.ClinicResponse, error) {

	clinic, err := s.clinicRepo.FindByReferralCode(ctx, code)
	if err != nil {
		return response_models.ClinicResponse{}, utils.ErrDatabaseError
	}
	if clinic == nil {
		return response_models.ClinicResponse{}, utils.ErrClinicNotFound
	}

	return toClinicResponse(clinic), nil
}

func (s *ClinicService) ListAllClinics(ctx context.Context, page, pageSize int) ([]response_models.AdminClinicResponse, int64, error) {

	if err := validatePaging(page, pageSize); err != nil {
		return nil, 0, err
	}

	clinics, total, err := s.clinicRepo.ListAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}

	result := make([]response_models.AdminClinicResponse, 0, len(clinics))
	for i := range clinics {
		result = append(result, toAdminClinicResponse(&clinics[i]))
	}

	return result, total, nil
}

func validatePaging(page, pageSize int) error {
	if page < 1 {
		return utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return utils.ErrInvalidPageSize
	}
	return nil
}

func toClinicResponse(c *db_models.Clinic) response_models.ClinicResponse {
	resp := response_models.ClinicResponse{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		Phone:       c.Phone,
		Description: c.Description,
	}
	if code, ok := c.ActiveReferralCode(); ok {
		resp.ReferralCode = code
	}
	return resp
}

func toAdminClinicResponse(c *db_models.Clinic) response_models.AdminClinicResponse {
	return response_models.AdminClinicResponse{
		ClinicResponse: toClinicResponse(c),
		Email:          c.Email,
		EmailConfirmed: c.EmailConfirmed,
		AdminApproved:  c.AdminApproved,
		IsVerified:     c.IsVerified,
	}
}

func toClinicListResponse(clinics []db_models.Clinic, total int64, page, pageSize int) response_models.ClinicListResponse {
	items := make([]response_models.ClinicResponse, 0, len(clinics))
	for i := range clinics {
		items = append(items, toClinicResponse(&clinics[i]))
	}
	return response_models.ClinicListResponse{
		Clinics:  items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
}
