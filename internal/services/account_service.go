package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"pawly/internal/models/db_models"
	"pawly/internal/models/request_models"
	"pawly/internal/models/response_models"
	"pawly/internal/repositories"
	mem "pawly/pkg/memcache"
	"pawly/pkg/utils"
)

// deletion requests sit in a grace window before the purge may run
const deletionGracePeriod = 30 * 24 * time.Hour

const resetTokenTTL = 15 * time.Minute

type AccountServiceInterface interface {
	Login(request request_models.LoginRequest, ctx context.Context) (string, error)
	CreateAccount(request request_models.SignUpRequest) error
	ForgotPassword(email string) error
	VerifyAndConsumeResetToken(request request_models.ForgotPasswordRequest) error
	GetAllAccounts(ctx context.Context) ([]response_models.AccountResponse, error)

	RequestDeletion(ctx context.Context, accountID uuid.UUID, reason string) (response_models.DeletionRequestResponse, error)
	CancelDeletion(ctx context.Context, accountID uuid.UUID) error
	PurgeDueDeletions(ctx context.Context) (int, error)
}

type AccountService struct {
	accountRepo  repositories.AccountRepository
	deletionRepo repositories.DeletionRequestRepository
	mailService  IMailService
	resetTokens  mem.ResetTokenStore
	now          func() time.Time
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	deletionRepo repositories.DeletionRequestRepository,
	mailService IMailService,
	resetTokens mem.ResetTokenStore,
) AccountServiceInterface {
	return &AccountService{
		accountRepo:  accountRepo,
		deletionRepo: deletionRepo,
		mailService:  mailService,
		resetTokens:  resetTokens,
		now:          time.Now,
	}
}

func (a *AccountService) Login(request request_models.LoginRequest, ctx context.Context) (string, error) {

	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}

	if account == nil {
		return "", utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

func (a *AccountService) CreateAccount(request request_models.SignUpRequest) error {

	existingAccount, err := a.accountRepo.FindByEmail(context.Background(), request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         "user", // default role
	}

	if err := a.accountRepo.InsertTx(newAccount, context.Background()); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) ForgotPassword(email string) error {

	account, err := a.accountRepo.FindByEmail(context.Background(), email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		// do not reveal whether the address is registered
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}

	a.resetTokens.Set(token, account.Email, resetTokenTTL)

	if err := a.mailService.SendMailToResetPassword(account.Email, token); err != nil {
		log.Printf("Failed to send reset mail to %s: %v", account.Email, err)
	}

	return nil
}

func (a *AccountService) VerifyAndConsumeResetToken(request request_models.ForgotPasswordRequest) error {

	email := a.resetTokens.Consume(request.Token)
	if email == "" {
		return utils.ErrResetTokenInvalid
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.accountRepo.UpdatePasswordByEmail(context.Background(), email, hashedPassword); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) GetAllAccounts(ctx context.Context) ([]response_models.AccountResponse, error) {

	accounts, err := a.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		result = append(result, response_models.AccountResponse{
			ID:    acc.ID,
			Name:  acc.Name,
			Email: acc.Email,
			Role:  acc.Role,
		})
	}

	return result, nil
}

func (a *AccountService) RequestDeletion(ctx context.Context, accountID uuid.UUID, reason string) (response_models.DeletionRequestResponse, error) {

	account, err := a.accountRepo.FindById(ctx, accountID.String())
	if err != nil {
		return response_models.DeletionRequestResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.DeletionRequestResponse{}, utils.ErrAccountNotFound
	}

	pending, err := a.deletionRepo.FindPendingByAccount(ctx, accountID)
	if err != nil {
		return response_models.DeletionRequestResponse{}, utils.ErrDatabaseError
	}
	if pending != nil {
		return response_models.DeletionRequestResponse{}, utils.ErrDeletionAlreadyRequested
	}

	now := a.now()
	req := &db_models.DeletionRequest{
		AccountID:   accountID,
		Reason:      reason,
		RequestedAt: now.Unix(),
		PurgeAfter:  now.Add(deletionGracePeriod).Unix(),
		Status:      db_models.DeletionPending,
	}

	if err := a.deletionRepo.Insert(ctx, req); err != nil {
		return response_models.DeletionRequestResponse{}, utils.ErrDatabaseError
	}

	if err := a.mailService.SendMailToNotifyUser(
		account.Email,
		"Account deletion requested",
		"Your account is scheduled for deletion in 30 days. Log in and cancel the request if you change your mind.",
		"", ""); err != nil {
		log.Printf("Failed to send deletion notice to %s: %v", account.Email, err)
	}

	return response_models.DeletionRequestResponse{
		ID:          req.ID,
		Status:      string(req.Status),
		RequestedAt: req.RequestedAt,
		PurgeAfter:  req.PurgeAfter,
	}, nil
}

func (a *AccountService) CancelDeletion(ctx context.Context, accountID uuid.UUID) error {

	pending, err := a.deletionRepo.FindPendingByAccount(ctx, accountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if pending == nil {
		return utils.ErrDeletionNotPending
	}

	if err := a.deletionRepo.MarkStatus(ctx, pending.ID, db_models.DeletionCanceled); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

// PurgeDueDeletions runs the purge for every pending request whose grace
// window has elapsed. Returns the number of accounts purged.
func (a *AccountService) PurgeDueDeletions(ctx context.Context) (int, error) {

	due, err := a.deletionRepo.ListDue(ctx, a.now().Unix())
	if err != nil {
		return 0, utils.ErrDatabaseError
	}

	purged := 0
	for _, req := range due {
		if err := a.accountRepo.PurgeAccount(ctx, req.AccountID.String()); err != nil {
			log.Printf("Failed to purge account %s: %v", req.AccountID, err)
			continue
		}
		if err := a.deletionRepo.MarkStatus(ctx, req.ID, db_models.DeletionCompleted); err != nil {
			log.Printf("Failed to mark deletion request %s completed: %v", req.ID, err)
			continue
		}
		purged++
	}

	return purged, nil
}
