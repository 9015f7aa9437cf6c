package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawly/internal/models/db_models"
	"pawly/internal/models/request_models"
	mem "pawly/pkg/memcache"
	"pawly/pkg/utils"
)

type fakeAccountRepo struct {
	accounts map[string]*db_models.Account
	purged   []string
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*db_models.Account)}
}

func (f *fakeAccountRepo) InsertTx(account *db_models.Account, _ context.Context) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	f.accounts[account.ID.String()] = account
	return nil
}

func (f *fakeAccountRepo) FindById(_ context.Context, id string) (*db_models.Account, error) {
	return f.accounts[id], nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) UpdatePasswordByEmail(_ context.Context, email, passwordHash string) error {
	for _, a := range f.accounts {
		if a.Email == email {
			a.PasswordHash = passwordHash
		}
	}
	return nil
}

func (f *fakeAccountRepo) ListAll(_ context.Context) ([]db_models.Account, error) {
	var out []db_models.Account
	for _, a := range f.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAccountRepo) PurgeAccount(_ context.Context, id string) error {
	delete(f.accounts, id)
	f.purged = append(f.purged, id)
	return nil
}

type fakeDeletionRepo struct {
	requests map[uuid.UUID]*db_models.DeletionRequest
}

func newFakeDeletionRepo() *fakeDeletionRepo {
	return &fakeDeletionRepo{requests: make(map[uuid.UUID]*db_models.DeletionRequest)}
}

func (f *fakeDeletionRepo) Insert(_ context.Context, req *db_models.DeletionRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeDeletionRepo) FindPendingByAccount(_ context.Context, accountID uuid.UUID) (*db_models.DeletionRequest, error) {
	for _, r := range f.requests {
		if r.AccountID == accountID && r.Status == db_models.DeletionPending {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeDeletionRepo) ListDue(_ context.Context, now int64) ([]db_models.DeletionRequest, error) {
	var out []db_models.DeletionRequest
	for _, r := range f.requests {
		if r.Status == db_models.DeletionPending && r.PurgeAfter <= now {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeDeletionRepo) MarkStatus(_ context.Context, id uuid.UUID, status db_models.DeletionStatus) error {
	if r, ok := f.requests[id]; ok {
		r.Status = status
	}
	return nil
}

type accountTestEnv struct {
	svc          *AccountService
	accountRepo  *fakeAccountRepo
	deletionRepo *fakeDeletionRepo
	mail         *fakeMailService
}

func newAccountTestEnv(t *testing.T, now time.Time) *accountTestEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	accountRepo := newFakeAccountRepo()
	deletionRepo := newFakeDeletionRepo()
	mail := &fakeMailService{}

	svc := &AccountService{
		accountRepo:  accountRepo,
		deletionRepo: deletionRepo,
		mailService:  mail,
		resetTokens:  mem.NewResetTokens(),
		now:          func() time.Time { return now },
	}

	return &accountTestEnv{svc: svc, accountRepo: accountRepo, deletionRepo: deletionRepo, mail: mail}
}

func (e *accountTestEnv) createAccount(t *testing.T, email string) *db_models.Account {
	t.Helper()

	err := e.svc.CreateAccount(request_models.SignUpRequest{
		DisplayName: "Sam",
		Email:       email,
		Password:    "hunter2hunter2",
	})
	require.NoError(t, err)

	account, err := e.accountRepo.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, account)
	return account
}

func TestCreateAccountAndLogin(t *testing.T) {
	env := newAccountTestEnv(t, time.Now())
	env.createAccount(t, "sam@example.test")

	token, err := env.svc.Login(request_models.LoginRequest{
		Email:    "sam@example.test",
		Password: "hunter2hunter2",
	}, context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = env.svc.Login(request_models.LoginRequest{
		Email:    "sam@example.test",
		Password: "wrong",
	}, context.Background())
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	env := newAccountTestEnv(t, time.Now())
	env.createAccount(t, "sam@example.test")

	err := env.svc.CreateAccount(request_models.SignUpRequest{
		DisplayName: "Other Sam",
		Email:       "sam@example.test",
		Password:    "different-pass",
	})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestPasswordResetRoundTrip(t *testing.T) {
	env := newAccountTestEnv(t, time.Now())
	env.createAccount(t, "sam@example.test")

	require.NoError(t, env.svc.ForgotPassword("sam@example.test"))
	require.NotEmpty(t, env.mail.lastResetToken)

	err := env.svc.VerifyAndConsumeResetToken(request_models.ForgotPasswordRequest{
		Token:       env.mail.lastResetToken,
		NewPassword: "new-password-123",
	})
	require.NoError(t, err)

	_, err = env.svc.Login(request_models.LoginRequest{
		Email:    "sam@example.test",
		Password: "new-password-123",
	}, context.Background())
	assert.NoError(t, err)

	// token is single use
	err = env.svc.VerifyAndConsumeResetToken(request_models.ForgotPasswordRequest{
		Token:       env.mail.lastResetToken,
		NewPassword: "yet-another",
	})
	assert.ErrorIs(t, err, utils.ErrResetTokenInvalid)
}

func TestForgotPasswordSilentForUnknownEmail(t *testing.T) {
	env := newAccountTestEnv(t, time.Now())

	assert.NoError(t, env.svc.ForgotPassword("nobody@nowhere.test"))
	assert.Empty(t, env.mail.lastResetToken)
}

func TestRequestDeletionSchedulesPurge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	env := newAccountTestEnv(t, now)
	account := env.createAccount(t, "sam@example.test")

	resp, err := env.svc.RequestDeletion(context.Background(), account.ID, "moving away")
	require.NoError(t, err)

	assert.Equal(t, string(db_models.DeletionPending), resp.Status)
	assert.Equal(t, now.Unix(), resp.RequestedAt)
	assert.Equal(t, now.Add(deletionGracePeriod).Unix(), resp.PurgeAfter)
	assert.Equal(t, 1, env.mail.notifySent)

	_, err = env.svc.RequestDeletion(context.Background(), account.ID, "again")
	assert.ErrorIs(t, err, utils.ErrDeletionAlreadyRequested)
}

func TestCancelDeletion(t *testing.T) {
	env := newAccountTestEnv(t, time.Now())
	account := env.createAccount(t, "sam@example.test")

	err := env.svc.CancelDeletion(context.Background(), account.ID)
	assert.ErrorIs(t, err, utils.ErrDeletionNotPending)

	_, err = env.svc.RequestDeletion(context.Background(), account.ID, "")
	require.NoError(t, err)

	require.NoError(t, env.svc.CancelDeletion(context.Background(), account.ID))

	// canceled requests do not block a new one
	_, err = env.svc.RequestDeletion(context.Background(), account.ID, "")
	assert.NoError(t, err)
}

func TestPurgeDueDeletionsHonorsGraceWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	env := newAccountTestEnv(t, now)
	account := env.createAccount(t, "sam@example.test")

	_, err := env.svc.RequestDeletion(context.Background(), account.ID, "")
	require.NoError(t, err)

	// still inside the 30 day window
	purged, err := env.svc.PurgeDueDeletions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, purged)
	assert.Empty(t, env.accountRepo.purged)

	// one second past the window
	env.svc.now = func() time.Time { return now.Add(deletionGracePeriod + time.Second) }

	purged, err = env.svc.PurgeDueDeletions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
	assert.Equal(t, []string{account.ID.String()}, env.accountRepo.purged)

	// the purge is terminal; running it again is a no-op
	purged, err = env.svc.PurgeDueDeletions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, purged)
}
