package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pawly/internal/models/db_models"
	"pawly/internal/models/request_models"
	"pawly/pkg/utils"
)

// fakeClinicRepo keeps clinics in memory and mirrors the repository contract:
// verified-only finders, and referral provisioning on the first
// false->true transition inside UpdateApproval.
type fakeClinicRepo struct {
	clinics map[string]*db_models.Clinic
}

func newFakeClinicRepo() *fakeClinicRepo {
	return &fakeClinicRepo{clinics: make(map[string]*db_models.Clinic)}
}

func (f *fakeClinicRepo) Insert(_ context.Context, clinic *db_models.Clinic) error {
	if clinic.ID == uuid.Nil {
		clinic.ID = uuid.New()
	}
	f.clinics[clinic.ID.String()] = clinic
	return nil
}

func (f *fakeClinicRepo) FindByID(_ context.Context, id string) (*db_models.Clinic, error) {
	return f.clinics[id], nil
}

func (f *fakeClinicRepo) FindByEmail(_ context.Context, email string) (*db_models.Clinic, error) {
	for _, c := range f.clinics {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClinicRepo) FindVerifiedByID(_ context.Context, id string) (*db_models.Clinic, error) {
	c := f.clinics[id]
	if c == nil || !c.IsVerified {
		return nil, nil
	}
	return c, nil
}

func (f *fakeClinicRepo) FindByReferralCode(_ context.Context, code string) (*db_models.Clinic, error) {
	for _, c := range f.clinics {
		if c.IsVerified && c.ReferralCode != nil && *c.ReferralCode == code {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClinicRepo) ListVerified(_ context.Context, page, pageSize int) ([]db_models.Clinic, int64, error) {
	var out []db_models.Clinic
	for _, c := range f.clinics {
		if c.IsVerified {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeClinicRepo) SearchVerified(_ context.Context, _ string, page, pageSize int) ([]db_models.Clinic, int64, error) {
	return f.ListVerified(context.Background(), page, pageSize)
}

func (f *fakeClinicRepo) ListAll(_ context.Context, page, pageSize int) ([]db_models.Clinic, int64, error) {
	var out []db_models.Clinic
	for _, c := range f.clinics {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeClinicRepo) UpdateApproval(
	_ context.Context,
	id string,
	mutate func(*db_models.Clinic) (db_models.ApprovalChange, error),
) (*db_models.Clinic, error) {

	clinic, ok := f.clinics[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	change, err := mutate(clinic)
	if err != nil {
		return nil, err
	}

	if change.BecameVerified && clinic.ReferralCode == nil {
		code, err := utils.GenerateReferralCode(10)
		if err != nil {
			return nil, err
		}
		clinic.ReferralCode = &code
	}

	return clinic, nil
}

func (f *fakeClinicRepo) SetConfirmationToken(_ context.Context, id string, token string, sentAt int64) error {
	c, ok := f.clinics[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.EmailConfirmationToken = &token
	c.EmailConfirmationSentAt = &sentAt
	return nil
}

type fakeMailService struct {
	confirmSent    int
	lastToken      string
	notifySent     int
	lastResetToken string
}

func (f *fakeMailService) SendMailToNotifyUser(to, subject, body, ctaText, ctaURL string) error {
	f.notifySent++
	return nil
}

func (f *fakeMailService) SendMailToResetPassword(email, token string) error {
	f.lastResetToken = token
	return nil
}

func (f *fakeMailService) SendMailToConfirmClinic(email, clinicID, token string) error {
	f.confirmSent++
	f.lastToken = token
	return nil
}

func newClinicServiceForTest(repo *fakeClinicRepo, mail *fakeMailService, now time.Time) *ClinicService {
	return &ClinicService{
		clinicRepo:  repo,
		mailService: mail,
		now:         func() time.Time { return now },
	}
}

func registerTestClinic(t *testing.T, svc *ClinicService, repo *fakeClinicRepo) *db_models.Clinic {
	t.Helper()

	_, err := svc.RegisterClinic(context.Background(), request_models.RegisterClinicRequest{
		Name:    "Happy Paws",
		Email:   "contact@happypaws.test",
		Address: "12 Bark Street",
	})
	require.NoError(t, err)

	clinic, err := repo.FindByEmail(context.Background(), "contact@happypaws.test")
	require.NoError(t, err)
	require.NotNil(t, clinic)
	return clinic
}

func TestRegisterClinicStartsUnverified(t *testing.T) {
	repo := newFakeClinicRepo()
	mail := &fakeMailService{}
	svc := newClinicServiceForTest(repo, mail, time.Now())

	clinic := registerTestClinic(t, svc, repo)

	assert.False(t, clinic.EmailConfirmed)
	assert.False(t, clinic.AdminApproved)
	assert.False(t, clinic.IsVerified)
	assert.Nil(t, clinic.ReferralCode)
	assert.NotNil(t, clinic.EmailConfirmationToken)
	assert.Equal(t, 1, mail.confirmSent)
}

func TestRegisterClinicDuplicateEmail(t *testing.T) {
	repo := newFakeClinicRepo()
	svc := newClinicServiceForTest(repo, &fakeMailService{}, time.Now())

	registerTestClinic(t, svc, repo)

	_, err := svc.RegisterClinic(context.Background(), request_models.RegisterClinicRequest{
		Name:  "Copy Cat",
		Email: "contact@happypaws.test",
	})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestConfirmEmailValidToken(t *testing.T) {
	repo := newFakeClinicRepo()
	mail := &fakeMailService{}
	svc := newClinicServiceForTest(repo, mail, time.Now())

	clinic := registerTestClinic(t, svc, repo)

	err := svc.ConfirmEmail(context.Background(), clinic.ID.String(), mail.lastToken)
	require.NoError(t, err)

	assert.True(t, clinic.EmailConfirmed)
	assert.Nil(t, clinic.EmailConfirmationToken, "token is single use")
	assert.False(t, clinic.IsVerified, "email alone does not verify")
}

func TestConfirmEmailWrongToken(t *testing.T) {
	repo := newFakeClinicRepo()
	svc := newClinicServiceForTest(repo, &fakeMailService{}, time.Now())

	clinic := registerTestClinic(t, svc, repo)

	err := svc.ConfirmEmail(context.Background(), clinic.ID.String(), "not-the-token")
	assert.ErrorIs(t, err, utils.ErrTokenInvalid)
	assert.False(t, clinic.EmailConfirmed)
}

func TestConfirmEmailExpiredToken(t *testing.T) {
	repo := newFakeClinicRepo()
	mail := &fakeMailService{}
	registeredAt := time.Now()
	svc := newClinicServiceForTest(repo, mail, registeredAt)

	clinic := registerTestClinic(t, svc, repo)

	// one second past the 24h window
	svc.now = func() time.Time { return registeredAt.Add(confirmationWindow + time.Second) }

	err := svc.ConfirmEmail(context.Background(), clinic.ID.String(), mail.lastToken)
	assert.ErrorIs(t, err, utils.ErrTokenExpired)
	assert.False(t, clinic.EmailConfirmed)
}

func TestConfirmEmailTokenCannotBeReplayed(t *testing.T) {
	repo := newFakeClinicRepo()
	mail := &fakeMailService{}
	svc := newClinicServiceForTest(repo, mail, time.Now())

	clinic := registerTestClinic(t, svc, repo)
	token := mail.lastToken

	require.NoError(t, svc.ConfirmEmail(context.Background(), clinic.ID.String(), token))

	err := svc.ConfirmEmail(context.Background(), clinic.ID.String(), token)
	assert.ErrorIs(t, err, utils.ErrTokenInvalid)
}

func TestConfirmEmailUnknownClinic(t *testing.T) {
	repo := newFakeClinicRepo()
	svc := newClinicServiceForTest(repo, &fakeMailService{}, time.Now())

	err := svc.ConfirmEmail(context.Background(), uuid.NewString(), "whatever")
	assert.ErrorIs(t, err, utils.ErrClinicNotFound)
}

func TestVerificationRequiresBothSteps(t *testing.T) {
	repo := newFakeClinicRepo()
	mail := &fakeMailService{}
	svc := newClinicServiceForTest(repo, mail, time.Now())

	clinic := registerTestClinic(t, svc, repo)

	resp, err := svc.SetAdminApproval(context.Background(), clinic.ID.String(), true)
	require.NoError(t, err)
	assert.False(t, resp.IsVerified, "approval alone does not verify")
	assert.Nil(t, clinic.ReferralCode)

	require.NoError(t, svc.ConfirmEmail(context.Background(), clinic.ID.String(), mail.lastToken))

	assert.True(t, clinic.IsVerified)
	require.NotNil(t, clinic.ReferralCode, "referral code provisioned on first verification")
	assert.Len(t, *clinic.ReferralCode, 10)
}

func TestReferralCodeSurvivesRevocation(t *testing.T) {
	repo := newFakeClinicRepo()
	mail := &fakeMailService{}
	svc := newClinicServiceForTest(repo, mail, time.Now())

	clinic := registerTestClinic(t, svc, repo)
	require.NoError(t, svc.ConfirmEmail(context.Background(), clinic.ID.String(), mail.lastToken))
	_, err := svc.SetAdminApproval(context.Background(), clinic.ID.String(), true)
	require.NoError(t, err)

	code := *clinic.ReferralCode

	// revoke: clinic hides, code stays on the row but resolves nowhere
	resp, err := svc.SetAdminApproval(context.Background(), clinic.ID.String(), false)
	require.NoError(t, err)
	assert.False(t, resp.IsVerified)
	assert.Empty(t, resp.ReferralCode)
	require.NotNil(t, clinic.ReferralCode)

	_, err = svc.ResolveReferralCode(context.Background(), code)
	assert.ErrorIs(t, err, utils.ErrClinicNotFound)

	// re-approve: the same code comes back, no new one is drawn
	resp, err = svc.SetAdminApproval(context.Background(), clinic.ID.String(), true)
	require.NoError(t, err)
	assert.Equal(t, code, resp.ReferralCode)

	found, err := svc.ResolveReferralCode(context.Background(), code)
	require.NoError(t, err)
	assert.Equal(t, clinic.ID, found.ID)
}

func TestUnverifiedClinicIsInvisible(t *testing.T) {
	repo := newFakeClinicRepo()
	svc := newClinicServiceForTest(repo, &fakeMailService{}, time.Now())

	clinic := registerTestClinic(t, svc, repo)

	_, err := svc.GetClinicById(context.Background(), clinic.ID.String())
	assert.ErrorIs(t, err, utils.ErrClinicNotFound)

	listing, err := svc.ListClinics(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Empty(t, listing.Clinics)
	assert.Zero(t, listing.Total)
}

func TestListAllClinicsIncludesUnverified(t *testing.T) {
	repo := newFakeClinicRepo()
	svc := newClinicServiceForTest(repo, &fakeMailService{}, time.Now())

	registerTestClinic(t, svc, repo)

	all, total, err := svc.ListAllClinics(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.EqualValues(t, 1, total)
	assert.False(t, all[0].IsVerified)
}

func TestResendConfirmationIsSilentForUnknownEmail(t *testing.T) {
	repo := newFakeClinicRepo()
	mail := &fakeMailService{}
	svc := newClinicServiceForTest(repo, mail, time.Now())

	err := svc.ResendConfirmation(context.Background(), "nobody@nowhere.test")
	assert.NoError(t, err)
	assert.Zero(t, mail.confirmSent)
}

func TestResendConfirmationRotatesToken(t *testing.T) {
	repo := newFakeClinicRepo()
	mail := &fakeMailService{}
	svc := newClinicServiceForTest(repo, mail, time.Now())

	clinic := registerTestClinic(t, svc, repo)
	first := mail.lastToken

	require.NoError(t, svc.ResendConfirmation(context.Background(), clinic.Email))
	assert.Equal(t, 2, mail.confirmSent)
	assert.NotEqual(t, first, mail.lastToken)

	// the old link is dead
	err := svc.ConfirmEmail(context.Background(), clinic.ID.String(), first)
	assert.ErrorIs(t, err, utils.ErrTokenInvalid)

	require.NoError(t, svc.ConfirmEmail(context.Background(), clinic.ID.String(), mail.lastToken))
	assert.True(t, clinic.EmailConfirmed)
}

func TestPagingValidation(t *testing.T) {
	repo := newFakeClinicRepo()
	svc := newClinicServiceForTest(repo, &fakeMailService{}, time.Now())

	_, err := svc.ListClinics(context.Background(), 0, 20)
	assert.ErrorIs(t, err, utils.ErrInvalidPage)

	_, err = svc.ListClinics(context.Background(), 1, 0)
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)

	_, err = svc.ListClinics(context.Background(), 1, 101)
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)
}
