package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawly/internal/models/db_models"
	"pawly/pkg/utils"
)

// fakeUsageRepo reproduces the ledger contract in memory: lazy row
// materialization and a guarded, atomic increment per charge.
type fakeUsageRepo struct {
	mu   sync.Mutex
	rows map[string]*db_models.AIUsage
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{rows: make(map[string]*db_models.AIUsage)}
}

func usageKey(accountID uuid.UUID, month time.Time) string {
	return accountID.String() + "|" + month.Format("2006-01")
}

func (f *fakeUsageRepo) FindForMonth(_ context.Context, accountID uuid.UUID, month time.Time) (*db_models.AIUsage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[usageKey(accountID, month)]
	if !ok {
		return nil, nil
	}
	dup := *row
	return &dup, nil
}

func (f *fakeUsageRepo) ChargeOne(_ context.Context, accountID uuid.UUID, month time.Time, kind db_models.ArtifactKind, limit int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := usageKey(accountID, month)
	row, ok := f.rows[key]
	if !ok {
		row = &db_models.AIUsage{AccountID: accountID, Month: month}
		f.rows[key] = row
	}

	if row.Used(kind) >= limit {
		return &utils.QuotaExceededError{Kind: string(kind), Limit: limit}
	}
	if kind == db_models.KindHealth {
		row.HealthUsed++
	} else {
		row.MealUsed++
	}
	return nil
}

type fakePlanRepo struct {
	plan *db_models.Plan
}

func (f *fakePlanRepo) GetPlanInfoById(_ context.Context, _ string) (*db_models.Plan, error) {
	return f.plan, nil
}

func (f *fakePlanRepo) GetAllPlans(_ context.Context) ([]db_models.Plan, error) {
	if f.plan == nil {
		return nil, nil
	}
	return []db_models.Plan{*f.plan}, nil
}

func (f *fakePlanRepo) GetActivePlanForAccount(_ context.Context, _ uuid.UUID) (*db_models.Plan, error) {
	return f.plan, nil
}

func newQuotaServiceForTest(usage *fakeUsageRepo, plan *db_models.Plan, now time.Time) *QuotaService {
	return &QuotaService{
		usageRepo: usage,
		planRepo:  &fakePlanRepo{plan: plan},
		now:       func() time.Time { return now },
	}
}

func TestQuotaFallbackLimitsWithoutPlan(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	svc := newQuotaServiceForTest(newFakeUsageRepo(), nil, time.Now())

	for i := 0; i < FallbackMealLimit; i++ {
		require.NoError(t, svc.Check(ctx, accountID, db_models.KindMeal, false))
		require.NoError(t, svc.Charge(ctx, accountID, db_models.KindMeal, false))
	}

	err := svc.Check(ctx, accountID, db_models.KindMeal, false)
	var quotaErr *utils.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, string(db_models.KindMeal), quotaErr.Kind)
	assert.Equal(t, FallbackMealLimit, quotaErr.Limit)

	// health has its own, tighter fallback and its own counter
	require.NoError(t, svc.Check(ctx, accountID, db_models.KindHealth, false))
	require.NoError(t, svc.Charge(ctx, accountID, db_models.KindHealth, false))
	err = svc.Check(ctx, accountID, db_models.KindHealth, false)
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, FallbackHealthLimit, quotaErr.Limit)
}

func TestQuotaPlanLimits(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	plan := &db_models.Plan{MonthlyMealLimit: 10, MonthlyHealthLimit: 4}
	svc := newQuotaServiceForTest(newFakeUsageRepo(), plan, time.Now())

	for i := 0; i < 10; i++ {
		require.NoError(t, svc.Charge(ctx, accountID, db_models.KindMeal, false))
	}

	err := svc.Check(ctx, accountID, db_models.KindMeal, false)
	var quotaErr *utils.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 10, quotaErr.Limit)
}

func TestQuotaUnlimitedPlanIsNotTracked(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	usage := newFakeUsageRepo()
	plan := &db_models.Plan{UnlimitedMeals: true, MonthlyHealthLimit: 4}
	svc := newQuotaServiceForTest(usage, plan, time.Now())

	for i := 0; i < 50; i++ {
		require.NoError(t, svc.Check(ctx, accountID, db_models.KindMeal, false))
		require.NoError(t, svc.Charge(ctx, accountID, db_models.KindMeal, false))
	}

	assert.Empty(t, usage.rows, "unlimited usage must not materialize ledger rows")
}

func TestQuotaOperatorBypassesCheckAndCharge(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	usage := newFakeUsageRepo()
	svc := newQuotaServiceForTest(usage, nil, time.Now())

	for i := 0; i < FallbackMealLimit*2; i++ {
		require.NoError(t, svc.Check(ctx, accountID, db_models.KindMeal, true))
		require.NoError(t, svc.Charge(ctx, accountID, db_models.KindMeal, true))
	}

	assert.Empty(t, usage.rows, "operator usage must not be tracked")
}

func TestQuotaResetsEachMonth(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	usage := newFakeUsageRepo()

	june := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := newQuotaServiceForTest(usage, nil, june)

	for i := 0; i < FallbackMealLimit; i++ {
		require.NoError(t, svc.Charge(ctx, accountID, db_models.KindMeal, false))
	}
	require.Error(t, svc.Check(ctx, accountID, db_models.KindMeal, false))

	// the calendar rolls over, the ledger keys on the new month
	svc.now = func() time.Time { return time.Date(2025, 7, 1, 0, 0, 1, 0, time.UTC) }

	assert.NoError(t, svc.Check(ctx, accountID, db_models.KindMeal, false))
	assert.NoError(t, svc.Charge(ctx, accountID, db_models.KindMeal, false))
}

func TestQuotaStatusReportsUsageAndLimits(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	usage := newFakeUsageRepo()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := newQuotaServiceForTest(usage, nil, now)

	require.NoError(t, svc.Charge(ctx, accountID, db_models.KindMeal, false))
	require.NoError(t, svc.Charge(ctx, accountID, db_models.KindMeal, false))

	status, err := svc.Status(ctx, accountID)
	require.NoError(t, err)

	assert.Equal(t, "2025-06", status.Month)
	assert.Equal(t, 2, status.MealUsed)
	assert.Equal(t, FallbackMealLimit, status.MealLimit)
	assert.Zero(t, status.HealthUsed)
	assert.Equal(t, FallbackHealthLimit, status.HealthLimit)
}

func TestQuotaStatusUnlimitedReportsMinusOne(t *testing.T) {
	ctx := context.Background()
	plan := &db_models.Plan{UnlimitedMeals: true, UnlimitedHealth: true}
	svc := newQuotaServiceForTest(newFakeUsageRepo(), plan, time.Now())

	status, err := svc.Status(ctx, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, -1, status.MealLimit)
	assert.Equal(t, -1, status.HealthLimit)
}
