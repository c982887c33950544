package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/application/usecase"
	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeWalletRepo struct {
	wallets map[string]*entity.Wallet
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{wallets: map[string]*entity.Wallet{}}
}

func (f *fakeWalletRepo) Get(userID string) (*entity.Wallet, error) {
	if w, ok := f.wallets[userID]; ok {
		cp := *w
		return &cp, nil
	}
	return &entity.Wallet{UserID: userID, Balance: decimal.Zero}, nil
}

func (f *fakeWalletRepo) GetForUpdate(userID string) (*entity.Wallet, error) {
	return f.Get(userID)
}

func (f *fakeWalletRepo) Upsert(w *entity.Wallet) error {
	cp := *w
	f.wallets[w.UserID] = &cp
	return nil
}

type fakePaymentRepo struct {
	requests map[string]*entity.PaymentRequest
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{requests: map[string]*entity.PaymentRequest{}}
}

func (f *fakePaymentRepo) Create(pr *entity.PaymentRequest) error {
	cp := *pr
	f.requests[pr.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) GetByID(id string) (*entity.PaymentRequest, error) {
	if pr, ok := f.requests[id]; ok {
		cp := *pr
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePaymentRepo) GetByIDForUpdate(id string) (*entity.PaymentRequest, error) {
	return f.GetByID(id)
}

func (f *fakePaymentRepo) Update(pr *entity.PaymentRequest) error {
	cp := *pr
	f.requests[pr.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) ListByUser(userID string, limit, offset int) ([]*entity.PaymentRequest, error) {
	var out []*entity.PaymentRequest
	for _, pr := range f.requests {
		if pr.UserID == userID {
			cp := *pr
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) ListByStatus(status string, limit, offset int) ([]*entity.PaymentRequest, error) {
	var out []*entity.PaymentRequest
	for _, pr := range f.requests {
		if pr.Status == status {
			cp := *pr
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Delete(id string) error { delete(f.users, id); return nil }
func (f *fakeUserRepo) ListByReferrer(referrerID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.ReferrerID == referrerID {
			out = append(out, u)
		}
	}
	return out, nil
}
func (f *fakeUserRepo) Downline(rootID string) ([]*entity.User, error) {
	direct, _ := f.ListByReferrer(rootID)
	out := append([]*entity.User{}, direct...)
	for _, u := range direct {
		sub, _ := f.Downline(u.ID)
		out = append(out, sub...)
	}
	return out, nil
}

// fakeWalletTx snapshots both stores before the callback and restores them when it
// fails, emulating a rollback.
type fakeWalletTx struct {
	wallets  *fakeWalletRepo
	payments *fakePaymentRepo
}

func (f *fakeWalletTx) RunWallet(ctx context.Context, fn func(repository.WalletRepository, repository.PaymentRequestRepository) error) error {
	walletSnap := map[string]*entity.Wallet{}
	for k, v := range f.wallets.wallets {
		cp := *v
		walletSnap[k] = &cp
	}
	paymentSnap := map[string]*entity.PaymentRequest{}
	for k, v := range f.payments.requests {
		cp := *v
		paymentSnap[k] = &cp
	}
	if err := fn(f.wallets, f.payments); err != nil {
		f.wallets.wallets = walletSnap
		f.payments.requests = paymentSnap
		return err
	}
	return nil
}

type walletHarness struct {
	uc       *usecase.WalletUseCase
	wallets  *fakeWalletRepo
	payments *fakePaymentRepo
}

func newWalletHarness() *walletHarness {
	wallets := newFakeWalletRepo()
	payments := newFakePaymentRepo()
	users := &fakeUserRepo{users: map[string]*entity.User{
		"user-1":  {ID: "user-1", Email: "a@x.in", Role: entity.RoleAssociate, Status: "active"},
		"admin-1": {ID: "admin-1", Email: "admin@x.in", Role: entity.RoleAdmin, Status: "active"},
	}}
	tx := &fakeWalletTx{wallets: wallets, payments: payments}
	return &walletHarness{
		uc:       usecase.NewWalletUseCase(tx, wallets, payments, users),
		wallets:  wallets,
		payments: payments,
	}
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestCreatePaymentRequest_StartsPending(t *testing.T) {
	h := newWalletHarness()

	pr, err := h.uc.CreatePaymentRequest("user-1", dto.CreatePaymentRequestRequest{
		Amount: decimal.RequireFromString("2500.00"),
		Note:   "commission payout",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentPending, pr.Status)
	assert.Equal(t, "user-1", pr.UserID)
	assert.True(t, pr.Amount.Equal(decimal.RequireFromString("2500.00")))
	assert.Empty(t, pr.DecidedBy)
	assert.Nil(t, pr.DecidedAt)
}

func TestCreatePaymentRequest_RejectsNonPositiveAmount(t *testing.T) {
	h := newWalletHarness()

	_, err := h.uc.CreatePaymentRequest("user-1", dto.CreatePaymentRequestRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.uc.CreatePaymentRequest("user-1", dto.CreatePaymentRequestRequest{
		Amount: decimal.NewFromInt(-100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePaymentRequest_UnknownUser(t *testing.T) {
	h := newWalletHarness()

	_, err := h.uc.CreatePaymentRequest("ghost", dto.CreatePaymentRequestRequest{
		Amount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestApprove_CreditsWalletAndFlipsStatus(t *testing.T) {
	h := newWalletHarness()
	ctx := context.Background()

	pr, err := h.uc.CreatePaymentRequest("user-1", dto.CreatePaymentRequestRequest{
		Amount: decimal.RequireFromString("1500.50"),
	})
	require.NoError(t, err)

	decided, err := h.uc.Approve(ctx, pr.ID, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentApproved, decided.Status)
	assert.Equal(t, "admin-1", decided.DecidedBy)
	require.NotNil(t, decided.DecidedAt)
	assert.WithinDuration(t, time.Now(), *decided.DecidedAt, time.Minute)

	wallet, err := h.uc.GetWallet("user-1")
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.RequireFromString("1500.50")),
		"balance = %s", wallet.Balance)
}

func TestApprove_AccumulatesAcrossRequests(t *testing.T) {
	h := newWalletHarness()
	ctx := context.Background()

	for _, amount := range []string{"100.25", "200.50", "300.25"} {
		pr, err := h.uc.CreatePaymentRequest("user-1", dto.CreatePaymentRequestRequest{
			Amount: decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
		_, err = h.uc.Approve(ctx, pr.ID, "admin-1")
		require.NoError(t, err)
	}

	wallet, err := h.uc.GetWallet("user-1")
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.RequireFromString("601.00")),
		"balance = %s", wallet.Balance)
}

func TestApprove_AlreadyDecided_Conflict(t *testing.T) {
	h := newWalletHarness()
	ctx := context.Background()

	pr, err := h.uc.CreatePaymentRequest("user-1", dto.CreatePaymentRequestRequest{
		Amount: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	_, err = h.uc.Approve(ctx, pr.ID, "admin-1")
	require.NoError(t, err)

	// Second decision on the same request must not credit again.
	_, err = h.uc.Approve(ctx, pr.ID, "admin-1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	wallet, err := h.uc.GetWallet("user-1")
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(1000)),
		"double approval must not double-credit, balance = %s", wallet.Balance)
}

func TestReject_LeavesWalletUntouched(t *testing.T) {
	h := newWalletHarness()
	ctx := context.Background()

	pr, err := h.uc.CreatePaymentRequest("user-1", dto.CreatePaymentRequestRequest{
		Amount: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	decided, err := h.uc.Reject(ctx, pr.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentRejected, decided.Status)

	wallet, err := h.uc.GetWallet("user-1")
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())

	// A rejected request cannot be approved afterwards.
	_, err = h.uc.Approve(ctx, pr.ID, "admin-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestApprove_UnknownRequest(t *testing.T) {
	h := newWalletHarness()

	_, err := h.uc.Approve(context.Background(), "missing", "admin-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetWallet_ZeroForNewUser(t *testing.T) {
	h := newWalletHarness()

	wallet, err := h.uc.GetWallet("user-1")
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())
}
