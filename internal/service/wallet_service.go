package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"token-shop/internal/core/domain"
	"token-shop/internal/core/ports"
	"token-shop/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletOptions configures newly opened wallets.
type WalletOptions struct {
	InitialBalance decimal.Decimal
	Currency       string
}

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	gateway    ports.PaymentGateway
	notifier   ports.NotificationService
	locks      *keyedMutex
	opts       WalletOptions
	now        func() time.Time
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	gateway ports.PaymentGateway,
	notifier ports.NotificationService,
	opts WalletOptions,
	log zerolog.Logger,
) *WalletServiceImpl {
	if opts.Currency == "" {
		opts.Currency = domain.DefaultCurrency
	}
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		transactor: transactor,
		gateway:    gateway,
		notifier:   notifier,
		locks:      newKeyedMutex(),
		opts:       opts,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

func walletLockKey(ownerID uuid.UUID) string {
	return "wallet:" + ownerID.String()
}

// Statement returns the wallet and its ledger, newest entry first. The wallet
// is opened on first access.
func (s *WalletServiceImpl) Statement(ctx context.Context, ownerID uuid.UUID) (*domain.WalletStatement, error) {
	unlock := s.locks.Lock(walletLockKey(ownerID))
	defer unlock()

	wallet, err := s.openWallet(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	txns, err := s.txRepo.ListByWallet(ctx, wallet.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}

	return &domain.WalletStatement{Wallet: wallet, Transactions: txns}, nil
}

// AddFunds credits the wallet and records a deposit.
func (s *WalletServiceImpl) AddFunds(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error) {
	return s.apply(ctx, ownerID, domain.TransactionTypeDeposit, amount, domain.DescriptionDeposit)
}

// WithdrawFunds debits the wallet and records a withdrawal.
func (s *WalletServiceImpl) WithdrawFunds(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error) {
	return s.apply(ctx, ownerID, domain.TransactionTypeWithdrawal, amount, domain.DescriptionWithdrawal)
}

// MakePurchase debits the wallet and records a purchase with the caller's
// description. On WAL_002 neither balance nor ledger change.
func (s *WalletServiceImpl) MakePurchase(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	return s.apply(ctx, ownerID, domain.TransactionTypePurchase, amount, description)
}

// ChangeCurrency sets the display currency. The balance is not converted.
func (s *WalletServiceImpl) ChangeCurrency(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error) {
	code, err := domain.NormalizeCurrency(currency)
	if err != nil {
		return nil, apperror.ErrUnknownCurrency(currency)
	}

	unlock := s.locks.Lock(walletLockKey(ownerID))
	defer unlock()

	if _, err := s.openWallet(ctx, ownerID); err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}

	now := s.now()
	if err := s.walletRepo.UpdateCurrency(ctx, dbTx, wallet.ID, code, now); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update currency: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	wallet.Currency = code
	wallet.UpdatedAt = now

	reqLog(ctx, s.log).Info().
		Str("owner_id", ownerID.String()).
		Str("currency", code).
		Msg("wallet currency changed")

	return wallet, nil
}

// TopUp charges the payment method and credits the converted token amount.
func (s *WalletServiceImpl) TopUp(ctx context.Context, req ports.TopUpRequest) (*ports.TopUpResult, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	if err := domain.ValidatePaymentDetails(req.Method, req.Mpesa, req.Card); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	fiat := req.Method.FiatCurrency()
	tokens, err := domain.ConvertToTokens(req.Amount, fiat)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("convert %s: %w", fiat, err))
	}
	if !tokens.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	ref, err := s.gateway.Charge(ctx, req)
	if err != nil {
		reqLog(ctx, s.log).Warn().
			Err(err).
			Str("owner_id", req.OwnerID.String()).
			Str("method", string(req.Method)).
			Msg("top-up charge declined")
		return nil, apperror.ErrTopUpDeclined(err)
	}

	txn, err := s.AddFunds(ctx, req.OwnerID, tokens)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("You've added %s tokens to your wallet using %s.", tokens.StringFixed(0), req.Method.Label())
		if _, err := s.notifier.Add(ctx, req.OwnerID, domain.NotificationSuccess, "Wallet Top-up Successful", msg); err != nil {
			reqLog(ctx, s.log).Warn().Err(err).Str("owner_id", req.OwnerID.String()).Msg("failed to add top-up notification")
		}
	}

	return &ports.TopUpResult{
		Transaction:  txn,
		Tokens:       tokens,
		FiatAmount:   req.Amount,
		FiatCurrency: fiat,
		Reference:    ref,
	}, nil
}

// apply runs one balance mutation with pessimistic locking. Exactly one
// ledger entry is written on success and none on failure.
func (s *WalletServiceImpl) apply(ctx context.Context, ownerID uuid.UUID, txType domain.TransactionType, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, ledgerError(err)
	}

	unlock := s.locks.Lock(walletLockKey(ownerID))
	defer unlock()

	if _, err := s.openWallet(ctx, ownerID); err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get wallet
	wallet, err := s.walletRepo.GetByOwnerForUpdate(ctx, dbTx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}

	if txType == domain.TransactionTypeDeposit {
		err = wallet.Credit(amount)
	} else {
		err = wallet.Debit(amount)
	}
	if err != nil {
		return nil, ledgerError(err)
	}

	now := s.now()
	txn := domain.NewTransaction(wallet.ID, txType, amount, description, now)

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, wallet.Balance, now); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	reqLog(ctx, s.log).Info().
		Str("tx_id", txn.ID.String()).
		Str("owner_id", ownerID.String()).
		Str("type", string(txType)).
		Str("amount", amount.String()).
		Str("balance", wallet.Balance.String()).
		Msg("wallet transaction recorded")

	return txn, nil
}

// openWallet returns the owner's wallet, seeding it with the initial balance
// and its "Initial deposit" entry on first access. Callers hold the owner lock.
func (s *WalletServiceImpl) openWallet(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet != nil {
		return wallet, nil
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet = domain.NewWallet(ownerID, s.opts.Currency, s.opts.InitialBalance, s.now())
	if err := s.walletRepo.Create(ctx, dbTx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}
	if wallet.Balance.IsPositive() {
		if err := s.txRepo.Create(ctx, dbTx, domain.NewInitialDeposit(wallet)); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create initial deposit: %w", err))
		}
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	reqLog(ctx, s.log).Info().
		Str("wallet_id", wallet.ID.String()).
		Str("owner_id", ownerID.String()).
		Str("balance", wallet.Balance.String()).
		Msg("wallet opened")

	return wallet, nil
}

// ledgerError maps domain rule violations onto API errors.
func ledgerError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNonPositiveAmount):
		return apperror.ErrInvalidAmount()
	case errors.Is(err, domain.ErrAmountPrecision):
		return apperror.ErrAmountPrecision()
	case errors.Is(err, domain.ErrInsufficientBalance):
		return apperror.ErrInsufficientBalance()
	case errors.Is(err, domain.ErrInvalidQuantity):
		return apperror.ErrInvalidQuantity()
	case errors.Is(err, domain.ErrItemNotFound):
		return apperror.ErrNotFound("Cart item")
	case errors.Is(err, domain.ErrEmptyCart):
		return apperror.ErrEmptyCart()
	case errors.Is(err, domain.ErrMissingAddress):
		return apperror.ErrMissingAddress()
	case errors.Is(err, domain.ErrAgeVerification):
		return apperror.ErrAgeVerificationRequired()
	}
	return apperror.InternalError(err)
}
