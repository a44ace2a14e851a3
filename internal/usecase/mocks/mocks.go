package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/fdledger/internal/domain"
	"github.com/corebank/fdledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository backed
// by an in-memory map.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	types    map[int32]*domain.AccountType

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	GetTypeFunc           func(ctx context.Context, typeID int32) (*domain.AccountType, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
		types:    make(map[int32]*domain.AccountType),
	}
}

// SeedType registers an account type for default lookups.
func (m *MockAccountRepository) SeedType(t *domain.AccountType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[t.ID] = t
}

// Seed registers an account for default lookups.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; ok {
		return domain.ErrDuplicateIdentifier
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (m *MockAccountRepository) ListActiveInterestBearing(ctx context.Context) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.Status != domain.AccountActive {
			continue
		}
		t, ok := m.types[acc.TypeID]
		if ok && t.InterestRate.IsPositive() {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) GetType(ctx context.Context, typeID int32) (*domain.AccountType, error) {
	if m.GetTypeFunc != nil {
		return m.GetTypeFunc(ctx, typeID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.types[typeID]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("account type %d not found", typeID)
}

func (m *MockAccountRepository) ListTypes(ctx context.Context) ([]*domain.AccountType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var types []*domain.AccountType
	for _, t := range m.types {
		types = append(types, t)
	}
	return types, nil
}

// MockTransactionRepository is a mock implementation of
// TransactionRepository keeping entries in posting order.
type MockTransactionRepository struct {
	mu      sync.RWMutex
	entries []*domain.Transaction

	CreateFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.Transaction) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Entries returns all recorded entries in posting order.
func (m *MockTransactionRepository) Entries() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("transaction %s not found", id)
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	asc, _ := m.ListByAccountAsc(ctx, accountID)
	var out []*domain.Transaction
	for i := len(asc) - 1; i >= 0; i-- {
		out = append(out, asc[i])
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockTransactionRepository) ListByAccountAsc(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, e := range m.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) LastByFixedDeposit(ctx context.Context, tx usecase.Transaction, fdID string, txType domain.TransactionType) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if e.Type == txType && e.FixedDepositID != nil && *e.FixedDepositID == fdID {
			return e, nil
		}
	}
	return nil, nil
}

func (m *MockTransactionRepository) ExistsForAccountInMonth(ctx context.Context, tx usecase.Transaction, accountID string, txType domain.TransactionType, at time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.AccountID == accountID && e.Type == txType &&
			e.CreatedAt.Year() == at.Year() && e.CreatedAt.Month() == at.Month() {
			return true, nil
		}
	}
	return false, nil
}

// MockFixedDepositRepository is a mock implementation of
// FixedDepositRepository.
type MockFixedDepositRepository struct {
	mu       sync.RWMutex
	deposits map[string]*domain.FixedDeposit
	order    []string

	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.FixedDeposit, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.FDStatus, updatedAt time.Time) error
}

func NewMockFixedDepositRepository() *MockFixedDepositRepository {
	return &MockFixedDepositRepository{
		deposits: make(map[string]*domain.FixedDeposit),
	}
}

func (m *MockFixedDepositRepository) Create(ctx context.Context, tx usecase.Transaction, fd *domain.FixedDeposit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.deposits[fd.ID]; ok {
		return domain.ErrDuplicateIdentifier
	}
	m.deposits[fd.ID] = fd
	m.order = append(m.order, fd.ID)
	return nil
}

func (m *MockFixedDepositRepository) GetByID(ctx context.Context, id string) (*domain.FixedDeposit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if fd, ok := m.deposits[id]; ok {
		return fd, nil
	}
	return nil, domain.ErrFDNotFound
}

func (m *MockFixedDepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.FixedDeposit, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockFixedDepositRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.FixedDeposit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.FixedDeposit
	for _, id := range m.order {
		if fd := m.deposits[id]; fd.AccountID == accountID {
			out = append(out, fd)
		}
	}
	return out, nil
}

func (m *MockFixedDepositRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for _, id := range m.order {
		if m.deposits[id].Status == domain.FDActive {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *MockFixedDepositRepository) CountActiveByAccount(ctx context.Context, accountID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, fd := range m.deposits {
		if fd.AccountID == accountID && fd.Status == domain.FDActive {
			count++
		}
	}
	return count, nil
}

func (m *MockFixedDepositRepository) CountActiveByAccountTx(ctx context.Context, tx usecase.Transaction, accountID string) (int, error) {
	return m.CountActiveByAccount(ctx, accountID)
}

func (m *MockFixedDepositRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.FDStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if fd, ok := m.deposits[id]; ok {
		fd.Status = status
		fd.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockFixedDepositRepository) MatureDue(ctx context.Context, asOf time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, fd := range m.deposits {
		if fd.Status == domain.FDActive && !asOf.Before(fd.MaturityDate) {
			fd.Status = domain.FDMatured
			fd.UpdatedAt = asOf
			n++
		}
	}
	return n, nil
}

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{customers: make(map[string]*domain.Customer)}
}

func (m *MockCustomerRepository) Create(ctx context.Context, tx usecase.Transaction, customer *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[customer.ID]; ok {
		return domain.ErrDuplicateIdentifier
	}
	m.customers[customer.ID] = customer
	return nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

// MockSequenceRepository is a mock implementation of SequenceRepository
// using in-memory counters.
type MockSequenceRepository struct {
	mu       sync.Mutex
	customer int
	fd       int
	branch   int
	accounts map[string]int
}

func NewMockSequenceRepository() *MockSequenceRepository {
	return &MockSequenceRepository{accounts: make(map[string]int)}
}

func (m *MockSequenceRepository) NextCustomerID(ctx context.Context, tx usecase.Transaction) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customer++
	return fmt.Sprintf("C%06d", m.customer), nil
}

func (m *MockSequenceRepository) NextAccountID(ctx context.Context, tx usecase.Transaction, typeCode, branchID, agentSuffix string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := fmt.Sprintf("%s-%s-%s-", typeCode, branchID, agentSuffix)
	m.accounts[prefix]++
	return fmt.Sprintf("%s%05d", prefix, m.accounts[prefix]), nil
}

func (m *MockSequenceRepository) NextFixedDepositID(ctx context.Context, tx usecase.Transaction) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fd++
	return fmt.Sprintf("FD-%05d", m.fd), nil
}

func (m *MockSequenceRepository) NextBranchID(ctx context.Context, tx usecase.Transaction) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.branch++
	return fmt.Sprintf("%03d", m.branch), nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockClock is a settable Clock.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set pins the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// MockCache is an in-memory Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{data: make(map[string][]byte)}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
