package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	adaptershttp "github.com/corebank/fdledger/internal/adapter/http"
	"github.com/corebank/fdledger/internal/adapter/http/handler"
	postgresrepo "github.com/corebank/fdledger/internal/adapter/repository/postgres"
	redisrepo "github.com/corebank/fdledger/internal/adapter/repository/redis"
	infraredis "github.com/corebank/fdledger/internal/infrastructure/redis"
	"github.com/corebank/fdledger/internal/usecase"
	"github.com/corebank/fdledger/tests/testutil"
)

// newTestRouter wires the full HTTP stack against the test database and an
// in-process redis.
func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	ctx := context.Background()

	mr := miniredis.RunT(t)
	redisClient, err := infraredis.NewClient(ctx, fmt.Sprintf("redis://%s", mr.Addr()))
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	txManager := postgresrepo.NewTxManager(pool)
	accountRepo := postgresrepo.NewAccountRepository(pool)
	customerRepo := postgresrepo.NewCustomerRepository(pool)
	txRepo := postgresrepo.NewTransactionRepository(pool)
	fdRepo := postgresrepo.NewFixedDepositRepository(pool)
	seqRepo := postgresrepo.NewSequenceRepository(pool)
	idGen := postgresrepo.NewULIDGenerator()
	clock := usecase.SystemClock{}

	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, customerRepo, txRepo, seqRepo, idGen, clock, redisrepo.NewCache(redisClient))
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, txRepo, idGen, clock)
	fdUC := usecase.NewFixedDepositUseCase(txManager, accountRepo, fdRepo, txRepo, seqRepo, idGen, clock)
	accrualUC := usecase.NewAccrualUseCase(txManager, accountRepo, fdRepo, txRepo, idGen, clock, nil)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, txRepo, clock)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(accountUC, ledgerUC),
		TransferHandler:       handler.NewTransferHandler(ledgerUC),
		FixedDepositHandler:   handler.NewFixedDepositHandler(fdUC),
		JobsHandler:           handler.NewJobsHandler(accrualUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      redisrepo.NewIdempotencyStore(redisClient),
	})
}
