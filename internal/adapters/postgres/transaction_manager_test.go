package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func newMockTxManager(t *testing.T) (*TransactionManager, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mock.Close)
	return &TransactionManager{db: mock}, mock
}

func TestTransactionManager_Commit(t *testing.T) {
	txMgr, mock := newMockTxManager(t)
	repo := &ChildProfileRepository{BaseRepository: BaseRepository{pool: nil}}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE child_profiles SET is_active = FALSE").
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE child_profiles SET is_active = TRUE").
		WithArgs("pcp_2", "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := txMgr.WithTransaction(context.Background(), func(txCtx context.Context) error {
		if err := repo.DeactivateAll(txCtx, "user-1"); err != nil {
			return err
		}
		return repo.SetActive(txCtx, "pcp_2", "user-1")
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestTransactionManager_Rollback(t *testing.T) {
	txMgr, mock := newMockTxManager(t)
	testErr := errors.New("test error")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := txMgr.WithTransaction(context.Background(), func(txCtx context.Context) error {
		return testErr
	})
	if err != testErr {
		t.Fatalf("expected test error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestTransactionManager_NestedTransaction(t *testing.T) {
	txMgr, mock := newMockTxManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := txMgr.WithTransaction(context.Background(), func(txCtx context.Context) error {
		calls++
		return txMgr.WithTransaction(txCtx, func(nestedCtx context.Context) error {
			calls++
			if GetTx(nestedCtx) != GetTx(txCtx) {
				t.Error("nested call should reuse the outer transaction")
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("nested transaction failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected both functions to run, got %d", calls)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestTransactionManager_PanicRollsBack(t *testing.T) {
	txMgr, mock := newMockTxManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := txMgr.WithTransaction(context.Background(), func(txCtx context.Context) error {
		panic("boom")
	})
	if err == nil || !strings.Contains(err.Error(), "panic recovered") {
		t.Fatalf("expected recovered panic error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestTransactionManager_BeginError(t *testing.T) {
	txMgr, mock := newMockTxManager(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := txMgr.WithTransaction(context.Background(), func(txCtx context.Context) error {
		called = true
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "failed to begin transaction") {
		t.Fatalf("expected begin error, got %v", err)
	}
	if called {
		t.Error("function should not run without a transaction")
	}
}

func TestTransactionManager_GetTx_NoTransaction(t *testing.T) {
	if tx := GetTx(context.Background()); tx != nil {
		t.Error("expected nil transaction in empty context")
	}
}
