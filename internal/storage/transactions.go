package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/boltpappu0224/finance-tracker/internal/model"
)

// SaveTransaction persists one accepted transaction. Saves are idempotent
// on the dedupe hash: re-importing the same real-world event is a no-op.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.StoredTransaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(txn.ID, "transaction ID"); err != nil {
		return err
	}

	if txn.Hash == "" {
		txn.Hash = txn.GenerateHash()
	}

	provenance, err := json.Marshal(txn.Provenance)
	if err != nil {
		return fmt.Errorf("failed to marshal provenance: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, date, amount, direction, counterparty, description, category, account_id, origin, hash, provenance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, txn.ID, txn.Date, txn.Amount.String(), string(txn.Direction), txn.Counterparty,
		txn.Description, txn.Category, txn.AccountID, string(txn.Origin), txn.Hash, string(provenance))

	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	return nil
}

// SaveTransactions persists a batch inside one database transaction.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, txns []model.StoredTransaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range txns {
		if err := s.saveTransactionTx(ctx, tx, &txns[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveTransactionTx(ctx context.Context, tx *sql.Tx, txn *model.StoredTransaction) error {
	if txn.Hash == "" {
		txn.Hash = txn.GenerateHash()
	}

	provenance, err := json.Marshal(txn.Provenance)
	if err != nil {
		return fmt.Errorf("failed to marshal provenance: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (id, date, amount, direction, counterparty, description, category, account_id, origin, hash, provenance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, txn.ID, txn.Date, txn.Amount.String(), string(txn.Direction), txn.Counterparty,
		txn.Description, txn.Category, txn.AccountID, string(txn.Origin), txn.Hash, string(provenance))

	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
	}

	return nil
}

// GetTransactions loads the full pool, oldest first. The returned slice is
// a snapshot; callers own it.
func (s *SQLiteStorage) GetTransactions(ctx context.Context) ([]model.StoredTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, amount, direction, counterparty, description, category, account_id, origin, hash, provenance
		FROM transactions
		ORDER BY date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.StoredTransaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

func scanTransaction(rows *sql.Rows) (model.StoredTransaction, error) {
	var (
		txn        model.StoredTransaction
		amount     string
		direction  string
		origin     string
		provenance string
	)

	err := rows.Scan(&txn.ID, &txn.Date, &amount, &direction, &txn.Counterparty,
		&txn.Description, &txn.Category, &txn.AccountID, &origin, &txn.Hash, &provenance)
	if err != nil {
		return model.StoredTransaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return model.StoredTransaction{}, fmt.Errorf("corrupt amount for transaction %s: %w", txn.ID, err)
	}
	txn.Direction = model.TransactionDirection(direction)
	txn.Origin = model.TransactionOrigin(origin)

	if err := json.Unmarshal([]byte(provenance), &txn.Provenance); err != nil {
		return model.StoredTransaction{}, fmt.Errorf("corrupt provenance for transaction %s: %w", txn.ID, err)
	}

	return txn, nil
}

// ApplyMerge replaces a duplicate group with its merged representative.
// The representative keeps the primary's ID, so the old rows are removed
// first and the merged record written in their place.
func (s *SQLiteStorage) ApplyMerge(ctx context.Context, merged model.StoredTransaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(merged.Provenance.MergedFrom) == 0 {
		return fmt.Errorf("merged transaction %s lists no source transactions", merged.ID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range merged.Provenance.MergedFrom {
		if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to remove merged source %s: %w", id, err)
		}
	}

	if err := s.saveTransactionTx(ctx, tx, &merged); err != nil {
		return err
	}

	return tx.Commit()
}
