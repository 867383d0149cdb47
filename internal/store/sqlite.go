package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/fileutils"
	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
	"fjacquet/butterfly-ledger/internal/parsererror"

	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite" // register sqlite driver
)

const sqlitePragmas = "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)"

// Snapshot is a consistent copy of the whole ledger taken at one point in time.
type Snapshot struct {
	Transactions []models.Transaction `json:"transactions"`
	Budget       models.BudgetState   `json:"budget"`
	Goal         models.SavingsGoal   `json:"savingsGoal"`
}

// SQLiteStore persists transactions, the budget and the savings goal.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// Open opens or creates the ledger database at dbPath and migrates it.
func Open(dbPath string, logger logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if err := fileutils.EnsureParentDirectory(dbPath); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger = logger.WithField(logging.FieldComponent, "sqlite_store")
	logger.Debug("Opened ledger database", logging.Field{Key: logging.FieldDatabase, Value: dbPath})

	return &SQLiteStore{db: db, path: dbPath, logger: logger}, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

const transactionColumns = "id, date, description, amount, category, type, is_recurring, is_paid, reminder_sent"

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var tx models.Transaction
	var amount, category, txType string
	if err := row.Scan(&tx.ID, &tx.Date, &tx.Description, &amount, &category, &txType,
		&tx.IsRecurring, &tx.IsPaid, &tx.ReminderSent); err != nil {
		return models.Transaction{}, err
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Source: "transactions", Field: "amount", Value: amount, Err: err}
	}
	tx.Amount = parsed
	tx.Category = models.Category(category)
	tx.Type = models.TransactionType(txType)
	return tx, nil
}

// ListTransactions returns every transaction ordered by date, then by insertion.
func (s *SQLiteStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.listTransactions(ctx, s.db)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) listTransactions(ctx context.Context, q querier) ([]models.Transaction, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+transactionColumns+" FROM transactions ORDER BY date, seq")
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	txs := []models.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// GetTransaction returns one transaction or a *parsererror.NotFoundError.
func (s *SQLiteStore) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, &parsererror.NotFoundError{Kind: "transaction", ID: id}
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return tx, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTransaction(ctx context.Context, e execer, tx models.Transaction) error {
	_, err := e.ExecContext(ctx,
		"INSERT INTO transactions ("+transactionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		tx.ID, tx.Date, tx.Description, tx.Amount.String(), string(tx.Category), string(tx.Type),
		tx.IsRecurring, tx.IsPaid, tx.ReminderSent)
	if err != nil {
		return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
	}
	return nil
}

// AddTransaction inserts one transaction.
func (s *SQLiteStore) AddTransaction(ctx context.Context, tx models.Transaction) error {
	if err := insertTransaction(ctx, s.db, tx); err != nil {
		return err
	}
	s.logger.Debug("Transaction stored",
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
		logging.Field{Key: logging.FieldCategory, Value: tx.Category})
	return nil
}

// AddTransactions inserts all transactions in one database transaction;
// either all are stored or none.
func (s *SQLiteStore) AddTransactions(ctx context.Context, txs []models.Transaction) error {
	return s.withTx(ctx, func(sqlTx *sql.Tx) error {
		for _, tx := range txs {
			if err := insertTransaction(ctx, sqlTx, tx); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = sqlTx.Rollback() }()

	if err := fn(sqlTx); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) updateOne(ctx context.Context, id, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", id, err)
	}
	if n == 0 {
		return &parsererror.NotFoundError{Kind: "transaction", ID: id}
	}
	return nil
}

// DeleteTransaction removes a transaction.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id string) error {
	return s.updateOne(ctx, id, "DELETE FROM transactions WHERE id = ?", id)
}

// MarkPaid sets the paid flag of a transaction.
func (s *SQLiteStore) MarkPaid(ctx context.Context, id string, paid bool) error {
	return s.updateOne(ctx, id, "UPDATE transactions SET is_paid = ? WHERE id = ?", paid, id)
}

// MarkReminded flags the transactions as reminded. Unknown ids are ignored.
func (s *SQLiteStore) MarkReminded(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := s.db.ExecContext(ctx, "UPDATE transactions SET reminder_sent = 1 WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}
	return nil
}

func nullableDecimal(ns sql.NullString, field string) (*decimal.Decimal, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, &parsererror.ParseError{Source: "budget", Field: field, Value: ns.String, Err: err}
	}
	return &d, nil
}

func (s *SQLiteStore) loadBudgetRecord(ctx context.Context, q querier) (models.BudgetRecord, bool, error) {
	var limit string
	var base, rollover, month sql.NullString
	err := q.QueryRowContext(ctx,
		"SELECT monthly_limit, base_amount, rollover_amount, last_rollover_month FROM budget WHERE id = 1").
		Scan(&limit, &base, &rollover, &month)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BudgetRecord{}, false, nil
	}
	if err != nil {
		return models.BudgetRecord{}, false, fmt.Errorf("load budget: %w", err)
	}

	var record models.BudgetRecord
	if record.MonthlyLimit, err = decimal.NewFromString(limit); err != nil {
		return models.BudgetRecord{}, false, &parsererror.ParseError{Source: "budget", Field: "monthly_limit", Value: limit, Err: err}
	}
	if record.BaseAmount, err = nullableDecimal(base, "base_amount"); err != nil {
		return models.BudgetRecord{}, false, err
	}
	if record.RolloverAmount, err = nullableDecimal(rollover, "rollover_amount"); err != nil {
		return models.BudgetRecord{}, false, err
	}
	if month.Valid {
		record.LastRolloverMonth = &month.String
	}
	return record, true, nil
}

// LoadBudget returns the stored budget. A ledger without a budget gets
// initial as its base, settled for the month of today. A budget saved before
// rollover tracking is migrated the same way, keeping its limit as the base.
// Both cases are written back.
func (s *SQLiteStore) LoadBudget(ctx context.Context, today time.Time, initial decimal.Decimal) (models.BudgetState, error) {
	record, found, err := s.loadBudgetRecord(ctx, s.db)
	if err != nil {
		return models.BudgetState{}, err
	}

	month := dateutils.MonthKey(today)
	if !found {
		state := models.NewBudgetState(initial, month)
		if err := s.SaveBudget(ctx, state); err != nil {
			return models.BudgetState{}, err
		}
		s.logger.Info("Initialized budget", logging.Field{Key: logging.FieldMonthlyLimit, Value: state.MonthlyLimit.String()})
		return state, nil
	}

	state, migrated := models.MigrateBudget(record, month)
	if migrated {
		if err := s.SaveBudget(ctx, state); err != nil {
			return models.BudgetState{}, err
		}
		s.logger.Info("Migrated legacy budget",
			logging.Field{Key: logging.FieldMonthlyLimit, Value: state.MonthlyLimit.String()},
			logging.Field{Key: logging.FieldMonth, Value: month})
	}
	return state, nil
}

// SaveBudget replaces the stored budget.
func (s *SQLiteStore) SaveBudget(ctx context.Context, b models.BudgetState) error {
	return saveBudget(ctx, s.db, b.Record())
}

func saveBudget(ctx context.Context, e execer, r models.BudgetRecord) error {
	var base, rollover any
	if r.BaseAmount != nil {
		base = r.BaseAmount.String()
	}
	if r.RolloverAmount != nil {
		rollover = r.RolloverAmount.String()
	}
	var month any
	if r.LastRolloverMonth != nil {
		month = *r.LastRolloverMonth
	}

	_, err := e.ExecContext(ctx, `INSERT INTO budget (id, monthly_limit, base_amount, rollover_amount, last_rollover_month)
VALUES (1, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    monthly_limit = excluded.monthly_limit,
    base_amount = excluded.base_amount,
    rollover_amount = excluded.rollover_amount,
    last_rollover_month = excluded.last_rollover_month`,
		r.MonthlyLimit.String(), base, rollover, month)
	if err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}

// LoadSavingsGoal returns the stored goal, or the default goal when none was saved.
func (s *SQLiteStore) LoadSavingsGoal(ctx context.Context) (models.SavingsGoal, error) {
	return loadSavingsGoal(ctx, s.db)
}

func loadSavingsGoal(ctx context.Context, q querier) (models.SavingsGoal, error) {
	var goal models.SavingsGoal
	var target, current string
	err := q.QueryRowContext(ctx, "SELECT name, target_amount, current_amount FROM savings_goal WHERE id = 1").
		Scan(&goal.Name, &target, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSavingsGoal(), nil
	}
	if err != nil {
		return models.SavingsGoal{}, fmt.Errorf("load savings goal: %w", err)
	}
	if goal.TargetAmount, err = decimal.NewFromString(target); err != nil {
		return models.SavingsGoal{}, &parsererror.ParseError{Source: "savings_goal", Field: "target_amount", Value: target, Err: err}
	}
	if goal.CurrentAmount, err = decimal.NewFromString(current); err != nil {
		return models.SavingsGoal{}, &parsererror.ParseError{Source: "savings_goal", Field: "current_amount", Value: current, Err: err}
	}
	return goal, nil
}

// SaveSavingsGoal replaces the stored goal.
func (s *SQLiteStore) SaveSavingsGoal(ctx context.Context, goal models.SavingsGoal) error {
	return saveSavingsGoal(ctx, s.db, goal)
}

func saveSavingsGoal(ctx context.Context, e execer, goal models.SavingsGoal) error {
	_, err := e.ExecContext(ctx, `INSERT INTO savings_goal (id, name, target_amount, current_amount)
VALUES (1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    target_amount = excluded.target_amount,
    current_amount = excluded.current_amount`,
		goal.Name, goal.TargetAmount.String(), goal.CurrentAmount.String())
	if err != nil {
		return fmt.Errorf("save savings goal: %w", err)
	}
	return nil
}

// Snapshot reads transactions, budget and goal inside one read transaction.
// LoadBudget must have run first so the budget exists and is migrated.
func (s *SQLiteStore) Snapshot(ctx context.Context) (Snapshot, error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = sqlTx.Rollback() }()

	txs, err := s.listTransactions(ctx, sqlTx)
	if err != nil {
		return Snapshot{}, err
	}

	record, found, err := s.loadBudgetRecord(ctx, sqlTx)
	if err != nil {
		return Snapshot{}, err
	}
	if !found {
		return Snapshot{}, &parsererror.NotFoundError{Kind: "budget", ID: "1"}
	}
	budget, _ := models.MigrateBudget(record, "")

	goal, err := loadSavingsGoal(ctx, sqlTx)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Transactions: txs, Budget: budget, Goal: goal}, nil
}

// ReplaceAll swaps the whole ledger for snap in one database transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, snap Snapshot) error {
	return s.withTx(ctx, func(sqlTx *sql.Tx) error {
		if _, err := sqlTx.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
			return fmt.Errorf("clear transactions: %w", err)
		}
		for _, tx := range snap.Transactions {
			if err := insertTransaction(ctx, sqlTx, tx); err != nil {
				return err
			}
		}
		if err := saveBudget(ctx, sqlTx, snap.Budget.Record()); err != nil {
			return err
		}
		return saveSavingsGoal(ctx, sqlTx, snap.Goal)
	})
}
