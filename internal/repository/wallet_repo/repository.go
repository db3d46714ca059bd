package wallet_repo

import (
	"context"
	"errors"

	"minigames_backend/internal/model"
	"minigames_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	walletTable = "wallets"
	colUserID   = "user_id"
	colBalance  = "balance"

	txTable         = "wallet_transactions"
	colID           = "id"
	colGame         = "game"
	colBetID        = "bet_id"
	colStake        = "stake"
	colPayout       = "payout"
	colDelta        = "delta"
	colBalanceAfter = "balance_after"
	colCreatedAt    = "created_at"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewWalletRepository(dbc *pgxpool.Pool) repository.WalletRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// conn возвращает транзакцию из контекста, если она открыта, иначе пул
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// CreateWallet - создаёт кошелёк игрока со стартовым балансом.
// Существующий кошелёк не трогает
func (r *repo) CreateWallet(ctx context.Context, userID int, balance float64) error {
	query := psql.Insert(walletTable).
		Columns(colUserID, colBalance).
		Values(userID, balance).
		Suffix("ON CONFLICT (" + colUserID + ") DO NOTHING")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

// GetBalance - баланс игрока. ErrWalletNotFound если кошелька нет
func (r *repo) GetBalance(ctx context.Context, userID int) (float64, error) {
	query := psql.Select(colBalance).
		From(walletTable).
		Where(sq.Eq{colUserID: userID})

	return r.scanBalance(ctx, query)
}

// LockBalance - баланс игрока с блокировкой строки до конца транзакции
func (r *repo) LockBalance(ctx context.Context, userID int) (float64, error) {
	query := psql.Select(colBalance).
		From(walletTable).
		Where(sq.Eq{colUserID: userID}).
		Suffix("FOR UPDATE")

	return r.scanBalance(ctx, query)
}

func (r *repo) scanBalance(ctx context.Context, query sq.SelectBuilder) (float64, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance float64
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrWalletNotFound
		}
		return 0, err
	}

	return balance, nil
}

// ApplyDelta - прибавляет delta к балансу и возвращает новый баланс
func (r *repo) ApplyDelta(ctx context.Context, userID int, delta float64) (float64, error) {
	query := psql.Update(walletTable).
		Set(colBalance, sq.Expr(colBalance+" + ?", delta)).
		Where(sq.Eq{colUserID: userID}).
		Suffix("RETURNING " + colBalance)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance float64
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrWalletNotFound
		}
		return 0, err
	}

	return balance, nil
}

// AppendTransaction - пишет запись о ставке в журнал кошелька
func (r *repo) AppendTransaction(ctx context.Context, tx model.Transaction) error {
	query := psql.Insert(txTable).
		Columns(colID, colUserID, colGame, colBetID, colStake, colPayout, colDelta, colBalanceAfter, colCreatedAt).
		Values(tx.ID, tx.UserID, tx.Game, tx.BetID, tx.Stake, tx.Payout, tx.Delta, tx.BalanceAfter, tx.CreatedAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}
