package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/mmeshcher/vise-system/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresRepository хранит клиентов в PostgreSQL. Идентификаторы выдаёт
// последовательность BIGSERIAL: она монотонна и не переиспользует значения
// после удаления записей.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository создаёт репозиторий и инициализирует схему БД через миграции.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// withRetry повторяет операцию при временных ошибках БД: сериализация,
// дедлоки и обрывы соединения. Остальные ошибки возвращаются сразу.
func (r *PostgresRepository) withRetry(ctx context.Context, fn func() error) error {
	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn()
		if err == nil {
			return nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.SerializationFailure,
				pgerrcode.DeadlockDetected,
				pgerrcode.ConnectionException,
				pgerrcode.ConnectionFailure:
				return retry.RetryableError(err)
			}
		}

		return err
	})
}

// Close закрывает пул соединений с БД.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// Register сохраняет нового клиента и возвращает запись с присвоенным идентификатором.
func (r *PostgresRepository) Register(ctx context.Context, attrs model.ClientAttrs) (model.Client, error) {
	var c model.Client

	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO clients (name, country, monthly_income, vise_club, card_type)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, name, country, monthly_income, vise_club, card_type`,
			attrs.Name, attrs.Country, attrs.MonthlyIncome, attrs.ViseClub, attrs.CardType,
		).Scan(&c.ID, &c.Name, &c.Country, &c.MonthlyIncome, &c.ViseClub, &c.CardType)
	})
	if err != nil {
		return model.Client{}, fmt.Errorf("insert client: %w", err)
	}

	return c, nil
}

// Get возвращает клиента по идентификатору.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (model.Client, error) {
	var c model.Client

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, country, monthly_income, vise_club, card_type
		 FROM clients WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Country, &c.MonthlyIncome, &c.ViseClub, &c.CardType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Client{}, ErrClientNotFound
		}
		return model.Client{}, fmt.Errorf("select client: %w", err)
	}

	return c, nil
}

// List возвращает всех клиентов в порядке присвоения идентификаторов.
func (r *PostgresRepository) List(ctx context.Context) ([]model.Client, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, country, monthly_income, vise_club, card_type
		 FROM clients ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("select clients: %w", err)
	}
	defer rows.Close()

	var res []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Country, &c.MonthlyIncome, &c.ViseClub, &c.CardType); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		res = append(res, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// Update полностью заменяет атрибуты клиента, сохраняя идентификатор.
func (r *PostgresRepository) Update(ctx context.Context, id int64, attrs model.ClientAttrs) (model.Client, error) {
	var c model.Client

	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE clients
			 SET name = $2, country = $3, monthly_income = $4, vise_club = $5, card_type = $6
			 WHERE id = $1
			 RETURNING id, name, country, monthly_income, vise_club, card_type`,
			id, attrs.Name, attrs.Country, attrs.MonthlyIncome, attrs.ViseClub, attrs.CardType,
		).Scan(&c.ID, &c.Name, &c.Country, &c.MonthlyIncome, &c.ViseClub, &c.CardType)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Client{}, ErrClientNotFound
		}
		return model.Client{}, fmt.Errorf("update client: %w", err)
	}

	return c, nil
}

// Delete удаляет клиента и сообщает, существовала ли запись.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool

	err := r.withRetry(ctx, func() error {
		cmdTag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = cmdTag.RowsAffected() == 1
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}

	return deleted, nil
}
