package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"

	"bookcatalog/internal/platform/database"
)

const (
	dialectPostgres = "postgres"
	tableBooks      = "books"
	colID           = "id"
	colTitle        = "title"
	colAuthor       = "author"
	colYear         = "year"
)

var bookColumns = []any{colID, colTitle, colAuthor, colYear}

type PostgresRepo struct {
	db      database.DB
	timeout time.Duration
	dialect goqu.DialectWrapper
}

func NewPostgresRepo(db database.DB, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{
		db:      db,
		timeout: timeout,
		dialect: goqu.Dialect(dialectPostgres),
	}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Scan(ctx context.Context, s Scan) ([]Book, error) {
	query, args, err := r.scanSQL(s)
	if err != nil {
		return nil, fmt.Errorf("build scan query: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("scan books: %w", err)
	}
	return collectBooks(rows)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	query, args, err := r.dialect.From(tableBooks).Prepared(true).
		Select(bookColumns...).
		Where(goqu.C(colID).Eq(id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build get query: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return single(collectBooks(rows))
}

func (r *PostgresRepo) Insert(ctx context.Context, in Input) (Book, error) {
	query, args, err := r.dialect.Insert(tableBooks).Prepared(true).
		Rows(writeRecord(in)).
		Returning(bookColumns...).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build insert query: %w", err)
	}

	var out Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err = r.db.WithTx(timeoutCtx, func(q database.Querier) error {
		rows, err := q.Query(timeoutCtx, query, args...)
		if err != nil {
			return err
		}
		out, err = single(collectBooks(rows))
		return err
	})
	if err != nil {
		return Book{}, writeError("insert book", err)
	}
	return out, nil
}

func (r *PostgresRepo) UpdateByID(ctx context.Context, id int64, in Input) (Book, error) {
	query, args, err := r.dialect.Update(tableBooks).Prepared(true).
		Set(writeRecord(in)).
		Where(goqu.C(colID).Eq(id)).
		Returning(bookColumns...).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build update query: %w", err)
	}

	var out Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err = r.db.WithTx(timeoutCtx, func(q database.Querier) error {
		rows, err := q.Query(timeoutCtx, query, args...)
		if err != nil {
			return err
		}
		out, err = single(collectBooks(rows))
		return err
	})
	if err != nil {
		return Book{}, writeError(fmt.Sprintf("update book %d", id), err)
	}
	return out, nil
}

func (r *PostgresRepo) DeleteByID(ctx context.Context, id int64) error {
	query, args, err := r.dialect.Delete(tableBooks).Prepared(true).
		Where(goqu.C(colID).Eq(id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err = r.db.WithTx(timeoutCtx, func(q database.Querier) error {
		affected, err := q.Exec(timeoutCtx, query, args...)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return writeError(fmt.Sprintf("delete book %d", id), err)
	}
	return nil
}

func (r *PostgresRepo) scanSQL(s Scan) (string, []any, error) {
	ds := r.dialect.From(tableBooks).Prepared(true).
		Select(bookColumns...).
		Order(goqu.C(colID).Asc())

	if !s.Where.MatchesAll() {
		where, err := toExpression(s.Where)
		if err != nil {
			return "", nil, err
		}
		ds = ds.Where(where)
	}
	if s.Limit > 0 {
		ds = ds.Limit(uint(s.Limit))
	}
	return ds.ToSQL()
}

// toExpression maps a predicate tree onto goqu expressions. Contains becomes
// a case-sensitive LIKE with the search value's wildcards escaped.
func toExpression(p Predicate) (exp.Expression, error) {
	if p.IsLeaf() {
		col := goqu.C(string(p.Field))
		switch p.Operator {
		case OpContains:
			v, ok := p.Value.(string)
			if !ok {
				return nil, fmt.Errorf("contains on %s needs a string, got %T", p.Field, p.Value)
			}
			return col.Like("%" + escapeLike(v) + "%"), nil
		case OpEquals:
			return col.Eq(p.Value), nil
		case OpGreaterThan:
			return col.Gt(p.Value), nil
		}
		return nil, fmt.Errorf("unsupported operator %d", p.Operator)
	}

	terms := make([]exp.Expression, 0, len(p.Terms))
	for _, t := range p.Terms {
		e, err := toExpression(t)
		if err != nil {
			return nil, err
		}
		terms = append(terms, e)
	}
	if p.Combinator == CombineOr {
		return goqu.Or(terms...), nil
	}
	return goqu.And(terms...), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func writeRecord(in Input) goqu.Record {
	var year any
	if in.Year != nil {
		year = *in.Year
	}
	return goqu.Record{colTitle: in.Title, colAuthor: in.Author, colYear: year}
}

func collectBooks(rows database.Rows) ([]Book, error) {
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func single(books []Book, err error) (Book, error) {
	if err != nil {
		return Book{}, err
	}
	if len(books) == 0 {
		return Book{}, ErrNotFound
	}
	return books[0], nil
}

func writeError(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if database.IsConstraintViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrConstraint, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
