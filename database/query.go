package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

type whereClause struct {
	column   string
	operator string
	value    any
}

type orderClause struct {
	column    string
	direction OrderDirection
}

// QueryBuilder provides a small fluent API over bun for single-table queries.
// Every terminal method runs through WithRetry.
type QueryBuilder[T any] struct {
	db        bun.IDB
	wheres    []whereClause
	orders    []orderClause
	relations []string
	limitVal  int
	offsetVal int
	timeout   time.Duration
}

// Query creates a new QueryBuilder on a database handle or transaction
func Query[T any](db bun.IDB) *QueryBuilder[T] {
	return &QueryBuilder[T]{db: db}
}

// Where adds a column = value condition
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	return q.WhereOp(column, "=", value)
}

// WhereOp adds a condition with a custom comparison operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{column: column, operator: operator, value: value})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, orderClause{column: column, direction: direction})
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = offset
	return q
}

// With preloads a bun relation
func (q *QueryBuilder[T]) With(relation string) *QueryBuilder[T] {
	q.relations = append(q.relations, relation)
	return q
}

// Timeout bounds each execution of the query
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

func (q *QueryBuilder[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

func (q *QueryBuilder[T]) applyWheres(query bun.QueryBuilder) bun.QueryBuilder {
	for _, w := range q.wheres {
		query = query.Where(fmt.Sprintf("? %s ?", w.operator), bun.Ident(w.column), w.value)
	}
	return query
}

func (q *QueryBuilder[T]) buildSelect(model any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(model)
	query = q.applyWheres(query.QueryBuilder()).Unwrap().(*bun.SelectQuery)

	for _, rel := range q.relations {
		query = query.Relation(rel)
	}
	for _, o := range q.orders {
		query = query.OrderExpr(fmt.Sprintf("? %s", o.direction), bun.Ident(o.column))
	}
	if q.limitVal > 0 {
		query = query.Limit(q.limitVal)
	}
	if q.offsetVal > 0 {
		query = query.Offset(q.offsetVal)
	}
	return query
}

// All returns every matching record
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var data []T
	err := WithRetry(ctx, func() error {
		data = nil
		return q.buildSelect(&data).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First returns the first matching record, or nil when nothing matches
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	data := new(T)
	err := WithRetry(ctx, func() error {
		return q.buildSelect(data).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Count returns the number of matching records, ignoring limit and offset
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var count int
	err := WithRetry(ctx, func() error {
		var model T
		query := q.db.NewSelect().Model(&model)
		query = q.applyWheres(query.QueryBuilder()).Unwrap().(*bun.SelectQuery)

		var err error
		count, err = query.Count(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists reports whether any record matches
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts one record; server defaults are scanned back into it
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		_, err := q.db.NewInsert().Model(data).Returning("*").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertMany inserts a batch of records in a single statement
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return data, nil
	}

	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		_, err := q.db.NewInsert().Model(&data).Returning("*").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update sets the given columns on every matching record and returns the affected row count
func (q *QueryBuilder[T]) Update(ctx context.Context, values map[string]any) (int, error) {
	if len(q.wheres) == 0 {
		return 0, errors.New("refusing to update without a where clause")
	}

	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var rowsAffected int64
	err := WithRetry(ctx, func() error {
		var model T
		query := q.db.NewUpdate().Model(&model)
		for key, value := range values {
			query = query.Set("? = ?", bun.Ident(key), value)
		}
		query = q.applyWheres(query.QueryBuilder()).Unwrap().(*bun.UpdateQuery)

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Delete removes every matching record and returns the affected row count
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var rowsAffected int64
	err := WithRetry(ctx, func() error {
		var model T
		query := q.db.NewDelete().Model(&model)
		if len(q.wheres) == 0 {
			query = query.Where("TRUE")
		}
		query = q.applyWheres(query.QueryBuilder()).Unwrap().(*bun.DeleteQuery)

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}
