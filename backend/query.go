package backend

import "context"

// Query builds one read against a table in the order the call sites read:
//
//	backend.From(store, "orders").
//		Select("id", "phone").
//		Order("created_at", false).
//		Range(0, 9).
//		Get(ctx, &rows)
type Query struct {
	store RowStore
	table string
	q     SelectQuery
}

// From starts a query against table.
func From(store RowStore, table string) *Query {
	return &Query{store: store, table: table}
}

// Select limits the returned columns. Without it all columns are returned.
func (q *Query) Select(columns ...string) *Query {
	q.q.Columns = columns
	return q
}

// Eq adds an equality filter on column.
func (q *Query) Eq(column, value string) *Query {
	q.q.Filters = append(q.q.Filters, Filter{Column: column, Value: value})
	return q
}

// Order sorts by column, ascending or descending.
func (q *Query) Order(column string, ascending bool) *Query {
	q.q.OrderBy = column
	q.q.Ascending = ascending
	return q
}

// Range limits the result to rows from..to inclusive, zero-based.
func (q *Query) Range(from, to int) *Query {
	q.q.From, q.q.To = from, to
	q.q.HasRange = true
	return q
}

// Single asks for exactly one row; dest must then be a struct, not a slice.
func (q *Query) Single() *Query {
	q.q.Single = true
	return q
}

// Get runs the query and decodes the rows into dest.
func (q *Query) Get(ctx context.Context, dest any) error {
	return q.store.Select(ctx, q.table, q.q, dest)
}

// Count returns the total number of rows in the table.
func (q *Query) Count(ctx context.Context) (int, error) {
	return q.store.Count(ctx, q.table)
}
