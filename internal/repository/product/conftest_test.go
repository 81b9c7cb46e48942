package product

import (
	"context"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mockStore implements kvStore for tests.
type mockStore struct {
	getFn   func(ctx context.Context, key string) ([]byte, error)
	setFn   func(ctx context.Context, key string, value []byte) error
	setNXFn func(ctx context.Context, key string, value []byte) (bool, error)
	delFn   func(ctx context.Context, key string) error
	pingErr error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) SetNX(ctx context.Context, key string, value []byte) (bool, error) {
	if m.setNXFn != nil {
		return m.setNXFn(ctx, key, value)
	}
	return true, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Ping(context.Context) error { return m.pingErr }

// mockQuerier implements pgQuerier for tests.
type mockQuerier struct {
	queryFn func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	execSQL string
	execErr error
	pingErr error
}

func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return m.queryFn(ctx, sql, args...)
}

func (m *mockQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	m.execSQL = sql
	return pgconn.NewCommandTag("CREATE TABLE"), m.execErr
}

func (m *mockQuerier) Ping(context.Context) error { return m.pingErr }

// fakeRows is an in-memory pgx.Rows. Each row holds one value per column;
// nil leaves the destination at its zero value.
type fakeRows struct {
	rows    [][]any
	pos     int
	err     error
	scanErr error
	closed  bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.rows[r.pos-1], nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.rows[r.pos-1]
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if row[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func strPtr(s string) *string { return &s }

// pgRow builds a row in selectSQL column order.
func pgRow(id, name, category, price string, originalPrice *string, rating string, stock int) []any {
	return []any{
		id, name, category, "apple",
		"Apple Store", "usa",
		price, originalPrice, "USD",
		rating, 10, stock, true,
		[]string{"warranty"}, int64(1), "", map[string]string{"Chip": "A17 Pro"},
	}
}
