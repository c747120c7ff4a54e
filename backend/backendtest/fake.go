// Package backendtest holds an in-memory stand-in for the hosted backend so
// controller tests run without a network. Rows live as generic maps and move
// in and out through JSON, the same shape the real service speaks.
package backendtest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/silluthedon/Zerotreat/backend"
)

type Fake struct {
	mu     sync.Mutex
	tables map[string][]map[string]any
	nextID int

	// Per-table injected failures.
	SelectErr map[string]error
	InsertErr map[string]error
	UpdateErr map[string]error
	UpsertErr map[string]error
	UploadErr error

	// Calls records every row-store and storage call as "op table".
	Calls []string

	Sessions map[string]backend.Session // token -> live session
	Accounts map[string]string          // email -> password

	Uploads map[string][]byte // "bucket/filename" -> content
}

var _ backend.RowStore = (*Fake)(nil)
var _ backend.SessionAuth = (*Fake)(nil)
var _ backend.BlobStore = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		tables:    make(map[string][]map[string]any),
		SelectErr: make(map[string]error),
		InsertErr: make(map[string]error),
		UpdateErr: make(map[string]error),
		UpsertErr: make(map[string]error),
		Sessions:  make(map[string]backend.Session),
		Accounts:  make(map[string]string),
		Uploads:   make(map[string][]byte),
	}
}

// Seed loads rows (any JSON-marshalable slice) into a table.
func (f *Fake) Seed(table string, rows any) {
	raw, err := json.Marshal(rows)
	if err != nil {
		panic(err)
	}
	var generic []map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		panic(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[table] = append(f.tables[table], generic...)
}

// Rows returns a decoded copy of a table for assertions.
func (f *Fake) Rows(table string, dest any) {
	f.mu.Lock()
	raw, err := json.Marshal(f.tables[table])
	f.mu.Unlock()
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		panic(err)
	}
}

// CallCount reports how many recorded calls had the given "op table" form.
func (f *Fake) CallCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *Fake) record(op, table string) {
	f.Calls = append(f.Calls, op+" "+table)
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	if fv, ok := v.(float64); ok && fv == float64(int64(fv)) {
		return strconv.FormatInt(int64(fv), 10)
	}
	return fmt.Sprint(v)
}

func matches(row map[string]any, filters []backend.Filter) bool {
	for _, flt := range filters {
		if cellString(row[flt.Column]) != flt.Value {
			return false
		}
	}
	return true
}

func less(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af < bf
	}
	return cellString(a) < cellString(b)
}

func (f *Fake) Select(ctx context.Context, table string, q backend.SelectQuery, dest any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("select", table)
	if err := f.SelectErr[table]; err != nil {
		return err
	}

	var rows []map[string]any
	for _, row := range f.tables[table] {
		if matches(row, q.Filters) {
			rows = append(rows, row)
		}
	}
	if q.OrderBy != "" {
		col, asc := q.OrderBy, q.Ascending
		sort.SliceStable(rows, func(i, j int) bool {
			if asc {
				return less(rows[i][col], rows[j][col])
			}
			return less(rows[j][col], rows[i][col])
		})
	}
	if q.HasRange {
		if q.From >= len(rows) {
			rows = nil
		} else {
			to := q.To + 1
			if to > len(rows) {
				to = len(rows)
			}
			rows = rows[q.From:to]
		}
	}
	if len(q.Columns) > 0 {
		projected := make([]map[string]any, len(rows))
		for i, row := range rows {
			p := make(map[string]any, len(q.Columns))
			for _, col := range q.Columns {
				if v, ok := row[col]; ok {
					p[col] = v
				}
			}
			projected[i] = p
		}
		rows = projected
	}

	var raw []byte
	var err error
	if q.Single {
		if len(rows) == 0 {
			return &backend.Error{Status: 406, Message: "no rows"}
		}
		raw, err = json.Marshal(rows[0])
	} else {
		if rows == nil {
			rows = []map[string]any{}
		}
		raw, err = json.Marshal(rows)
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (f *Fake) Count(ctx context.Context, table string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("count", table)
	if err := f.SelectErr[table]; err != nil {
		return 0, err
	}
	return len(f.tables[table]), nil
}

func (f *Fake) Insert(ctx context.Context, table string, rows any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("insert", table)
	if err := f.InsertErr[table]; err != nil {
		return err
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	var generic []map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		// A single row object is also accepted.
		var one map[string]any
		if err := json.Unmarshal(raw, &one); err != nil {
			return err
		}
		generic = []map[string]any{one}
	}
	for _, row := range generic {
		if cellString(row["id"]) == "" {
			f.nextID++
			row["id"] = strconv.Itoa(f.nextID)
		}
		f.tables[table] = append(f.tables[table], row)
	}
	return nil
}

func (f *Fake) Update(ctx context.Context, table string, patch map[string]any, filters ...backend.Filter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update", table)
	if err := f.UpdateErr[table]; err != nil {
		return err
	}
	if len(filters) == 0 {
		return fmt.Errorf("backendtest: update without filters")
	}
	for _, row := range f.tables[table] {
		if matches(row, filters) {
			for k, v := range patch {
				row[k] = v
			}
		}
	}
	return nil
}

func (f *Fake) Upsert(ctx context.Context, table string, row any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("upsert", table)
	if err := f.UpsertErr[table]; err != nil {
		return err
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return err
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	id := cellString(generic["id"])
	for i, existing := range f.tables[table] {
		if cellString(existing["id"]) == id {
			f.tables[table][i] = generic
			return nil
		}
	}
	f.tables[table] = append(f.tables[table], generic)
	return nil
}

// ---- SessionAuth ----

func (f *Fake) SignIn(ctx context.Context, email, password string) (backend.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, ok := f.Accounts[email]; !ok || pw != password {
		return backend.Session{}, &backend.Error{Status: 400, Message: "Invalid login credentials"}
	}
	f.nextID++
	token := "token-" + strconv.Itoa(f.nextID)
	s := backend.Session{AccessToken: token, Email: email}
	f.Sessions[token] = s
	return s, nil
}

func (f *Fake) SignOut(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Sessions, token)
	return nil
}

func (f *Fake) GetSession(ctx context.Context, token string) (backend.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.Sessions[token]
	if !ok {
		return backend.Session{}, backend.ErrNoSession
	}
	return s, nil
}

// ---- BlobStore ----

func (f *Fake) Upload(ctx context.Context, bucket, filename, contentType string, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("upload", bucket)
	if f.UploadErr != nil {
		return f.UploadErr
	}
	f.Uploads[bucket+"/"+filename] = content
	return nil
}

func (f *Fake) PublicURL(bucket, filename string) string {
	return "https://blob.test/" + bucket + "/" + filename
}
