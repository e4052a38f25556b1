package extrapolate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testValues = []int64{1, 2, 6, 24}

func TestStoreAdd(t *testing.T) {
	store := NewStore(StoreConfig{})
	want := []int64{1, 2, 6, 24}
	store.Add("s1", want)
	got, ok := store.m["s1"]
	if !ok {
		t.Fatalf("key should exist in store")
	}
	want[0] = 42
	if got[0] == 42 {
		t.Fatalf("stored sequence should be a copy")
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(StoreConfig{})
	store.Add("s1", testValues)
	store.Delete("s1")
	if _, ok := store.m["s1"]; ok {
		t.Fatalf("key should not exist in store")
	}
}

func TestStoreGet(t *testing.T) {
	store := NewStore(StoreConfig{})
	store.Add("s1", testValues)
	got, ok := store.Get("s1")
	if !ok {
		t.Fatalf("got %t, want true", ok)
	}
	if d := cmp.Diff(testValues, got); d != "" {
		t.Fatalf("mismatch (-want +got):\n%s", d)
	}
	got[0] = 42
	if store.m["s1"][0] == 42 {
		t.Fatalf("returned sequence should be a copy")
	}
	if _, ok = store.Get("s2"); ok {
		t.Fatalf("got %t, want false", ok)
	}
}

func TestStoreDumpLoad(t *testing.T) {
	src := NewStore(StoreConfig{})
	src.Add("k1", testValues)
	src.Add("k11", []int64{-1, 0, 1 << 40, -(1 << 62)})
	src.Add("empty", []int64{})
	dump, err := src.Dump()
	if err != nil {
		t.Fatalf("got error %s, want error nil", err)
	}
	dst := NewStore(StoreConfig{})
	dst.Add("stale", testValues)
	if err := dst.Load(dump); err != nil {
		t.Fatalf("got error %s, want error nil", err)
	}
	if d := cmp.Diff(src.m, dst.m); d != "" {
		t.Fatalf("mismatch (-want +got):\n%s", d)
	}
}

func TestStoreLoadInvalid(t *testing.T) {
	store := NewStore(StoreConfig{})
	store.Add("k1", testValues)
	for i, data := range [][]byte{{0x80}, {0x04, 'k'}, {0x02, 'k', 0x06, 0x02}} {
		if err := store.Load(data); err == nil {
			t.Fatalf("test %d: got error nil, want non nil error", i)
		}
	}
	if d := cmp.Diff(testValues, store.m["k1"]); d != "" {
		t.Fatalf("store modified by failed load (-want +got):\n%s", d)
	}
}

func TestStoreKeys(t *testing.T) {
	store := NewStore(StoreConfig{})
	store.Add("k2", testValues)
	store.Add("k1", testValues)
	want := []string{"k1", "k2"}
	if d := cmp.Diff(want, store.Keys()); d != "" {
		t.Fatalf("mismatch (-want +got):\n%s", d)
	}
}

func TestStoreExecuteUnknownStatement(t *testing.T) {
	statement := Statement{Key: "s1", Value: 1, CreateIfNotExists: true}
	for _, v := range []uint8{statementUnknown, statementUnknown + 1} {
		t.Run(fmt.Sprintf("Type=%d", v), func(t *testing.T) {
			statement.Type = v
			if err := NewStore(StoreConfig{}).Execute(statement); err == nil {
				t.Fatal("got error nil, want non nil error")
			}
		})
	}
}

func TestStoreExecuteKeyDoesNotExist(t *testing.T) {
	statement := Statement{Key: "s1", Type: StatementAppend, Value: 1}
	if err := NewStore(StoreConfig{}).Execute(statement); err == nil {
		t.Fatal("got error nil, want non nil error")
	}
}

func TestStoreExecute(t *testing.T) {
	factorial := Schedule{Divide, Subtract}
	tests := []struct {
		id         string
		statements []Statement
		want       []int64
		wantErr    error
	}{
		{
			"Append",
			[]Statement{
				{Key: "k1", Type: StatementAppend, Value: 3, CreateIfNotExists: true},
				{Key: "k1", Type: StatementAppend, Value: 5},
			},
			[]int64{3, 5},
			nil,
		},
		{
			"Extend",
			[]Statement{
				{Key: "k1", Type: StatementAppend, Value: 1, CreateIfNotExists: true},
				{Key: "k1", Type: StatementAppend, Value: 2},
				{Key: "k1", Type: StatementAppend, Value: 6},
				{Key: "k1", Type: StatementAppend, Value: 24},
				{Key: "k1", Type: StatementExtend, Schedule: factorial},
				{Key: "k1", Type: StatementExtend, Schedule: factorial},
			},
			[]int64{1, 2, 6, 24, 120, 720},
			nil,
		},
		{
			"ExtendTooShort",
			[]Statement{
				{Key: "k1", Type: StatementAppend, Value: 1, CreateIfNotExists: true},
				{Key: "k1", Type: StatementExtend, Schedule: factorial},
			},
			[]int64{1},
			ErrTooShort,
		},
		{
			"ExtendDivisionByZero",
			[]Statement{
				{Key: "k1", Type: StatementAppend, Value: 0, CreateIfNotExists: true},
				{Key: "k1", Type: StatementAppend, Value: 1},
				{Key: "k1", Type: StatementExtend, Schedule: Schedule{Divide}},
			},
			[]int64{0, 1},
			ErrDivisionByZero,
		},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			store := NewStore(StoreConfig{})
			var err error
			for _, statement := range tt.statements {
				if err = store.Execute(statement); err != nil {
					break
				}
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if d := cmp.Diff(tt.want, store.m["k1"]); d != "" {
				t.Fatalf("mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestStoreBatch(t *testing.T) {
	statements := []Statement{
		{Key: "k1", Type: StatementAppend, Value: 1, CreateIfNotExists: true},
		{Key: "k2", Type: StatementAppend, Value: 1},
		{Key: "k1", Type: StatementAppend, Value: 2},
		{Key: "k1", Type: StatementExtend, Schedule: Schedule{Flip}},
		{Key: "k1", Type: StatementExtend, Schedule: Schedule{Subtract}},
	}
	store := NewStore(StoreConfig{})
	result := store.Batch(statements)
	if !result.HasErrors() {
		t.Fatal("got false, want true")
	}
	errs := result.ErrorVars()
	if len(errs) != len(statements) {
		t.Fatalf("got %d errors, want %d", len(errs), len(statements))
	}
	for i, wantErr := range []bool{false, true, false, true, false} {
		if (errs[i] != nil) != wantErr {
			t.Fatalf("statement %d: got error %v", i, errs[i])
		}
	}
	if d := cmp.Diff([]int64{1, 2, 3}, store.m["k1"]); d != "" {
		t.Fatalf("mismatch (-want +got):\n%s", d)
	}
}

func TestBatchResultErrorVars(t *testing.T) {
	e1 := errors.New("e1")
	e2 := errors.New("e2")
	b := batchResult{
		errors: map[int]error{1: e1, 2: e2},
		n:      5,
	}
	want := []error{nil, e1, e2, nil, nil}
	got := b.ErrorVars()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBatchResultHasErrors(t *testing.T) {
	tests := []struct {
		id   int
		b    batchResult
		want bool
	}{
		{1, batchResult{errors: make(map[int]error), n: 3}, false},
		{2, batchResult{errors: map[int]error{1: errors.New("e1"), 2: errors.New("e2")}, n: 3}, true},
	}
	for _, tt := range tests {
		got := tt.b.HasErrors()
		if got != tt.want {
			t.Fatalf("test %d: got %t, want %t", tt.id, got, tt.want)
		}
	}
}
