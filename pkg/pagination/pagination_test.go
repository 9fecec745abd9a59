package pagination

import (
	"testing"
	"time"
)

func TestPaginationParamsValidate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	if p.Page != 1 || p.PerPage != 100 {
		t.Fatalf("unexpected params %+v", p)
	}
	if p.Offset() != 0 {
		t.Fatalf("expected offset 0, got %d", p.Offset())
	}

	p = &PaginationParams{Page: 3, PerPage: 0}
	p.Validate()
	if p.PerPage != 20 || p.Offset() != 40 {
		t.Fatalf("unexpected params %+v offset %d", p, p.Offset())
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	if p.TotalPages != 3 || !p.HasNext || !p.HasPrev {
		t.Fatalf("unexpected pagination %+v", p)
	}
	if NewPagination(1, 20, 0).HasNext {
		t.Fatal("empty result should not have a next page")
	}
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	params := &CursorParams{Cursor: EncodeCursor("abc", at)}
	cursor, err := params.DecodeCursor()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor.ID != "abc" || !cursor.At.Equal(at) {
		t.Fatalf("unexpected cursor %+v", cursor)
	}

	bad := &CursorParams{Cursor: "%%%"}
	if _, err := bad.DecodeCursor(); err == nil {
		t.Fatal("expected an error for a malformed cursor")
	}
}

func TestNewCursorPagination(t *testing.T) {
	at := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	ids := []string{"a", "b", "c"}
	key := func(id string) (string, time.Time) { return id, at }

	p, items := NewCursorPagination(ids, 2, false, key)
	if len(items) != 2 || !p.HasNext || p.NextCursor == nil {
		t.Fatalf("unexpected page %v %+v", items, p)
	}

	p, items = NewCursorPagination(ids[:1], 2, true, key)
	if len(items) != 1 || p.HasNext || !p.HasPrev {
		t.Fatalf("unexpected last page %v %+v", items, p)
	}
}
