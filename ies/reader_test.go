package ies

import (
	"errors"
	"testing"
)

func TestColumnLessOrdersNumberBeforeStringByPosition(t *testing.T) {
	c1 := Column{Name: "c1", Type: String, Position: 5}
	c2 := Column{Name: "c2", Type: String2, Position: 3}
	c3 := Column{Name: "c3", Type: Float, Position: 7}

	f := &File{Columns: []Column{c1, c2, c3}}
	sorted := f.SortedColumns()

	want := []string{"c3", "c2", "c1"}
	for i, name := range want {
		if sorted[i].Name != name {
			t.Fatalf("sorted[%d] = %q, want %q (full: %+v)", i, sorted[i].Name, name, sorted)
		}
	}

	if f.Columns[0].Name != "c1" || f.Columns[1].Name != "c2" || f.Columns[2].Name != "c3" {
		t.Fatalf("SortedColumns must not mutate File.Columns, got %+v", f.Columns)
	}
}

func TestDedupeNameAppendsSuffix(t *testing.T) {
	seen := map[string]int{}

	names := []string{
		dedupeName("x", seen),
		dedupeName("x", seen),
		dedupeName("x", seen),
	}

	want := []string{"x", "x_1", "x_2"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestParseRejectsShortBuffer(t *testing.T) {
	_, err := Parse(make([]byte, 10))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Parse() error = %v, want ErrInvalidFormat", err)
	}
}

func TestParseRejectsBadRegionOffsets(t *testing.T) {
	f := &File{
		Header: Header{Name: "bad", RowCount: 0, ColumnCount: 0},
	}

	blob, err := f.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	// Corrupt resource_offset so rowsStart falls before the start of the buffer.
	blob[headerSizePatchAt+4] = 0xFF
	blob[headerSizePatchAt+5] = 0xFF

	if _, err := Parse(blob); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Parse() error = %v, want ErrInvalidFormat", err)
	}
}

func TestValueTypeMismatch(t *testing.T) {
	v := NumberValue(1.5)
	if _, err := v.String(); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("String() on numeric value error = %v, want ErrTypeMismatch", err)
	}

	s := StringValue("hi")
	if _, err := s.Float32(); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("Float32() on string value error = %v, want ErrTypeMismatch", err)
	}
}

func TestRowAccessorsMissingColumn(t *testing.T) {
	r := &Row{Values: map[string]Value{}}

	if _, err := r.Float32("missing"); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("Float32() error = %v, want ErrFieldNotFound", err)
	}
	if _, err := r.StringValue("missing"); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("StringValue() error = %v, want ErrFieldNotFound", err)
	}
}
