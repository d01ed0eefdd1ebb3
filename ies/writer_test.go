package ies

import (
	"bytes"
	"reflect"
	"testing"
)

func newRoundTripFile() *File {
	columns := []Column{
		{Name: "N", Type: Float, Access: AccessEP, Position: 0},
		{Name: "DESC", Name2: "DESC2", Type: String, Access: AccessCP, Position: 1},
	}

	rows := []Row{
		{
			ClassID:   1,
			ClassName: "first",
			Values: map[string]Value{
				"N":    NumberValue(3.5),
				"DESC": StringValue("hello"),
			},
			UseScr: map[string]bool{"DESC": true},
		},
		{
			ClassID:   2,
			ClassName: "second",
			Values: map[string]Value{
				"N":    NumberValue(-1),
				"DESC": StringValue(""),
			},
			UseScr: map[string]bool{"DESC": false},
		},
	}

	return &File{
		Header: Header{
			Name:              "items",
			Version:           1,
			RowCount:          uint16(len(rows)),
			ColumnCount:       uint16(len(columns)),
			NumberColumnCount: 1,
			StringColumnCount: 1,
		},
		Columns: columns,
		Rows:    rows,
	}
}

func TestRoundTripBytesAndParse(t *testing.T) {
	f := newRoundTripFile()

	blob, err := f.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	got, err := Parse(blob)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got.Header.Name != f.Header.Name {
		t.Fatalf("Header.Name = %q, want %q", got.Header.Name, f.Header.Name)
	}
	if got.Header.RowCount != f.Header.RowCount || got.Header.ColumnCount != f.Header.ColumnCount {
		t.Fatalf("Header counts mismatch: got %+v, want %+v", got.Header, f.Header)
	}

	if len(got.Columns) != len(f.Columns) {
		t.Fatalf("Columns length = %d, want %d", len(got.Columns), len(f.Columns))
	}
	for i, col := range f.Columns {
		if got.Columns[i].Name != col.Name || got.Columns[i].Type != col.Type {
			t.Fatalf("Columns[%d] = %+v, want name/type matching %+v", i, got.Columns[i], col)
		}
	}

	if len(got.Rows) != len(f.Rows) {
		t.Fatalf("Rows length = %d, want %d", len(got.Rows), len(f.Rows))
	}

	for i, row := range f.Rows {
		gotRow := got.Rows[i]
		if gotRow.ClassID != row.ClassID || gotRow.ClassName != row.ClassName {
			t.Fatalf("Rows[%d] id/name = %d/%q, want %d/%q", i, gotRow.ClassID, gotRow.ClassName, row.ClassID, row.ClassName)
		}

		n, err := gotRow.Float32("N")
		if err != nil {
			t.Fatalf("Rows[%d].Float32(N) error = %v", i, err)
		}
		wantN, _ := row.Float32("N")
		if n != wantN {
			t.Fatalf("Rows[%d].N = %v, want %v", i, n, wantN)
		}

		s, err := gotRow.StringValue("DESC")
		if err != nil {
			t.Fatalf("Rows[%d].StringValue(DESC) error = %v", i, err)
		}
		wantS, _ := row.StringValue("DESC")
		if s != wantS {
			t.Fatalf("Rows[%d].DESC = %q, want %q", i, s, wantS)
		}
	}
}

func TestBytesPatchesHeaderSizeFields(t *testing.T) {
	f := newRoundTripFile()

	blob, err := f.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	got, err := parseHeader(bytes.NewReader(blob[:headerSize]))
	if err != nil {
		t.Fatalf("parseHeader() error = %v", err)
	}

	wantDataOffset := uint32(len(f.Columns)) * columnRecordSize
	if got.DataOffset != wantDataOffset {
		t.Fatalf("DataOffset = %d, want %d", got.DataOffset, wantDataOffset)
	}
	if got.FileSize != uint32(len(blob)) {
		t.Fatalf("FileSize = %d, want %d", got.FileSize, len(blob))
	}
	if got.ResourceOffset == 0 {
		t.Fatalf("ResourceOffset = 0, want nonzero (rows region is non-empty)")
	}
}

func TestColumnsPreserveOriginalOrderNotSortedOrder(t *testing.T) {
	f := &File{
		Header: Header{Name: "x", ColumnCount: 2, NumberColumnCount: 1, StringColumnCount: 1},
		Columns: []Column{
			{Name: "DESC", Type: String, Position: 1},
			{Name: "N", Type: Float, Position: 0},
		},
	}

	blob, err := f.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	got, err := Parse(blob)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	gotNames := []string{got.Columns[0].Name, got.Columns[1].Name}
	wantNames := []string{"DESC", "N"}
	if !reflect.DeepEqual(gotNames, wantNames) {
		t.Fatalf("Columns order = %v, want %v (must preserve on-disk order, not sorted order)", gotNames, wantNames)
	}

	sortedNames := []string{got.SortedColumns()[0].Name, got.SortedColumns()[1].Name}
	wantSorted := []string{"N", "DESC"}
	if !reflect.DeepEqual(sortedNames, wantSorted) {
		t.Fatalf("SortedColumns order = %v, want %v", sortedNames, wantSorted)
	}
}
