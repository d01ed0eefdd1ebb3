package ies

import (
	"fmt"
	"sort"
)

// On-disk layout constants. The header is 156 bytes by the field-level
// enumeration used throughout this package: a 128-byte name, version (2),
// 2 bytes padding, three u32 size fields (12), use_class_id (1), 1 byte
// padding, four u16 counts (8), and 2 bytes trailing padding — 128+2+2+12+1+1+8+2 = 156.
// The size-field patch offset of 132 (name+version+pad = 128+2+2) holds
// regardless of the full header length.
const (
	headerNameSize    = 128
	headerSize        = 156
	headerSizePatchAt = 132
	columnRecordSize  = 136
	columnNameSize    = 64

	// xorKey is the fixed obfuscation byte applied to all "XORed" strings.
	xorKey byte = 0x01
)

// ColumnType is the on-disk type tag of an IES column.
type ColumnType uint16

// Column type constants.
const (
	Float   ColumnType = 0
	String  ColumnType = 1
	String2 ColumnType = 2
)

// AccessLevel is the on-disk access tag of an IES column.
type AccessLevel uint16

// Column access constants.
const (
	AccessEP AccessLevel = 0
	AccessCP AccessLevel = 1
	AccessVP AccessLevel = 2
	AccessSP AccessLevel = 3
	AccessCT AccessLevel = 4
)

// Header carries the file's name, version, region sizes, and column/row counts.
type Header struct {
	Name              string
	Version           uint16
	DataOffset        uint32
	ResourceOffset    uint32
	FileSize          uint32
	UseClassID        bool
	RowCount          uint16
	ColumnCount       uint16
	NumberColumnCount uint16
	StringColumnCount uint16
}

// Column describes one table column.
type Column struct {
	Name     string
	Name2    string
	Type     ColumnType
	Access   AccessLevel
	Sync     uint16
	Position uint16
}

// IsNumber reports whether the column holds numeric (Float) values.
func (c Column) IsNumber() bool {
	return c.Type == Float
}

// isStringLike reports whether t is String or String2; the two are treated
// as equal for the purposes of column comparison.
func isStringLike(t ColumnType) bool {
	return t == String || t == String2
}

// columnLess orders columns: if types are equal, or one is String and the
// other String2, compare by position; otherwise the smaller type wins. This
// also produces the writer's "numeric columns precede string columns, then
// by position" order, since Float's type value (0) is smaller than both
// string types.
func columnLess(a, b Column) bool {
	sameGroup := a.Type == b.Type || (isStringLike(a.Type) && isStringLike(b.Type))
	if sameGroup {
		return a.Position < b.Position
	}

	return a.Type < b.Type
}

// Value is a tagged IES cell value: either a float32 or a string. Coercion
// between the two is an explicit, hard error — there is no implicit
// string-as-numeric conversion.
type Value struct {
	isString bool
	num      float32
	str      string
}

// NumberValue wraps a float32 cell value.
func NumberValue(v float32) Value {
	return Value{num: v}
}

// StringValue wraps a string cell value.
func StringValue(v string) Value {
	return Value{isString: true, str: v}
}

// IsString reports whether the value holds a string.
func (v Value) IsString() bool {
	return v.isString
}

// Float32 returns the wrapped float32, or ErrTypeMismatch if v holds a string.
func (v Value) Float32() (float32, error) {
	if v.isString {
		return 0, fmt.Errorf("%w: value is a string", ErrTypeMismatch)
	}

	return v.num, nil
}

// String returns the wrapped string, or ErrTypeMismatch if v holds a number.
func (v Value) String() (string, error) {
	if !v.isString {
		return "", fmt.Errorf("%w: value is a number", ErrTypeMismatch)
	}

	return v.str, nil
}

// Row is one data row keyed by ClassID, carrying one Value per column name
// and one use_scr flag per string column name.
type Row struct {
	ClassID   int32
	ClassName string
	Values    map[string]Value
	UseScr    map[string]bool
}

// Float32 returns the named column's value as a float32.
func (r *Row) Float32(column string) (float32, error) {
	v, ok := r.Values[column]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrFieldNotFound, column)
	}

	return v.Float32()
}

// StringValue returns the named column's value as a string.
func (r *Row) StringValue(column string) (string, error) {
	v, ok := r.Values[column]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrFieldNotFound, column)
	}

	return v.String()
}

// File is a parsed IES table: a header, columns in their original on-disk
// order (after name deduplication), and rows.
type File struct {
	Header  Header
	Columns []Column
	Rows    []Row
}

// SortedColumns returns a stable copy of Columns ordered with numeric
// columns before string columns, and within each group by Position.
func (f *File) SortedColumns() []Column {
	sorted := make([]Column, len(f.Columns))
	copy(sorted, f.Columns)

	sort.SliceStable(sorted, func(i, j int) bool {
		return columnLess(sorted[i], sorted[j])
	})

	return sorted
}
