package ies

import (
	"bytes"
	"fmt"
	"io"

	"github.com/kagenova/ipfpack/internal/binutil"
)

// Parse decodes an IES blob into a File.
func Parse(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: file is %d bytes, want at least %d", ErrInvalidFormat, len(data), headerSize)
	}

	header, err := parseHeader(bytes.NewReader(data[:headerSize]))
	if err != nil {
		return nil, err
	}

	fileEnd := int64(len(data))
	columnsStart := fileEnd - int64(header.ResourceOffset) - int64(header.DataOffset)
	rowsStart := fileEnd - int64(header.ResourceOffset)

	if columnsStart < int64(headerSize) || columnsStart > rowsStart || rowsStart > fileEnd {
		return nil, fmt.Errorf("%w: column/row region offsets out of range", ErrInvalidFormat)
	}

	columns, err := parseColumns(bytes.NewReader(data[columnsStart:rowsStart]), header.ColumnCount)
	if err != nil {
		return nil, err
	}

	if int(header.NumberColumnCount)+int(header.StringColumnCount) != len(columns) {
		return nil, fmt.Errorf("%w: number_column_count + string_column_count != column_count", ErrInvalidFormat)
	}

	f := &File{Header: header, Columns: columns}

	rows, err := parseRows(bytes.NewReader(data[rowsStart:fileEnd]), header, f.SortedColumns())
	if err != nil {
		return nil, err
	}
	f.Rows = rows

	return f, nil
}

// parseHeader decodes the fixed header record.
func parseHeader(r io.Reader) (Header, error) {
	name, err := binutil.ReadFixedString(r, headerNameSize)
	if err != nil {
		return Header{}, fmt.Errorf("%w: name: %w", ErrInvalidFormat, err)
	}

	version, err := binutil.ReadU16LE(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: version: %w", ErrInvalidFormat, err)
	}

	if _, err := io.CopyN(io.Discard, r, 2); err != nil {
		return Header{}, fmt.Errorf("%w: padding: %w", ErrInvalidFormat, err)
	}

	dataOffset, err := binutil.ReadU32LE(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: data_offset: %w", ErrInvalidFormat, err)
	}

	resourceOffset, err := binutil.ReadU32LE(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: resource_offset: %w", ErrInvalidFormat, err)
	}

	fileSize, err := binutil.ReadU32LE(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: file_size: %w", ErrInvalidFormat, err)
	}

	var useClassIDByte [1]byte
	if _, err := io.ReadFull(r, useClassIDByte[:]); err != nil {
		return Header{}, fmt.Errorf("%w: use_class_id: %w", ErrInvalidFormat, err)
	}

	if _, err := io.CopyN(io.Discard, r, 1); err != nil {
		return Header{}, fmt.Errorf("%w: padding: %w", ErrInvalidFormat, err)
	}

	rowCount, err := binutil.ReadU16LE(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: row_count: %w", ErrInvalidFormat, err)
	}

	columnCount, err := binutil.ReadU16LE(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: column_count: %w", ErrInvalidFormat, err)
	}

	numberColumnCount, err := binutil.ReadU16LE(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: number_column_count: %w", ErrInvalidFormat, err)
	}

	stringColumnCount, err := binutil.ReadU16LE(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: string_column_count: %w", ErrInvalidFormat, err)
	}

	return Header{
		Name:              name,
		Version:           version,
		DataOffset:        dataOffset,
		ResourceOffset:    resourceOffset,
		FileSize:          fileSize,
		UseClassID:        useClassIDByte[0] != 0,
		RowCount:          rowCount,
		ColumnCount:       columnCount,
		NumberColumnCount: numberColumnCount,
		StringColumnCount: stringColumnCount,
	}, nil
}

// parseColumns reads count 136-byte column records and deduplicates names,
// preserving on-disk order. Callers needing the read order for value
// decoding use File.SortedColumns.
func parseColumns(r io.Reader, count uint16) ([]Column, error) {
	columns := make([]Column, 0, count)
	seen := map[string]int{}

	for i := uint16(0); i < count; i++ {
		col, err := readColumnRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%w: column %d: %w", ErrInvalidFormat, i, err)
		}

		col.Name = dedupeName(col.Name, seen)
		columns = append(columns, col)
	}

	return columns, nil
}

// dedupeName returns a name guaranteed unique against seen, appending
// "_1", "_2", … on collision, and records the (possibly renamed) result.
func dedupeName(name string, seen map[string]int) string {
	n, ok := seen[name]
	if !ok {
		seen[name] = 0
		return name
	}

	for {
		n++
		candidate := fmt.Sprintf("%s_%d", name, n)
		if _, taken := seen[candidate]; !taken {
			seen[name] = n
			seen[candidate] = 0
			return candidate
		}
	}
}

// readColumnRecord reads one 136-byte column record.
func readColumnRecord(r io.Reader) (Column, error) {
	name, err := binutil.ReadXoredFixedString(r, columnNameSize, xorKey)
	if err != nil {
		return Column{}, err
	}

	name2, err := binutil.ReadXoredFixedString(r, columnNameSize, xorKey)
	if err != nil {
		return Column{}, err
	}

	typ, err := binutil.ReadU16LE(r)
	if err != nil {
		return Column{}, err
	}

	access, err := binutil.ReadU16LE(r)
	if err != nil {
		return Column{}, err
	}

	sync, err := binutil.ReadU16LE(r)
	if err != nil {
		return Column{}, err
	}

	position, err := binutil.ReadU16LE(r)
	if err != nil {
		return Column{}, err
	}

	return Column{
		Name:     name,
		Name2:    name2,
		Type:     ColumnType(typ),
		Access:   AccessLevel(access),
		Sync:     sync,
		Position: position,
	}, nil
}

// parseRows reads header.RowCount rows from r, decoding values in
// sortedColumns order.
func parseRows(r io.Reader, header Header, sortedColumns []Column) ([]Row, error) {
	rows := make([]Row, 0, header.RowCount)

	for i := uint16(0); i < header.RowCount; i++ {
		row, err := readRow(r, sortedColumns, header.StringColumnCount)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidFormat, i, err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// readRow reads one row record: class id, class name, one value per column
// in sortedColumns order, then a use_scr byte per string column.
func readRow(r io.Reader, sortedColumns []Column, stringColumnCount uint16) (Row, error) {
	classID, err := binutil.ReadI32LE(r)
	if err != nil {
		return Row{}, fmt.Errorf("class_id: %w", err)
	}

	className, err := binutil.ReadXoredLPString(r, xorKey)
	if err != nil {
		return Row{}, fmt.Errorf("class_name: %w", err)
	}

	values := make(map[string]Value, len(sortedColumns))
	for _, col := range sortedColumns {
		if col.IsNumber() {
			v, err := binutil.ReadF32LE(r)
			if err != nil {
				return Row{}, fmt.Errorf("column %q: %w", col.Name, err)
			}

			values[col.Name] = NumberValue(v)
			continue
		}

		v, err := binutil.ReadXoredLPString(r, xorKey)
		if err != nil {
			return Row{}, fmt.Errorf("column %q: %w", col.Name, err)
		}

		values[col.Name] = StringValue(v)
	}

	// use_scr region: one byte per string column per row, discarded on load.
	if _, err := io.CopyN(io.Discard, r, int64(stringColumnCount)); err != nil {
		return Row{}, fmt.Errorf("use_scr region: %w", err)
	}

	return Row{ClassID: classID, ClassName: className, Values: values, UseScr: map[string]bool{}}, nil
}
