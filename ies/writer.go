package ies

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kagenova/ipfpack/internal/binutil"
)

// Bytes serializes f to an in-memory IES blob.
func (f *File) Bytes() ([]byte, error) {
	var buf bytes.Buffer

	if err := writeHeader(&buf, f.Header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, col := range f.Columns {
		if err := writeColumnRecord(&buf, col); err != nil {
			return nil, fmt.Errorf("write column %d (%s): %w", i, col.Name, err)
		}
	}

	rowsStart := buf.Len()

	sortedColumns := f.SortedColumns()
	for i, row := range f.Rows {
		if err := writeRow(&buf, row, sortedColumns); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	out := buf.Bytes()

	dataOffset := uint32(len(f.Columns)) * columnRecordSize //nolint:gosec // column counts fit u32 by format contract
	resourceOffset := uint32(len(out) - rowsStart)           //nolint:gosec // bounded by format contract
	fileSize := uint32(len(out))                             //nolint:gosec // bounded by format contract

	patchHeaderSizes(out, dataOffset, resourceOffset, fileSize)

	return out, nil
}

// writeHeader writes the fixed header record with placeholder size fields;
// Bytes patches data_offset/resource_offset/file_size afterward.
func writeHeader(w io.Writer, h Header) error {
	if err := binutil.WriteFixedString(w, h.Name, headerNameSize); err != nil {
		return err
	}
	if err := binutil.WriteU16LE(w, h.Version); err != nil {
		return err
	}
	if _, err := w.Write(make([]byte, 2)); err != nil {
		return err
	}
	if err := binutil.WriteU32LE(w, h.DataOffset); err != nil {
		return err
	}
	if err := binutil.WriteU32LE(w, h.ResourceOffset); err != nil {
		return err
	}
	if err := binutil.WriteU32LE(w, h.FileSize); err != nil {
		return err
	}

	useClassID := byte(0)
	if h.UseClassID {
		useClassID = 1
	}
	if _, err := w.Write([]byte{useClassID, 0}); err != nil {
		return err
	}

	if err := binutil.WriteU16LE(w, h.RowCount); err != nil {
		return err
	}
	if err := binutil.WriteU16LE(w, h.ColumnCount); err != nil {
		return err
	}
	if err := binutil.WriteU16LE(w, h.NumberColumnCount); err != nil {
		return err
	}
	if err := binutil.WriteU16LE(w, h.StringColumnCount); err != nil {
		return err
	}

	_, err := w.Write(make([]byte, 2))
	return err
}

// writeColumnRecord writes one 136-byte column record with XORed fixed
// 64-byte name fields.
func writeColumnRecord(w io.Writer, c Column) error {
	if err := binutil.WriteXoredFixedString(w, c.Name, columnNameSize, xorKey); err != nil {
		return err
	}
	if err := binutil.WriteXoredFixedString(w, c.Name2, columnNameSize, xorKey); err != nil {
		return err
	}
	if err := binutil.WriteU16LE(w, uint16(c.Type)); err != nil {
		return err
	}
	if err := binutil.WriteU16LE(w, uint16(c.Access)); err != nil {
		return err
	}
	if err := binutil.WriteU16LE(w, c.Sync); err != nil {
		return err
	}

	return binutil.WriteU16LE(w, c.Position)
}

// writeRow writes one row: class id, class name, one value per column in
// sortedColumns order (zero-valued if the row has no entry for a column),
// then a use_scr byte per string column in sortedColumns order.
func writeRow(w io.Writer, row Row, sortedColumns []Column) error {
	if err := binutil.WriteI32LE(w, row.ClassID); err != nil {
		return err
	}
	if err := binutil.WriteXoredLPString(w, row.ClassName, xorKey); err != nil {
		return err
	}

	for _, col := range sortedColumns {
		v, ok := row.Values[col.Name]
		if col.IsNumber() {
			var num float32
			if ok {
				var err error
				num, err = v.Float32()
				if err != nil {
					return fmt.Errorf("column %q: %w", col.Name, err)
				}
			}

			if err := binutil.WriteF32LE(w, num); err != nil {
				return err
			}
			continue
		}

		var str string
		if ok {
			var err error
			str, err = v.String()
			if err != nil {
				return fmt.Errorf("column %q: %w", col.Name, err)
			}
		}

		if err := binutil.WriteXoredLPString(w, str, xorKey); err != nil {
			return err
		}
	}

	for _, col := range sortedColumns {
		if col.IsNumber() {
			continue
		}

		flag := byte(0)
		if row.UseScr[col.Name] {
			flag = 1
		}
		if _, err := w.Write([]byte{flag}); err != nil {
			return err
		}
	}

	return nil
}

// patchHeaderSizes overwrites the three size u32s at the fixed header
// offset in an already-serialized blob.
func patchHeaderSizes(buf []byte, dataOffset, resourceOffset, fileSize uint32) {
	binary.LittleEndian.PutUint32(buf[headerSizePatchAt:headerSizePatchAt+4], dataOffset)
	binary.LittleEndian.PutUint32(buf[headerSizePatchAt+4:headerSizePatchAt+8], resourceOffset)
	binary.LittleEndian.PutUint32(buf[headerSizePatchAt+8:headerSizePatchAt+12], fileSize)
}
