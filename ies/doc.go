/*
Package ies reads and writes the IES tabular data format: a header, a
column table, and a row region carrying typed columns (numeric or string)
and rows keyed by a class identifier. Column names and string values are
obfuscated with XOR 0x01; the header name is plain UTF-8.

	f, err := ies.Parse(blob)
	if err != nil {
	    return err
	}

	for _, row := range f.Rows {
	    v, err := row.Float32("N")
	    ...
	}

	out, err := f.Bytes()
*/
package ies
