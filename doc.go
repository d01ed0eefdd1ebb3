/*
Package ipf provides read, extract, edit, and save operations for IPF
(archive container) files, and layers the PKWARE traditional stream cipher
and raw DEFLATE codec used by its entries. It is designed around a seekable
backing byte source: opening an archive parses only the footer and entry
table, and entry payloads are read lazily and in parallel.

# Reading

Open an archive and iterate its entries:

	a, err := ipf.Open("data.ipf", ipf.ReaderOptions{})
	if err != nil {
	    return err
	}
	defer a.Close()

	for _, e := range a.Entries() {
	    data, err := e.GetData()
	    if err != nil {
	        return err
	    }
	    _ = data
	}

Extraction of many entries is embarrassingly parallel; ExtractAll drives a
worker pool over the archive's shared, mutex-guarded backing reader:

	if err := a.ExtractAll(context.Background(), "out/", ipf.ExtractOptions{}); err != nil {
	    return err
	}

# Editing and saving

New entries, replacements, and deletions are staged directly on the
in-memory entry list and committed with one whole-archive rewrite:

	if _, err := a.AddFile("data", "hello.txt", []byte("Hello")); err != nil {
	    return err
	}

	reopenRequired, err := a.Save("data.ipf")
	if err != nil {
	    return err
	}
	if reopenRequired {
	    a, err = ipf.Open("data.ipf", ipf.ReaderOptions{})
	}

# Building from a folder

New archives can be built entirely from a filesystem tree. AddFolder with
no pack name auto-derives packs from "*.ipf"-suffixed subdirectories;
with a pack name it ingests everything under the given directory into that
one pack:

	a := ipf.New(0, 1000000)
	if err := a.AddFolder("", "./source-tree", ipf.AddFolderOptions{}); err != nil {
	    return err
	}
	if _, err := a.Save("out.ipf"); err != nil {
	    return err
	}

# Version gate

The PKWARE cipher layer is only applied when new_version > 11000 or
new_version == 0 (see Archive.CipherEnabled). Entries whose path matches a
no-compression extension (.jpg, .jpeg, .fsb, .mp3) are stored verbatim,
bypassing both compression and encryption.
*/
package ipf
