package wordbin

import (
	"bytes"
	"fmt"
	"io"

	"github.com/richardlehane/mscfb"
)

const wordDocumentStream = "WordDocument"

// Reader wraps an open Word binary document.
type Reader struct {
	ra    io.ReaderAt
	Fib   Fib
	word  []byte
	table []byte
}

// OpenReader opens a Word 97-2003 file and returns a Reader.
func OpenReader(ra io.ReaderAt) (*Reader, error) {
	r := &Reader{ra: ra}

	word, err := r.readStream(wordDocumentStream)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", wordDocumentStream, err)
	}
	r.word = word

	r.Fib, err = readFib(bytes.NewReader(word))
	if err != nil {
		return nil, fmt.Errorf("failed to read FIB: %w", err)
	}
	if r.Fib.Flags.Encrypted() || r.Fib.Flags.Obfuscated() {
		return nil, ErrEncrypted
	}

	r.table, err = r.readStream(r.Fib.TableStream())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.Fib.TableStream(), err)
	}

	return r, nil
}

// openStream opens a named stream from the OLE container.
func (r *Reader) openStream(name string) (io.Reader, error) {
	doc, err := mscfb.New(r.ra)
	if err != nil {
		return nil, err
	}

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		fullPath := ""
		for _, p := range entry.Path {
			fullPath += p + "/"
		}
		fullPath += entry.Name

		if fullPath == name {
			return doc, nil
		}
	}
	return nil, fmt.Errorf("stream %s not found", name)
}

func (r *Reader) readStream(name string) ([]byte, error) {
	stream, err := r.openStream(name)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stream)
}

// tableBytes returns the table stream bytes p points at.
func (r *Reader) tableBytes(p FcLcb) ([]byte, error) {
	if p.Empty() {
		return nil, nil
	}
	end := uint64(p.Fc) + uint64(p.Lcb)
	if end > uint64(len(r.table)) {
		return nil, fmt.Errorf("structure at 0x%X+%d beyond table stream of %d bytes: %w",
			p.Fc, p.Lcb, len(r.table), ErrCorrupt)
	}
	return r.table[p.Fc:end], nil
}

// page returns FKP page pn of the WordDocument stream.
func (r *Reader) page(pn uint32) ([]byte, error) {
	start := uint64(pn) * fkpPageSize
	if start+fkpPageSize > uint64(len(r.word)) {
		return nil, fmt.Errorf("FKP page %d beyond WordDocument stream: %w", pn, ErrCorrupt)
	}
	return r.word[start : start+fkpPageSize], nil
}

// sepx returns the grpprl of the SEPX at fc, or nil when the section has
// none.
func (r *Reader) sepx(fc uint32) ([]byte, error) {
	if fc == noSepx {
		return nil, nil
	}
	if uint64(fc)+2 > uint64(len(r.word)) {
		return nil, fmt.Errorf("SEPX at 0x%X beyond WordDocument stream: %w", fc, ErrCorrupt)
	}
	cb := int(int16(uint16(r.word[fc]) | uint16(r.word[fc+1])<<8))
	start := int(fc) + 2
	if cb < 0 || start+cb > len(r.word) {
		return nil, fmt.Errorf("SEPX at 0x%X claims %d bytes: %w", fc, cb, ErrCorrupt)
	}
	return r.word[start : start+cb], nil
}
