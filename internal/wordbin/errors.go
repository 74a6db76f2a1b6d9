package wordbin

import "errors"

var (
	ErrNotWordDocument = errors.New("wordbin: not a Word binary document")
	ErrEncrypted       = errors.New("wordbin: encrypted documents are not supported")
	ErrCorrupt         = errors.New("wordbin: corrupt document structure")
)
