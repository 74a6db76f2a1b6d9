package document

// Run is the interface for formatting runs read from a document
type Run interface {
	IsRun()
}

// CharacterRun is a stretch of text sharing one CHPX.
// FcStart and FcEnd are byte offsets into the WordDocument stream.
type CharacterRun struct {
	FcStart uint32
	FcEnd   uint32
	Grpprl  []byte
}

func (r *CharacterRun) IsRun() {}

// ParagraphRun is a paragraph mark and the PAPX that formats it.
type ParagraphRun struct {
	FcStart uint32
	FcEnd   uint32
	Istd    uint16
	Grpprl  []byte
}

func (r *ParagraphRun) IsRun() {}

// SectionRun is a section and its SEPX. CpStart and CpEnd are character
// positions.
type SectionRun struct {
	CpStart uint32
	CpEnd   uint32
	Grpprl  []byte
}

func (r *SectionRun) IsRun() {}

type RunScanner interface {
	Next() (Run, error)
}
