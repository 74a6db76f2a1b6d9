package wordbin

import (
	"fmt"
	"io"

	"github.com/hanpama/msdoc/internal/document"
)

type scanPhase int

const (
	phaseSections scanPhase = iota
	phaseParagraphs
	phaseCharacters
	phaseDone
)

// RunScanner implements document.RunScanner. It yields every section, then
// every paragraph run, then every character run, one FKP page at a time.
type RunScanner struct {
	reader *Reader
	phase  scanPhase

	btes    []bte
	nextBte int

	// Runs decoded from the current page and not yet returned
	pending []document.Run
}

// NewRunScanner returns a scanner over the runs of r.
func NewRunScanner(r *Reader) *RunScanner {
	return &RunScanner{reader: r, phase: phaseSections}
}

// Next returns the next run, or io.EOF after the last one.
func (s *RunScanner) Next() (document.Run, error) {
	for len(s.pending) == 0 {
		if err := s.advance(); err != nil {
			return nil, err
		}
	}
	run := s.pending[0]
	s.pending = s.pending[1:]
	return run, nil
}

func (s *RunScanner) advance() error {
	switch s.phase {
	case phaseSections:
		if err := s.loadSections(); err != nil {
			return err
		}
		return s.enter(phaseParagraphs, s.reader.Fib.PlcfBtePapx)

	case phaseParagraphs:
		if s.nextBte >= len(s.btes) {
			return s.enter(phaseCharacters, s.reader.Fib.PlcfBteChpx)
		}
		return s.loadPage(readPapxFkp)

	case phaseCharacters:
		if s.nextBte >= len(s.btes) {
			s.phase = phaseDone
			return io.EOF
		}
		return s.loadPage(readChpxFkp)
	}
	return io.EOF
}

// enter switches to a page-walking phase over the PlcBte at p.
func (s *RunScanner) enter(phase scanPhase, p FcLcb) error {
	plc, err := s.reader.tableBytes(p)
	if err != nil {
		return err
	}
	s.btes, err = readPlcBte(plc)
	if err != nil {
		return err
	}
	s.nextBte = 0
	s.phase = phase
	return nil
}

func (s *RunScanner) loadPage(read func([]byte) ([]document.Run, error)) error {
	b := s.btes[s.nextBte]
	s.nextBte++
	page, err := s.reader.page(b.pn)
	if err != nil {
		return err
	}
	runs, err := read(page)
	if err != nil {
		return fmt.Errorf("failed to read FKP page %d: %w", b.pn, err)
	}
	s.pending = runs
	return nil
}

func (s *RunScanner) loadSections() error {
	plc, err := s.reader.tableBytes(s.reader.Fib.PlcfSed)
	if err != nil {
		return err
	}
	seds, err := readPlcfSed(plc)
	if err != nil {
		return err
	}
	for i, sd := range seds {
		grpprl, err := s.reader.sepx(sd.fcSepx)
		if err != nil {
			return fmt.Errorf("failed to read section %d: %w", i, err)
		}
		s.pending = append(s.pending, &document.SectionRun{
			CpStart: sd.cpStart,
			CpEnd:   sd.cpEnd,
			Grpprl:  grpprl,
		})
	}
	return nil
}
