package wordbin

import (
	"encoding/binary"
	"fmt"

	"github.com/hanpama/msdoc/internal/document"
)

const (
	fkpPageSize = 512
	pnMask      = 0x003FFFFF
	bxPapSize   = 13
	sedSize     = 12
	noSepx      = 0xFFFFFFFF
)

// bte maps an FC range to the FKP page that formats it.
type bte struct {
	fcFirst uint32
	fcLim   uint32
	pn      uint32
}

// readPlcBte decodes a PlcBteChpx or PlcBtePapx.
func readPlcBte(plc []byte) ([]bte, error) {
	if len(plc) == 0 {
		return nil, nil
	}
	if len(plc) < 4 || (len(plc)-4)%8 != 0 {
		return nil, fmt.Errorf("PlcBte of %d bytes: %w", len(plc), ErrCorrupt)
	}
	n := (len(plc) - 4) / 8
	pns := plc[4*(n+1):]
	btes := make([]bte, n)
	for i := range btes {
		btes[i] = bte{
			fcFirst: binary.LittleEndian.Uint32(plc[4*i:]),
			fcLim:   binary.LittleEndian.Uint32(plc[4*(i+1):]),
			pn:      binary.LittleEndian.Uint32(pns[4*i:]) & pnMask,
		}
	}
	return btes, nil
}

// fkpRuns reads the run count and FC boundaries shared by both FKP kinds.
func fkpRuns(page []byte, entrySize int) (int, []uint32, error) {
	if len(page) != fkpPageSize {
		return 0, nil, fmt.Errorf("FKP page of %d bytes: %w", len(page), ErrCorrupt)
	}
	n := int(page[fkpPageSize-1])
	if 4*(n+1)+entrySize*n > fkpPageSize-1 {
		return 0, nil, fmt.Errorf("FKP with %d runs: %w", n, ErrCorrupt)
	}
	fcs := make([]uint32, n+1)
	for i := range fcs {
		fcs[i] = binary.LittleEndian.Uint32(page[4*i:])
	}
	return n, fcs, nil
}

// readChpxFkp decodes the character runs of a ChpxFkp page.
func readChpxFkp(page []byte) ([]document.Run, error) {
	n, fcs, err := fkpRuns(page, 1)
	if err != nil {
		return nil, err
	}
	rgb := page[4*(n+1):]
	runs := make([]document.Run, 0, n)
	for i := 0; i < n; i++ {
		run := &document.CharacterRun{FcStart: fcs[i], FcEnd: fcs[i+1]}
		if off := int(rgb[i]) * 2; off != 0 {
			cb := int(page[off])
			if off+1+cb > fkpPageSize-1 {
				return nil, fmt.Errorf("CHPX %d at 0x%X claims %d bytes: %w", i, off, cb, ErrCorrupt)
			}
			run.Grpprl = page[off+1 : off+1+cb]
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// readPapxFkp decodes the paragraph runs of a PapxFkp page. A run whose
// PAPX offset is zero gets style 0 and no grpprl.
func readPapxFkp(page []byte) ([]document.Run, error) {
	n, fcs, err := fkpRuns(page, bxPapSize)
	if err != nil {
		return nil, err
	}
	rgbx := page[4*(n+1):]
	runs := make([]document.Run, 0, n)
	for i := 0; i < n; i++ {
		run := &document.ParagraphRun{FcStart: fcs[i], FcEnd: fcs[i+1]}
		off := int(rgbx[i*bxPapSize]) * 2
		if off != 0 {
			papx, err := papxInFkp(page, off)
			if err != nil {
				return nil, fmt.Errorf("PAPX %d: %w", i, err)
			}
			run.Istd = binary.LittleEndian.Uint16(papx)
			run.Grpprl = papx[2:]
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// papxInFkp returns the istd and grpprl of the PapxInFkp at off.
func papxInFkp(page []byte, off int) ([]byte, error) {
	cb := int(page[off])
	start := off + 1
	size := 2*cb - 1
	if cb == 0 {
		if off+1 >= fkpPageSize-1 {
			return nil, fmt.Errorf("PAPX at 0x%X: %w", off, ErrCorrupt)
		}
		start = off + 2
		size = 2 * int(page[off+1])
	}
	if size < 2 || start+size > fkpPageSize-1 {
		return nil, fmt.Errorf("PAPX at 0x%X claims %d bytes: %w", off, size, ErrCorrupt)
	}
	return page[start : start+size], nil
}

// sed is one section descriptor of the PlcfSed.
type sed struct {
	cpStart uint32
	cpEnd   uint32
	fcSepx  uint32
}

func readPlcfSed(plc []byte) ([]sed, error) {
	if len(plc) == 0 {
		return nil, nil
	}
	if len(plc) < 4 || (len(plc)-4)%(4+sedSize) != 0 {
		return nil, fmt.Errorf("PlcfSed of %d bytes: %w", len(plc), ErrCorrupt)
	}
	n := (len(plc) - 4) / (4 + sedSize)
	data := plc[4*(n+1):]
	seds := make([]sed, n)
	for i := range seds {
		seds[i] = sed{
			cpStart: binary.LittleEndian.Uint32(plc[4*i:]),
			cpEnd:   binary.LittleEndian.Uint32(plc[4*(i+1):]),
			fcSepx:  binary.LittleEndian.Uint32(data[i*sedSize+2:]),
		}
	}
	return seds, nil
}
