// Package msdoc decodes and encodes the property modifiers (sprms) of the
// Word 97-2003 binary format.
//
// Word stores formatting as grpprls: packed lists of sprms, each a change to
// a character, paragraph, section or table property set. Applying a grpprl
// to a base property set is called uncompressing; producing the grpprl that
// turns one property set into another is called compressing.
//
// # Example Usage
//
//	base := msdoc.NewCharacterProperties()
//	chp, err := msdoc.UncompressCHP(base, []byte{0x35, 0x08, 0x01}, 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(chp.Bold) // true
//
//	grpprl := msdoc.CompressCHP(chp, base) // 35 08 01
//
// To list the formatting runs of a .doc file:
//
//	file, err := os.Open("report.doc")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	if err := msdoc.DumpDocument(file, os.Stdout); err != nil {
//		log.Fatal(err)
//	}
//
// # Property Kinds
//
//   - CHP: character properties (bold, size, fonts, colors...)
//   - PAP: paragraph properties (indents, spacing, tabs, borders...)
//   - SEP: section properties (page size, margins, columns...)
//   - TAP: table row properties (cell boundaries, cell descriptors...)
//
// Picture sprms (PIC) are recognised by the decoder but have no property
// set.
package msdoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/hanpama/msdoc/internal/props"
	"github.com/hanpama/msdoc/internal/render"
	"github.com/hanpama/msdoc/internal/sprm"
	"github.com/hanpama/msdoc/internal/wordbin"
)

type (
	CharacterProperties = props.CharacterProperties
	ParagraphProperties = props.ParagraphProperties
	SectionProperties   = props.SectionProperties
	TableProperties     = props.TableProperties

	Operation = sprm.Operation
	Kind      = sprm.Kind
	Format    = render.Format
)

const (
	KindPAP = sprm.KindPAP
	KindCHP = sprm.KindCHP
	KindPIC = sprm.KindPIC
	KindSEP = sprm.KindSEP
	KindTAP = sprm.KindTAP

	FormatText     = render.FormatText
	FormatCompact  = render.FormatCompact
	FormatMarkdown = render.FormatMarkdown
	FormatCSV      = render.FormatCSV
	FormatHTML     = render.FormatHTML
)

var (
	ErrTruncated       = sprm.ErrTruncated
	ErrMalformed       = sprm.ErrMalformed
	ErrOperandTooLarge = sprm.ErrOperandTooLarge
	ErrEncrypted       = wordbin.ErrEncrypted
	ErrNotWordDocument = wordbin.ErrNotWordDocument
)

func NewCharacterProperties() *CharacterProperties { return props.NewCharacterProperties() }
func NewParagraphProperties() *ParagraphProperties { return props.NewParagraphProperties() }
func NewSectionProperties() *SectionProperties     { return props.NewSectionProperties() }
func NewTableProperties() *TableProperties         { return props.NewTableProperties() }

// UncompressCHP applies the character sprms of grpprl[offset:] to a copy of
// base. Sprms of other kinds are skipped.
func UncompressCHP(base *CharacterProperties, grpprl []byte, offset int) (*CharacterProperties, error) {
	return sprm.UncompressCHP(base, grpprl, offset)
}

// UncompressPAP applies the paragraph sprms of grpprl[offset:] to a copy of
// base.
func UncompressPAP(base *ParagraphProperties, grpprl []byte, offset int) (*ParagraphProperties, error) {
	return sprm.UncompressPAP(base, grpprl, offset)
}

// UncompressPAPX applies a PAPX, a style index followed by a grpprl.
func UncompressPAPX(base *ParagraphProperties, papx []byte) (*ParagraphProperties, error) {
	return sprm.UncompressPAPX(base, papx)
}

func UncompressSEP(base *SectionProperties, grpprl []byte, offset int) (*SectionProperties, error) {
	return sprm.UncompressSEP(base, grpprl, offset)
}

func UncompressTAP(base *TableProperties, grpprl []byte, offset int) (*TableProperties, error) {
	return sprm.UncompressTAP(base, grpprl, offset)
}

// CompressCHP returns the grpprl that turns old into cur. Equal property
// sets give an empty grpprl.
func CompressCHP(cur, old *CharacterProperties) []byte { return sprm.CompressCHP(cur, old) }
func CompressPAP(cur, old *ParagraphProperties) []byte { return sprm.CompressPAP(cur, old) }
func CompressSEP(cur, old *SectionProperties) []byte   { return sprm.CompressSEP(cur, old) }
func CompressTAP(cur, old *TableProperties) []byte     { return sprm.CompressTAP(cur, old) }

// Operations decodes every sprm of grpprl from offset onwards.
func Operations(grpprl []byte, offset int) ([]Operation, error) {
	return sprm.Operations(grpprl, offset)
}

// ParseKind accepts "chp", "pap", "sep", "tap" and "pic" in any case.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindCHP, KindPAP, KindSEP, KindTAP, KindPIC} {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown property kind %q", s)
}

// ParseFormat accepts "text", "compact", "markdown", "csv" and "html".
func ParseFormat(s string) (Format, error) {
	return render.ParseFormat(s)
}

// Option configures DumpGrpprl and DumpDocument.
type Option func(*dumpConfig)

type dumpConfig struct {
	format     Format
	properties bool
}

// WithFormat selects the output format. The default is FormatText.
func WithFormat(f Format) Option {
	return func(c *dumpConfig) { c.format = f }
}

// WithProperties adds, after each list of operations, the property fields
// the operations change against the defaults of their kind.
func WithProperties(v bool) Option {
	return func(c *dumpConfig) { c.properties = v }
}

func newDumpConfig(opts []Option) dumpConfig {
	c := dumpConfig{format: FormatText}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// DumpGrpprl writes the operations of grpprl as a table. With
// WithProperties, the property set of kind that results from applying
// grpprl to the defaults follows.
//
// Example:
//
//	msdoc.DumpGrpprl(msdoc.KindCHP, []byte{0x35, 0x08, 0x01}, os.Stdout)
func DumpGrpprl(kind Kind, grpprl []byte, out io.Writer, opts ...Option) error {
	c := newDumpConfig(opts)

	g, err := render.Operations(fmt.Sprintf("%s grpprl, %d bytes", kind, len(grpprl)), grpprl, 0)
	if err != nil {
		return fmt.Errorf("failed to decode grpprl: %w", err)
	}
	if err := g.Write(out, c.format); err != nil {
		return err
	}
	if !c.properties {
		return nil
	}

	var changes *render.Grid
	switch kind {
	case KindCHP:
		base := NewCharacterProperties()
		cur, err := UncompressCHP(base, grpprl, 0)
		if err != nil {
			return fmt.Errorf("failed to apply grpprl: %w", err)
		}
		changes = render.Changes("CHP", base, cur)
	case KindPAP:
		base := NewParagraphProperties()
		cur, err := UncompressPAP(base, grpprl, 0)
		if err != nil {
			return fmt.Errorf("failed to apply grpprl: %w", err)
		}
		changes = render.Changes("PAP", base, cur)
	case KindSEP:
		base := NewSectionProperties()
		cur, err := UncompressSEP(base, grpprl, 0)
		if err != nil {
			return fmt.Errorf("failed to apply grpprl: %w", err)
		}
		changes = render.Changes("SEP", base, cur)
	case KindTAP:
		base := NewTableProperties()
		cur, err := UncompressTAP(base, grpprl, 0)
		if err != nil {
			return fmt.Errorf("failed to apply grpprl: %w", err)
		}
		changes = render.Changes("TAP", base, cur)
	default:
		return fmt.Errorf("no property set for %s", kind)
	}
	return changes.Write(out, c.format)
}

// DumpDocument reads a Word 97-2003 binary file and writes its summary
// information followed by the operations of every section, paragraph and
// character run.
//
// Encrypted and obfuscated documents are rejected with ErrEncrypted.
func DumpDocument(file io.ReaderAt, out io.Writer, opts ...Option) error {
	c := newDumpConfig(opts)

	reader, err := wordbin.OpenReader(file)
	if err != nil {
		return fmt.Errorf("failed to parse Word file: %w", err)
	}

	summary, err := reader.Summary()
	if err != nil {
		return fmt.Errorf("failed to read summary information: %w", err)
	}
	info := &render.Grid{
		Title:  "document",
		Header: []string{"property", "value"},
		Rows: [][]string{
			{"nFib", fmt.Sprintf("0x%04X", reader.Fib.NFib)},
			{"table stream", reader.Fib.TableStream()},
			{"characters", fmt.Sprintf("%d", reader.Fib.CcpText)},
		},
	}
	for _, p := range summary.Properties {
		info.Rows = append(info.Rows, []string{p.Name, p.Value})
	}
	if err := info.Write(out, c.format); err != nil {
		return err
	}
	fmt.Fprintln(out)

	if err := render.RenderRuns(wordbin.NewRunScanner(reader), out, c.format, c.properties); err != nil {
		return fmt.Errorf("failed to render Word file: %w", err)
	}
	return nil
}
