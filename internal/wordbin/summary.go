package wordbin

import (
	"fmt"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"
)

const summaryInformationStream = "SummaryInformation"

// SummaryProperty is one entry of the summary information property set.
type SummaryProperty struct {
	Name  string
	Type  string
	Value string
}

// Summary holds the \x05SummaryInformation property set.
type Summary struct {
	Properties []SummaryProperty
}

// Get returns the value of the named property.
func (s *Summary) Get(name string) (string, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

func (s *Summary) Title() string {
	v, _ := s.Get("Title")
	return v
}

func (s *Summary) Author() string {
	v, _ := s.Get("Author")
	return v
}

// Summary reads the document's summary information. A document without
// one yields an empty Summary.
func (r *Reader) Summary() (*Summary, error) {
	summary := &Summary{}
	if r.ra == nil {
		return summary, nil
	}

	doc, err := mscfb.New(r.ra)
	if err != nil {
		return nil, err
	}

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if len(entry.Path) > 0 || entry.Name != summaryInformationStream || !msoleps.IsMSOLEPS(entry.Initial) {
			continue
		}

		set := msoleps.New()
		if err := set.Reset(doc); err != nil {
			return nil, fmt.Errorf("failed to read summary information: %w", err)
		}
		for _, p := range set.Property {
			summary.Properties = append(summary.Properties, SummaryProperty{
				Name:  p.Name,
				Type:  p.Type(),
				Value: p.String(),
			})
		}
		break
	}
	return summary, nil
}
