package sprm

import "testing"

func TestToggleFlag(t *testing.T) {
	tests := []struct {
		operand byte
		base    bool
		want    bool
	}{
		{0x00, false, false},
		{0x00, true, false},
		{0x01, false, true},
		{0x01, true, true},
		{0x80, false, false},
		{0x80, true, true},
		{0x81, false, true},
		{0x81, true, false},
		{0x02, true, false},
		{0x7F, true, false},
		{0xFF, true, false},
	}
	for _, tt := range tests {
		if got := ToggleFlag(tt.operand, tt.base); got != tt.want {
			t.Errorf("ToggleFlag(0x%02X, %v) = %v, want %v", tt.operand, tt.base, got, tt.want)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		sprm uint16
		want string
	}{
		{0x0835, "sprmCFBold"},
		{0x4A43, "sprmCHps"},
		{0xC615, "sprmPChgTabs"},
		{0x2403, "sprmPJc80"},
		{0x3009, "sprmSBkc"},
		{0xD608, "sprmTDefTable"},
		{0x7621, "sprmTInsert"},
	}
	for _, tt := range tests {
		got, ok := Name(tt.sprm)
		if !ok || got != tt.want {
			t.Errorf("Name(0x%04X) = %q, %v, want %q", tt.sprm, got, ok, tt.want)
		}
	}
	for _, sprm := range []uint16{0x0000, 0x0C00, 0x081F} {
		if got, ok := Name(sprm); ok {
			t.Errorf("Name(0x%04X) = %q for an unknown sprm", sprm, got)
		}
	}
}

func TestCompressibleKinds(t *testing.T) {
	for _, kind := range []Kind{KindCHP, KindPAP, KindSEP, KindTAP} {
		sprms := Compressible(kind)
		if len(sprms) == 0 {
			t.Errorf("%s: no compressible sprms", kind)
		}
		for _, sprm := range sprms {
			if k := Kind((sprm & kindMask) >> kindShift); k != kind {
				t.Errorf("%s: 0x%04X belongs to %s", kind, sprm, k)
			}
		}
	}
	if Compressible(KindPIC) != nil {
		t.Error("picture sprms are not compressible")
	}
}

func TestNewCatalogRejectsBadTables(t *testing.T) {
	type rec struct {
		A uint8
		B uint16
	}
	clone := func(r *rec) *rec {
		c := *r
		return &c
	}
	tests := []struct {
		name    string
		kind    Kind
		entries []entry[rec]
	}{
		{"wrong kind", KindPAP, []entry[rec]{
			value(0x2A40, "a", func(r *rec) *uint8 { return &r.A }),
		}},
		{"width mismatch", KindCHP, []entry[rec]{
			value(0x2A40, "b", func(r *rec) *uint16 { return &r.B }),
		}},
		{"duplicate operation", KindCHP, []entry[rec]{
			value(0x2A40, "a", func(r *rec) *uint8 { return &r.A }),
			value(0x4A40, "b", func(r *rec) *uint16 { return &r.B }),
		}},
		{"encoder without handler", KindCHP, []entry[rec]{
			{sprm: 0x2A40, name: "a", encode: func(_, _ *rec) (int32, []byte, bool) { return 0, nil, false }},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("newCatalog did not panic")
				}
			}()
			newCatalog(tt.kind, clone, tt.entries)
		})
	}
}
