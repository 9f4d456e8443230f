package draw

import "testing"

func TestFontMetricsWidth(t *testing.T) {
	fm := NewFontMetrics(Font{Family: "FreeSans", PointSize: 8})
	one := fm.Width("4")
	two := fm.Width("14")
	if one <= 0 {
		t.Fatalf("Width(4) = %v, want > 0", one)
	}
	if two <= one {
		t.Errorf("Width(14) = %v, want > Width(4) = %v", two, one)
	}
	if fm.Width("") != 0 {
		t.Error("empty string should have zero width")
	}
}

func TestFontMetricsScalesWithSize(t *testing.T) {
	small := NewFontMetrics(Font{PointSize: 4}).Width("12")
	large := NewFontMetrics(Font{PointSize: 8}).Width("12")
	if large <= small {
		t.Errorf("8pt width %v should exceed 4pt width %v", large, small)
	}
}

func TestFaceCached(t *testing.T) {
	a, err := Face(10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Face(10)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Face should return the cached face for the same size")
	}
}

func TestAlignHas(t *testing.T) {
	a := AlignVCenter | AlignRight | TextDontClip
	if !a.Has(AlignRight) || !a.Has(AlignVCenter|TextDontClip) {
		t.Error("Has should report set flags")
	}
	if a.Has(AlignLeft) {
		t.Error("Has(AlignLeft) should be false")
	}
}
