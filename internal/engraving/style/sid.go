package style

// Sid identifies a style setting.
type Sid int

// Style ids used by the engraving core.
const (
	SidInvalid Sid = iota
	SidSpatium
	SidFretY
	SidFretMinDistance
	SidFretMag
	SidFretNumPos
	SidFretPlacement
	SidFretStrings
	SidFretFrets
	SidFretNut
	SidFretDotSize
	SidFretStringSpacing
	SidFretFretSpacing
	SidFretOrientation
	SidFretNumMag
	SidBarreLineWidth
	SidHarmonyFretDist
	SidHarmonyMinDistance
	SidMusicalTextFont
	SidFretFont

	sidCount
)

// Kind describes how a style value is stored and resolved.
type Kind int

const (
	// KindDouble is a plain scalar.
	KindDouble Kind = iota
	// KindSpatium is a length in staff spaces; resolved to pixels with MM/P.
	KindSpatium
	// KindInt is an integer (also used for enums).
	KindInt
	// KindBool is a boolean.
	KindBool
	// KindString is a text value.
	KindString
)

type sidInfo struct {
	name string
	kind Kind
	def  any
}

// Defaults follow the engraving defaults of a new score.
var sidTable = [sidCount]sidInfo{
	SidInvalid:            {"", KindInt, 0},
	SidSpatium:            {"spatium", KindDouble, DefaultSpatium},
	SidFretY:              {"fretY", KindSpatium, Spatium(1.0)},
	SidFretMinDistance:    {"fretMinDistance", KindSpatium, Spatium(0.5)},
	SidFretMag:            {"fretMag", KindDouble, 1.0},
	SidFretNumPos:         {"fretNumPos", KindInt, 0},
	SidFretPlacement:      {"fretPlacement", KindInt, 0},
	SidFretStrings:        {"fretStrings", KindInt, 6},
	SidFretFrets:          {"fretFrets", KindInt, 5},
	SidFretNut:            {"fretNut", KindBool, true},
	SidFretDotSize:        {"fretDotSize", KindDouble, 1.0},
	SidFretStringSpacing:  {"fretStringSpacing", KindSpatium, Spatium(0.7)},
	SidFretFretSpacing:    {"fretFretSpacing", KindSpatium, Spatium(0.8)},
	SidFretOrientation:    {"fretOrientation", KindInt, 0},
	SidFretNumMag:         {"fretNumMag", KindDouble, 2.0},
	SidBarreLineWidth:     {"barreLineWidth", KindDouble, 1.0},
	SidHarmonyFretDist:    {"harmonyFretDist", KindSpatium, Spatium(0.5)},
	SidHarmonyMinDistance: {"minHarmonyDistance", KindSpatium, Spatium(0.5)},
	SidMusicalTextFont:    {"musicalTextFont", KindString, "Leland Text"},
	SidFretFont:           {"fretFont", KindString, "FreeSans"},
}

// Name returns the persistent name of the style id.
func (s Sid) Name() string {
	if s <= SidInvalid || s >= sidCount {
		return ""
	}
	return sidTable[s].name
}

// Kind returns the value kind of the style id.
func (s Sid) Kind() Kind {
	if s <= SidInvalid || s >= sidCount {
		return KindInt
	}
	return sidTable[s].kind
}

// String implements fmt.Stringer.
func (s Sid) String() string {
	if n := s.Name(); n != "" {
		return n
	}
	return "invalid"
}

// SidByName looks up a style id by its persistent name.
func SidByName(name string) (Sid, bool) {
	for i := SidInvalid + 1; i < sidCount; i++ {
		if sidTable[i].name == name {
			return i, true
		}
	}
	return SidInvalid, false
}

// All returns every valid style id.
func All() []Sid {
	out := make([]Sid, 0, sidCount-1)
	for i := SidInvalid + 1; i < sidCount; i++ {
		out = append(out, i)
	}
	return out
}
