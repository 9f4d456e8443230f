package score

// Pid is an opaque property identifier used for generic get/set.
type Pid int

const (
	PidInvalid Pid = iota
	PidMag
	PidFretStrings
	PidFretFrets
	PidFretNut
	PidFretOffset
	PidFretNumPos
	PidOrientation
	PidMinDistance
	PidPlacement
	PidAutoplace
	PidOffset
	PidColor
	PidVisible

	pidCount
)

// PropertyType is the value type carried by a Pid.
type PropertyType int

const (
	PTypeInt PropertyType = iota
	PTypeReal
	PTypeBool
	PTypeSpatium
	PTypeOrientation
	PTypePlacement
	PTypePoint
	PTypeColor
)

type pidInfo struct {
	name string
	typ  PropertyType
}

var pidTable = [pidCount]pidInfo{
	PidInvalid:     {"", PTypeInt},
	PidMag:         {"mag", PTypeReal},
	PidFretStrings: {"strings", PTypeInt},
	PidFretFrets:   {"frets", PTypeInt},
	PidFretNut:     {"showNut", PTypeBool},
	PidFretOffset:  {"fretOffset", PTypeInt},
	PidFretNumPos:  {"fretNumPos", PTypeInt},
	PidOrientation: {"orientation", PTypeOrientation},
	PidMinDistance: {"minDistance", PTypeSpatium},
	PidPlacement:   {"placement", PTypePlacement},
	PidAutoplace:   {"autoplace", PTypeBool},
	PidOffset:      {"offset", PTypePoint},
	PidColor:       {"color", PTypeColor},
	PidVisible:     {"visible", PTypeBool},
}

// Name returns the file format tag of the property.
func (p Pid) Name() string {
	if p <= PidInvalid || p >= pidCount {
		return ""
	}
	return pidTable[p].name
}

// Type returns the value type of the property.
func (p Pid) Type() PropertyType {
	if p <= PidInvalid || p >= pidCount {
		return PTypeInt
	}
	return pidTable[p].typ
}

// String implements fmt.Stringer.
func (p Pid) String() string {
	if n := p.Name(); n != "" {
		return n
	}
	return "invalid"
}

// PidByName looks up a property by its file format tag.
func PidByName(name string) (Pid, bool) {
	for p := PidInvalid + 1; p < pidCount; p++ {
		if pidTable[p].name == name {
			return p, true
		}
	}
	return PidInvalid, false
}
