package ast

type DashKind uint8

const (
	DashHyphen DashKind = iota + 1 // -
	DashEn                         // --
	DashEm                         // ---
)

// DashFromText maps "-", "--" and "---" to their kinds.
func DashFromText(s string) (DashKind, bool) {
	switch s {
	case "-":
		return DashHyphen, true
	case "--":
		return DashEn, true
	case "---":
		return DashEm, true
	}
	return 0, false
}

func (d DashKind) String() string {
	switch d {
	case DashHyphen:
		return "-"
	case DashEn:
		return "--"
	case DashEm:
		return "---"
	}
	return "?"
}

type GlueKind uint8

const (
	GlueTight GlueKind = iota + 1 // ~
	GlueNBSP                      // ~~
)

// GlueFromText maps "~" and "~~" to their kinds.
func GlueFromText(s string) (GlueKind, bool) {
	switch s {
	case "~":
		return GlueTight, true
	case "~~":
		return GlueNBSP, true
	}
	return 0, false
}

func (g GlueKind) String() string {
	switch g {
	case GlueTight:
		return "~"
	case GlueNBSP:
		return "~~"
	}
	return "?"
}
