package fourcc

// Category selects the allow-list IsValid checks a tag against.
type Category int

const (
	Container Category = iota
	Form
	WaveChunk
	AVIList
	AVIChunk
	Info
)

func (c Category) String() string {
	switch c {
	case Container:
		return "container"
	case Form:
		return "form"
	case WaveChunk:
		return "wave chunk"
	case AVIList:
		return "avi list"
	case AVIChunk:
		return "avi chunk"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

var allowLists = map[Category]map[Code]struct{}{
	Container: set("RIFF", "LIST"),
	Form:      set("WAVE", "AVI "),
	WaveChunk: set("fmt ", "fact", "data", "LIST", "cue ", "smpl", "bext", "JUNK"),
	AVIList:   set("hdrl", "strl", "movi", "INFO", "JUNK", "rec ", "odml"),
	AVIChunk:  set("avih", "strh", "strf", "strd", "strn", "idx1", "JUNK", "indx"),
	Info: set("INAM", "IART", "ICMT", "ICOP", "ICRD", "IGNR", "IKEY",
		"IPRD", "ISFT", "ISBJ", "IENG", "ITCH", "ISRC"),
}

func set(tags ...string) map[Code]struct{} {
	out := make(map[Code]struct{}, len(tags))
	for _, tag := range tags {
		out[FromString(tag)] = struct{}{}
	}
	return out
}

// IsValid reports whether code is a recognized tag for the category.
// Decoders dispatch without consulting it; it exists for validation and
// diagnostics.
func IsValid(category Category, code Code) bool {
	_, ok := allowLists[category][code]
	return ok
}
