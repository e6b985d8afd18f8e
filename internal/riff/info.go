package riff

import (
	"strings"

	"github.com/autobrr/go-riffinfo/internal/fourcc"
)

type InfoEntry struct {
	ID    fourcc.Code
	Value string
}

// Info holds LIST/INFO entries in file order.
type Info []InfoEntry

func (i Info) Get(id fourcc.Code) (string, bool) {
	for _, entry := range i {
		if entry.ID == id {
			return entry.Value, true
		}
	}
	return "", false
}

// ParseInfo decodes the text entries of a LIST/INFO chunk. Anything else
// yields nil.
func ParseInfo(list *Chunk) Info {
	if list == nil || list.ID != fourcc.LIST || list.Form != fourcc.INFO {
		return nil
	}
	var info Info
	for _, child := range list.Children {
		if child.IsContainer() {
			continue
		}
		value := strings.TrimSpace(trimNullString(child.Data))
		if value == "" {
			continue
		}
		info = append(info, InfoEntry{ID: child.ID, Value: value})
	}
	return info
}

func trimNullString(data []byte) string {
	for i, b := range data {
		if b == 0x00 {
			return string(data[:i])
		}
	}
	return string(data)
}
