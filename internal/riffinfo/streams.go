package riffinfo

import (
	"fmt"
	"sort"
)

func sortStreams(streams []Stream) {
	sort.SliceStable(streams, func(i, j int) bool {
		return streamKindOrder[streams[i].Kind] < streamKindOrder[streams[j].Kind]
	})
}

type titledStream struct {
	Title  string
	Stream Stream
}

// titledStreams lists General first, then the report streams. Kinds that
// occur more than once are numbered: "Audio #1", "Audio #2".
func titledStreams(report Report) []titledStream {
	counts := map[StreamKind]int{}
	for _, stream := range report.Streams {
		counts[stream.Kind]++
	}
	out := make([]titledStream, 0, len(report.Streams)+1)
	out = append(out, titledStream{Title: string(StreamGeneral), Stream: report.General})
	seen := map[StreamKind]int{}
	for _, stream := range report.Streams {
		seen[stream.Kind]++
		title := string(stream.Kind)
		if counts[stream.Kind] > 1 {
			title = fmt.Sprintf("%s #%d", stream.Kind, seen[stream.Kind])
		}
		out = append(out, titledStream{Title: title, Stream: stream})
	}
	return out
}
