package riffinfo

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/autobrr/go-riffinfo/internal/fourcc"
	"github.com/autobrr/go-riffinfo/internal/riff"
	"github.com/autobrr/go-riffinfo/internal/riff/rifftest"
)

func testWAV() []byte {
	format := rifftest.Concat(
		rifftest.U16(1),
		rifftest.U16(1),
		rifftest.U32(8000),
		rifftest.U32(8000),
		rifftest.U16(1),
		rifftest.U16(8),
	)
	return rifftest.RIFF("WAVE",
		rifftest.Chunk("fmt ", format),
		rifftest.Chunk("data", make([]byte, 4000)),
		rifftest.List("INFO", rifftest.Chunk("INAM", []byte("Test tone\x00"))),
	)
}

func testAVI() []byte {
	avih := rifftest.Concat(
		rifftest.U32(40000),
		rifftest.U32(1_000_000),
		rifftest.U32(0),
		rifftest.U32(0x110),
		rifftest.U32(50),
		rifftest.U32(0),
		rifftest.U32(2),
		rifftest.U32(0),
		rifftest.U32(320),
		rifftest.U32(240),
		make([]byte, 16),
	)
	strh := func(kind string, scale, rate, length uint32) []byte {
		return rifftest.Concat(
			[]byte(kind), make([]byte, 4),
			rifftest.U32(0),
			rifftest.U16(0), rifftest.U16(0),
			rifftest.U32(0),
			rifftest.U32(scale),
			rifftest.U32(rate),
			rifftest.U32(0),
			rifftest.U32(length),
			make([]byte, 20),
		)
	}
	bitmap := rifftest.Concat(
		rifftest.U32(40),
		rifftest.U32(320),
		rifftest.U32(240),
		rifftest.U16(1),
		rifftest.U16(24),
		[]byte("MJPG"),
		rifftest.U32(0),
		make([]byte, 16),
	)
	wave := rifftest.Concat(
		rifftest.U16(1),
		rifftest.U16(2),
		rifftest.U32(44100),
		rifftest.U32(176400),
		rifftest.U16(4),
		rifftest.U16(16),
	)
	return rifftest.RIFF("AVI ",
		rifftest.List("hdrl",
			rifftest.Chunk("avih", avih),
			rifftest.List("strl",
				rifftest.Chunk("strh", strh("vids", 1, 25, 50)),
				rifftest.Chunk("strf", bitmap),
			),
			rifftest.List("strl",
				rifftest.Chunk("strh", strh("auds", 4, 176400, 88200)),
				rifftest.Chunk("strf", wave),
			),
		),
		rifftest.List("INFO", rifftest.Chunk("ISFT", []byte("riffinfo test\x00"))),
		rifftest.List("movi",
			rifftest.Chunk("00dc", make([]byte, 100)),
			rifftest.Chunk("01wb", make([]byte, 400)),
			rifftest.Chunk("00dc", make([]byte, 100)),
		),
	)
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func requireField(t *testing.T, stream Stream, name, want string) {
	t.Helper()
	require.Equal(t, want, findField(stream.Fields, name), "field %q of %s", name, stream.Kind)
}

func TestDetectForm(t *testing.T) {
	form, ok := DetectForm(testWAV())
	require.True(t, ok)
	require.Equal(t, fourcc.WAVE, form)

	form, ok = DetectForm(testAVI()[:12])
	require.True(t, ok)
	require.Equal(t, fourcc.AVI, form)

	_, ok = DetectForm([]byte("RIFF"))
	require.False(t, ok)
	_, ok = DetectForm([]byte("RIFX\x00\x00\x00\x00WAVE"))
	require.False(t, ok)
}

func TestAnalyzeFileWAV(t *testing.T) {
	path := writeTemp(t, "tone.wav", testWAV())

	report, err := AnalyzeFile(path)
	require.NoError(t, err)
	require.Equal(t, path, report.Ref)

	requireField(t, report.General, "Format", "Wave")
	requireField(t, report.General, "Duration", "500 ms")
	requireField(t, report.General, "Overall bit rate mode", "Constant")

	require.Len(t, report.Streams, 1)
	audio := report.Streams[0]
	require.Equal(t, StreamAudio, audio.Kind)
	requireField(t, audio, "Format", "PCM")
	requireField(t, audio, "Codec ID", "1")
	requireField(t, audio, "Channel(s)", "1 channel")
	requireField(t, audio, "Channel layout", "M")
	requireField(t, audio, "Sampling rate", "8.0 kHz")
	requireField(t, audio, "Bit depth", "8 bits")
	requireField(t, audio, "Samples count", "4 000")
	requireField(t, audio, "Duration", "500 ms")
	requireField(t, audio, "Bit rate", "64 kb/s")
	requireField(t, audio, "Title", "Test tone")
}

func TestAnalyzeFileAVI(t *testing.T) {
	path := writeTemp(t, "clip.avi", testAVI())

	report, err := AnalyzeFile(path)
	require.NoError(t, err)

	requireField(t, report.General, "Format", "AVI")
	requireField(t, report.General, "Writing application", "riffinfo test")
	requireField(t, report.General, "Interleaved", "Yes")
	requireField(t, report.General, "Frame rate", "25.000 FPS")
	requireField(t, report.General, "Duration", "2 s 0 ms")

	require.Len(t, report.Streams, 2)
	video, audio := report.Streams[0], report.Streams[1]
	require.Equal(t, StreamVideo, video.Kind)
	require.Equal(t, StreamAudio, audio.Kind)

	requireField(t, video, "Format", "MJPG")
	requireField(t, video, "Width", "320 pixels")
	requireField(t, video, "Height", "240 pixels")
	requireField(t, video, "Display aspect ratio", "4:3")
	requireField(t, video, "Frame count", "50")
	requireField(t, video, "Bit depth", "24 bits")
	requireField(t, video, "Duration", "2 s 0 ms")
	require.True(t, strings.HasPrefix(findField(video.Fields, "Stream size"), "200 B"))

	requireField(t, audio, "Format", "PCM")
	requireField(t, audio, "Channel(s)", "2 channels")
	requireField(t, audio, "Sampling rate", "44.1 kHz")
	requireField(t, audio, "Duration", "2 s 0 ms")
	requireField(t, audio, "Bit rate", "1 411 kb/s")
	require.True(t, strings.HasPrefix(findField(audio.Fields, "Stream size"), "400 B"))
	require.Equal(t, []string{"movie data holds 3 frames, main header declares 50"}, report.Warnings)
}

func TestAnalyzeFileGenericForm(t *testing.T) {
	path := writeTemp(t, "cursor.ani", rifftest.RIFF("ACON",
		rifftest.Chunk("anih", make([]byte, 36)),
		rifftest.List("fram", rifftest.Chunk("icon", make([]byte, 6))),
	))

	report, err := AnalyzeFile(path)
	require.NoError(t, err)
	requireField(t, report.General, "Format", "RIFF (ACON)")
	requireField(t, report.General, "Chunks count", "2")
	require.Empty(t, report.Streams)
	require.Empty(t, report.Warnings)
}

func TestAnalyzeFileWarnsAboutUnparsedLists(t *testing.T) {
	path := writeTemp(t, "cursor.ani", rifftest.RIFF("ACON",
		rifftest.Chunk("anih", make([]byte, 36)),
		rifftest.List("fram", rifftest.Header("icon", 90), []byte{1, 2}),
	))

	report, err := AnalyzeFile(path)
	require.NoError(t, err)
	requireField(t, report.General, "Chunks count", "2")
	require.Equal(t, []string{`list "fram" at offset 56 could not be fully parsed`}, report.Warnings)

	root, err := ReadTree(path)
	require.NoError(t, err)
	require.Contains(t, RenderTree(path, root), `  LIST "fram" 14 bytes @ 56 (unparsed)`)
}

func TestAnalyzeFileForcedForm(t *testing.T) {
	path := writeTemp(t, "tone.wav", testWAV())

	_, err := AnalyzeFile(path, WithForm(fourcc.AVI))
	require.Error(t, err)
	require.True(t, errors.Is(err, riff.ErrWrongForm))
	require.Equal(t, riff.WrongForm, riff.StatusOf(err))
}

func TestAnalyzeFileErrors(t *testing.T) {
	_, err := AnalyzeFile(filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)

	path := writeTemp(t, "plain.txt", []byte("not a riff stream at all"))
	_, err = AnalyzeFile(path)
	require.True(t, errors.Is(err, riff.ErrNotRIFF))

	truncated := testWAV()
	path = writeTemp(t, "cut.wav", truncated[:len(truncated)-100])
	_, err = AnalyzeFile(path)
	require.True(t, errors.Is(err, riff.ErrBadFile))
}

func TestAnalyzeFilesAggregatesErrors(t *testing.T) {
	good := writeTemp(t, "tone.wav", testWAV())
	bad := writeTemp(t, "bad.wav", []byte("RIFF"))
	missing := filepath.Join(t.TempDir(), "missing.avi")

	reports, err := AnalyzeFiles([]string{bad, good, missing})
	require.Len(t, reports, 1)
	require.Equal(t, good, reports[0].Ref)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	require.Contains(t, errs[0].Error(), bad)
	require.True(t, errors.Is(errs[0], riff.ErrBadFile))
	require.Contains(t, errs[1].Error(), missing)
}

func TestRenderText(t *testing.T) {
	path := writeTemp(t, "clip.avi", testAVI())
	report, err := AnalyzeFile(path)
	require.NoError(t, err)

	out := RenderText([]Report{report})
	lines := strings.Split(out, "\n")
	require.Equal(t, "General", lines[0])
	require.Contains(t, out, "\nVideo\n")
	require.Contains(t, out, "\nAudio\n")
	require.Contains(t, out, "Format"+strings.Repeat(" ", 30)+": AVI\n")
	require.Contains(t, out, "Width"+strings.Repeat(" ", 31)+": 320 pixels\n")
	require.True(t, strings.HasSuffix(out, "\nWarnings\n- movie data holds 3 frames, main header declares 50"))
}

func TestRenderTextNumbersRepeatedKinds(t *testing.T) {
	report := Report{
		General: Stream{Kind: StreamGeneral},
		Streams: []Stream{
			{Kind: StreamAudio, Fields: []Field{{Name: "Format", Value: "PCM"}}},
			{Kind: StreamAudio, Fields: []Field{{Name: "Format", Value: "AC-3"}}},
		},
	}
	out := RenderText([]Report{report})
	require.Contains(t, out, "Audio #1\n")
	require.Contains(t, out, "Audio #2\n")
}

func TestRenderJSON(t *testing.T) {
	wavPath := writeTemp(t, "tone.wav", testWAV())
	aviPath := writeTemp(t, "clip.avi", testAVI())
	reports, err := AnalyzeFiles([]string{wavPath, aviPath})
	require.NoError(t, err)

	single := RenderJSON(reports[:1])
	var doc struct {
		CreatingLibrary struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"creatingLibrary"`
		Media struct {
			Ref   string              `json:"@ref"`
			Track []map[string]string `json:"track"`
		} `json:"media"`
	}
	require.NoError(t, json.Unmarshal([]byte(single), &doc))
	require.Equal(t, LibName, doc.CreatingLibrary.Name)
	require.Equal(t, wavPath, doc.Media.Ref)
	require.Len(t, doc.Media.Track, 2)
	require.Equal(t, "General", doc.Media.Track[0]["@type"])
	require.Equal(t, "Audio", doc.Media.Track[1]["@type"])
	require.Equal(t, "1 channel", doc.Media.Track[1]["Channels"])
	require.Equal(t, "8.0 kHz", doc.Media.Track[1]["Sampling_rate"])

	var aviDoc struct {
		Media struct {
			Warnings []string `json:"warnings"`
		} `json:"media"`
	}
	require.NoError(t, json.Unmarshal([]byte(RenderJSON(reports[1:])), &aviDoc))
	require.Len(t, aviDoc.Media.Warnings, 1)
	require.NotContains(t, single, "warnings")

	many := RenderJSON(reports)
	var docs []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(many), &docs))
	require.Len(t, docs, 2)
}

func TestRenderTree(t *testing.T) {
	path := writeTemp(t, "tone.wav", testWAV())
	root, err := ReadTree(path)
	require.NoError(t, err)

	out := RenderTree(path, root)
	lines := strings.Split(out, "\n")
	require.Equal(t, path, lines[0])
	require.Equal(t, `RIFF "WAVE" 4 066 bytes @ 0`, lines[1])
	require.Equal(t, `  "fmt " 16 bytes @ 12`, lines[2])
	require.Equal(t, `  "data" 4 000 bytes @ 36`, lines[3])
	require.Equal(t, `  LIST "INFO" 22 bytes @ 4044`, lines[4])
	require.Equal(t, `    "INAM" 10 bytes @ 4056`, lines[5])
	require.Len(t, lines, 6)
}

func TestRenderTreeJSON(t *testing.T) {
	path := writeTemp(t, "clip.avi", testAVI())
	root, err := ReadTree(path)
	require.NoError(t, err)

	out, err := RenderTreeJSON(path, root)
	require.NoError(t, err)

	var doc struct {
		Ref  string    `json:"@ref"`
		Root jsonChunk `json:"root"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, path, doc.Ref)
	require.Equal(t, "RIFF", doc.Root.ID)
	require.Equal(t, "AVI ", doc.Root.Form)
	require.Len(t, doc.Root.Children, 3)
	require.Equal(t, "hdrl", doc.Root.Children[0].Form)
	require.Len(t, doc.Root.Children[2].Children, 3)
	require.Empty(t, doc.Root.Children[2].Children[0].Form)
}

func TestReadTreeFailure(t *testing.T) {
	path := writeTemp(t, "bad.avi", rifftest.Concat(rifftest.Header("RIFF", 100), []byte("AVI ")))
	root, err := ReadTree(path)
	require.Nil(t, root)
	require.True(t, errors.Is(err, riff.ErrBadFile))
}
