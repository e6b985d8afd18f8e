package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autobrr/go-riffinfo/internal/riff/rifftest"
	"github.com/autobrr/go-riffinfo/internal/riffinfo"
)

func writeWAV(t *testing.T, dir string) string {
	t.Helper()
	format := rifftest.Concat(
		rifftest.U16(1),
		rifftest.U16(2),
		rifftest.U32(44100),
		rifftest.U32(176400),
		rifftest.U16(4),
		rifftest.U16(16),
	)
	data := rifftest.RIFF("WAVE",
		rifftest.Chunk("fmt ", format),
		rifftest.Chunk("data", make([]byte, 17640)),
	)
	path := filepath.Join(dir, "stereo.wav")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeCorrupt(t *testing.T, dir string) string {
	t.Helper()
	data := rifftest.Concat(rifftest.Header("RIFF", 4096), []byte("WAVE"), rifftest.Header("data", 100))
	path := filepath.Join(dir, "corrupt.wav")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(append([]string{"riffinfo"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunInfoText(t *testing.T) {
	path := writeWAV(t, t.TempDir())

	code, stdout, stderr := run(t, path)
	require.Equal(t, 0, code, stderr)
	require.True(t, strings.HasPrefix(stdout, "General\n"))
	require.Contains(t, stdout, "Audio\n")
	require.Contains(t, stdout, ": 2 channels\n")
	require.Contains(t, stdout, ": 100 ms\n")

	code, infoOut, _ := run(t, "info", path)
	require.Equal(t, 0, code)
	require.Equal(t, stdout, infoOut)
}

func TestRunWAVJSON(t *testing.T) {
	path := writeWAV(t, t.TempDir())

	code, stdout, stderr := run(t, "--output", "json", "wav", path)
	require.Equal(t, 0, code, stderr)

	var doc struct {
		CreatingLibrary map[string]string `json:"creatingLibrary"`
		Media           struct {
			Ref   string              `json:"@ref"`
			Track []map[string]string `json:"track"`
		} `json:"media"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.Equal(t, riffinfo.Version, doc.CreatingLibrary["version"])
	require.Equal(t, path, doc.Media.Ref)
	require.Len(t, doc.Media.Track, 2)
	require.Equal(t, "44.1 kHz", doc.Media.Track[1]["Sampling_rate"])
}

func TestRunXMLAndCSV(t *testing.T) {
	path := writeWAV(t, t.TempDir())

	code, stdout, _ := run(t, "-o", "xml", "info", path)
	require.Equal(t, 0, code)
	require.Contains(t, stdout, `<track type="Audio">`)
	require.Contains(t, stdout, "<Channels>2 channels</Channels>")

	code, stdout, _ = run(t, "-o", "CSV", "info", path)
	require.Equal(t, 0, code)
	require.True(t, strings.HasPrefix(stdout, "ref,track_type,field,value\n"))
	require.Contains(t, stdout, ",Audio,Channel(s),2 channels\n")

	code, _, stderr := run(t, "-o", "csv", "tree", path)
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "tree does not support csv output")
}

func TestRunOutputFromEnv(t *testing.T) {
	path := writeWAV(t, t.TempDir())
	t.Setenv("RIFFINFO_OUTPUT", "json")

	code, stdout, _ := run(t, "tree", path)
	require.Equal(t, 0, code)
	require.True(t, json.Valid([]byte(stdout)))
	require.Contains(t, stdout, `"form": "WAVE"`)
}

func TestRunTreeText(t *testing.T) {
	dir := t.TempDir()
	path := writeWAV(t, dir)

	code, stdout, _ := run(t, "tree", path, path)
	require.Equal(t, 0, code)
	require.Equal(t, 2, strings.Count(stdout, `RIFF "WAVE"`))
	require.Contains(t, stdout, `  "fmt " 16 bytes @ 12`)
}

func TestRunWrongForm(t *testing.T) {
	path := writeWAV(t, t.TempDir())

	code, stdout, stderr := run(t, "avi", path)
	require.Equal(t, 1, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, path)
	require.Contains(t, stderr, "[wrong form]")
}

func TestRunCorruptFile(t *testing.T) {
	dir := t.TempDir()
	good := writeWAV(t, dir)
	bad := writeCorrupt(t, dir)

	code, stdout, stderr := run(t, "info", bad, good)
	require.Equal(t, 1, code)
	require.Contains(t, stdout, "Audio")
	require.Contains(t, stderr, bad)
	require.Contains(t, stderr, "[bad file]")
	require.NotContains(t, stderr, good)

	code, _, stderr = run(t, "tree", bad)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "[bad file]")
}

func TestRunUsageErrors(t *testing.T) {
	code, _, stderr := run(t, "wav")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "no input files")

	code, _, stderr = run(t, "-o", "yaml", "wav", "x.wav")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, `unknown output format "yaml"`)

	code, _, _ = run(t, "--log-level", "loud", "version")
	require.Equal(t, 2, code)
}

func TestRunDebugLogging(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.wav")
	data := rifftest.RIFF("WAVE",
		rifftest.Chunk("fmt ", rifftest.Concat(rifftest.U16(1), rifftest.U16(1), rifftest.U32(8000), rifftest.U32(8000), rifftest.U16(1), rifftest.U16(8))),
		rifftest.Chunk("cue ", make([]byte, 4)),
		rifftest.Chunk("data", make([]byte, 8)),
	)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	code, _, stderr := run(t, "--log-level", "debug", "wav", path)
	require.Equal(t, 0, code)
	require.Contains(t, stderr, "skipping chunk")

	logFile := filepath.Join(dir, "riffinfo.log")
	code, _, stderr = run(t, "--log-level", "debug", "--log-file", logFile, "wav", path)
	require.Equal(t, 0, code)
	require.NotContains(t, stderr, "skipping chunk")

	logged, err := os.ReadFile(logFile)
	require.NoError(t, err)
	line := strings.SplitN(strings.TrimSpace(string(logged)), "\n", 2)[0]
	require.True(t, json.Valid([]byte(line)))
	require.Contains(t, string(logged), "skipping chunk")
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := run(t, "version")
	require.Equal(t, 0, code)
	require.Equal(t, "riffinfo, "+riffinfo.LibName+" "+riffinfo.Version+"\n", stdout)
}
