package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/spliceplot/pkg/errors"
)

const sample = `{
  "transcriptome": {
    "name": "HIV-1",
    "end": 9000,
    "genes": [{"id": "g1", "name": "gag", "start": 0, "end": 1500, "strand": "+"}],
    "orfs": [{"id": "o1", "start": 10, "end": 900, "frame": 1}],
    "transcripts": [{"id": "t1", "gene": "g1", "exons": [[0, 300], [800, 1500]]}]
  },
  "tracks": {
    "donors": [{"start": 300, "end": 301, "score": 12}],
    "acceptors": [{"start": 800, "end": 801, "score": 7}]
  }
}`

func TestReadJSON(t *testing.T) {
	ds, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if ds.Transcriptome.End() != 9000 || ds.Transcriptome.Name != "HIV-1" {
		t.Errorf("transcriptome = %+v", ds.Transcriptome)
	}
	if diff := cmp.Diff([]int{300}, ds.Transcriptome.Donors()); diff != "" {
		t.Errorf("Donors() mismatch (-want +got):\n%s", diff)
	}
	if ds.Tracks.Donors.Len() != 1 || ds.Tracks.Acceptors.MaxScore() != 7 {
		t.Errorf("tracks = %+v", ds.Tracks)
	}
}

func TestReadJSONMissingTracks(t *testing.T) {
	ds, err := ReadJSON(strings.NewReader(`{"transcriptome": {"end": 10}}`))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if ds.Tracks.Donors == nil || ds.Tracks.Acceptors == nil {
		t.Error("missing tracks not defaulted to empty")
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"transcriptome":`, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"nodes": []}`, errors.ErrCodeInvalidFormat},
		{"zero end", `{"transcriptome": {"end": 0}}`, errors.ErrCodeInvalidInput},
		{"exon past end", `{"transcriptome": {"end": 10, "transcripts": [{"id": "t", "exons": [[0, 11]]}]}}`, errors.ErrCodeInvalidInput},
		{"empty record", `{"transcriptome": {"end": 10}, "tracks": {"donors": [{"start": 4, "end": 4}]}}`, errors.ErrCodeInvalidInput},
		{"donor record past end", `{"transcriptome": {"end": 1000}, "tracks": {"donors": [{"start": 0, "end": 20000000}]}}`, errors.ErrCodeOutOfRange},
		{"acceptor record past end", `{"transcriptome": {"end": 10}, "tracks": {"acceptors": [{"start": 9, "end": 11}]}}`, errors.ErrCodeOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	if err := os.WriteFile(in, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := ImportJSON(in)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	out := filepath.Join(dir, "out.json")
	if err := ExportJSON(ds, out); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	again, err := ImportJSON(out)
	if err != nil {
		t.Fatalf("ImportJSON(exported) error = %v", err)
	}

	var a, b bytes.Buffer
	WriteJSON(ds, &a)
	WriteJSON(again, &b)
	if a.String() != b.String() {
		t.Errorf("round trip changed the dataset:\n%s\n%s", a.String(), b.String())
	}
}

func TestImportJSONNotFound(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want FILE_NOT_FOUND", err)
	}
}
