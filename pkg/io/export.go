package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/spliceplot/pkg/transcriptome"
)

// Dataset is the input document of a splice figure.
type Dataset struct {
	Transcriptome transcriptome.Transcriptome `json:"transcriptome"`
	Tracks        Tracks                      `json:"tracks"`
}

// Tracks holds the splice-site read support.
type Tracks struct {
	Donors    *transcriptome.Track `json:"donors"`
	Acceptors *transcriptome.Track `json:"acceptors"`
}

// WriteJSON encodes ds as indented JSON and writes it to w.
func WriteJSON(ds *Dataset, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes ds to a JSON file at path.
func ExportJSON(ds *Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(ds, f)
}
