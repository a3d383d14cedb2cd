package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/spliceplot/pkg/errors"
	"github.com/matzehuels/spliceplot/pkg/transcriptome"
)

// ReadJSON decodes and validates a dataset from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed (INVALID_FORMAT)
//   - The transcriptome end is not positive, or a gene, ORF, exon or site
//     lies outside [0, end) (INVALID_INPUT)
//   - A track record is an empty interval (INVALID_INPUT)
//   - A track record extends past the transcriptome end (OUT_OF_RANGE)
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var ds Dataset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode dataset")
	}
	if ds.Tracks.Donors == nil {
		ds.Tracks.Donors = transcriptome.NewTrack(nil)
	}
	if ds.Tracks.Acceptors == nil {
		ds.Tracks.Acceptors = transcriptome.NewTrack(nil)
	}

	if err := ds.Transcriptome.Validate(); err != nil {
		return nil, fmt.Errorf("transcriptome: %w", err)
	}
	end := ds.Transcriptome.End()
	if err := ds.Tracks.Donors.ValidateWithin(end); err != nil {
		return nil, fmt.Errorf("donor track: %w", err)
	}
	if err := ds.Tracks.Acceptors.ValidateWithin(end); err != nil {
		return nil, fmt.Errorf("acceptor track: %w", err)
	}
	return &ds, nil
}

// ImportJSON reads the dataset file at path. A missing file yields a
// FILE_NOT_FOUND error.
func ImportJSON(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
