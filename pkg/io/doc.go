// Package io provides JSON import and export for splice figure datasets.
//
// # JSON Format
//
// A dataset holds the transcriptome and the two splice-site tracks:
//
//	{
//	  "transcriptome": {
//	    "name": "HIV-1",
//	    "end": 9000,
//	    "genes": [{"id": "g1", "name": "gag", "start": 0, "end": 1500, "strand": "+"}],
//	    "orfs": [{"id": "o1", "start": 10, "end": 900, "frame": 1}],
//	    "transcripts": [{"id": "t1", "gene": "g1", "exons": [[0, 300], [800, 1500]]}],
//	    "donors": [300],
//	    "acceptors": [800]
//	  },
//	  "tracks": {
//	    "donors": [{"start": 300, "end": 301, "score": 12}],
//	    "acceptors": [{"start": 800, "end": 801, "score": 7}]
//	  }
//	}
//
// Intervals are half-open [start, end). The "donors" and "acceptors" site
// lists of the transcriptome are optional; when omitted the sites are derived
// from the exon structure of each transcript.
//
// # Import
//
// Use [ImportJSON] to read a dataset from a file path, or [ReadJSON] to read
// from any io.Reader. Both validate interval bounds and fail with an
// INVALID_FORMAT or INVALID_INPUT error naming the offending record.
//
// # Export
//
// Use [ExportJSON] or [WriteJSON] to write a dataset back in the same format.
// Tracks are written ordered by start, so an import/export round trip is
// stable.
package io
