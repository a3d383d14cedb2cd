package transcriptome

import (
	"encoding/json"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/spliceplot/pkg/errors"
)

// Record is a half-open [Start, End) interval with a score.
type Record struct {
	Start int     `json:"start"`
	End   int     `json:"end"`
	Score float64 `json:"score"`
}

// Contains reports whether pos lies in the record.
func (r Record) Contains(pos int) bool { return pos >= r.Start && pos < r.End }

// Point is one position of an exploded track.
type Point struct {
	Position int
	Score    float64
}

// Track is an immutable, start-ordered collection of records. The zero
// value is an empty track.
type Track struct {
	records []Record
}

// NewTrack returns a track over a copy of records, ordered by start.
func NewTrack(records []Record) *Track {
	rs := slices.Clone(records)
	slices.SortStableFunc(rs, func(a, b Record) int { return a.Start - b.Start })
	return &Track{records: rs}
}

// Len returns the number of records.
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Records returns a copy of the records.
func (t *Track) Records() []Record {
	if t == nil {
		return nil
	}
	return slices.Clone(t.records)
}

// Range returns the records overlapping the closed interval [lo, hi],
// clipped to it.
func (t *Track) Range(lo, hi int) *Track {
	out := &Track{}
	if t == nil || hi < lo {
		return out
	}
	for _, r := range t.records {
		if r.Start > hi {
			break
		}
		if r.End <= lo {
			continue
		}
		out.records = append(out.records, Record{
			Start: max(r.Start, lo),
			End:   min(r.End, hi+1),
			Score: r.Score,
		})
	}
	return out
}

// At returns the records covering pos.
func (t *Track) At(pos int) []Record {
	if t == nil {
		return nil
	}
	var out []Record
	for _, r := range t.records {
		if r.Start > pos {
			break
		}
		if r.Contains(pos) {
			out = append(out, r)
		}
	}
	return out
}

// Explode expands every record into one point per covered position, ordered
// by position.
func (t *Track) Explode() []Point {
	if t == nil {
		return nil
	}
	var out []Point
	for _, r := range t.records {
		for p := r.Start; p < r.End; p++ {
			out = append(out, Point{Position: p, Score: r.Score})
		}
	}
	slices.SortStableFunc(out, func(a, b Point) int { return a.Position - b.Position })
	return out
}

// MaxScore returns the highest score in the track, or 0 when empty.
func (t *Track) MaxScore() float64 {
	if t == nil {
		return 0
	}
	return maxScore(t.records)
}

// MaxScoreAt returns the highest score over the records covering any of
// sites, or 0 when none do.
func (t *Track) MaxScoreAt(sites []int) float64 {
	var covering []Record
	for _, s := range sites {
		covering = append(covering, t.At(s)...)
	}
	return maxScore(covering)
}

func maxScore(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	scores := make([]float64, len(records))
	for i, r := range records {
		scores[i] = r.Score
	}
	return max(floats.Max(scores), 0)
}

// Validate checks that every record is a non-empty interval.
func (t *Track) Validate() error {
	return t.ValidateWithin(0)
}

// ValidateWithin checks that every record is a non-empty interval lying in
// [0, end). An end of 0 or less leaves the upper bound unchecked.
func (t *Track) ValidateWithin(end int) error {
	for i, r := range t.Records() {
		if r.Start < 0 || r.End <= r.Start {
			return errors.New(errors.ErrCodeInvalidInput, "record %d: invalid interval [%d, %d)", i, r.Start, r.End)
		}
		if end > 0 && r.End > end {
			return errors.New(errors.ErrCodeOutOfRange, "record %d: [%d, %d) extends past end %d", i, r.Start, r.End, end)
		}
	}
	return nil
}

// MarshalJSON encodes the track as an array of records.
func (t *Track) MarshalJSON() ([]byte, error) {
	rs := t.Records()
	if rs == nil {
		rs = []Record{}
	}
	return json.Marshal(rs)
}

// UnmarshalJSON decodes an array of records.
func (t *Track) UnmarshalJSON(data []byte) error {
	var rs []Record
	if err := json.Unmarshal(data, &rs); err != nil {
		return err
	}
	*t = *NewTrack(rs)
	return nil
}
