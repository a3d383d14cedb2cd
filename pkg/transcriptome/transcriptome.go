package transcriptome

import (
	"slices"

	"github.com/matzehuels/spliceplot/pkg/errors"
)

// Gene is an annotated gene span.
type Gene struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Strand string `json:"strand,omitempty"`
}

// Label returns the display name of the gene, falling back to its ID.
func (g Gene) Label() string {
	if g.Name != "" {
		return g.Name
	}
	return g.ID
}

// ORF is an open reading frame.
type ORF struct {
	ID    string `json:"id"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Frame int    `json:"frame,omitempty"`
}

// Exon is a half-open [Start, End) interval, encoded as a two-element array.
type Exon [2]int

// Start returns the first coordinate of the exon.
func (e Exon) Start() int { return e[0] }

// End returns the coordinate after the last one of the exon.
func (e Exon) End() int { return e[1] }

// Transcript is one isoform of a gene.
type Transcript struct {
	ID    string `json:"id"`
	Gene  string `json:"gene,omitempty"`
	Exons []Exon `json:"exons"`
}

// SortedExons returns the exons ordered by start.
func (t Transcript) SortedExons() []Exon {
	out := slices.Clone(t.Exons)
	slices.SortStableFunc(out, func(a, b Exon) int { return a.Start() - b.Start() })
	return out
}

// Introns returns the gaps between consecutive exons.
func (t Transcript) Introns() []Exon {
	exons := t.SortedExons()
	var out []Exon
	for i := 1; i < len(exons); i++ {
		if exons[i].Start() > exons[i-1].End() {
			out = append(out, Exon{exons[i-1].End(), exons[i].Start()})
		}
	}
	return out
}

// Span returns the start of the first and end of the last exon.
func (t Transcript) Span() (start, end int) {
	exons := t.SortedExons()
	if len(exons) == 0 {
		return 0, 0
	}
	end = exons[0].End()
	for _, e := range exons {
		end = max(end, e.End())
	}
	return exons[0].Start(), end
}

// Transcriptome is the annotated genome of one pathogen.
type Transcriptome struct {
	Name        string       `json:"name,omitempty"`
	Length      int          `json:"end"`
	Genes       []Gene       `json:"genes,omitempty"`
	ORFs        []ORF        `json:"orfs,omitempty"`
	Transcripts []Transcript `json:"transcripts,omitempty"`

	// Explicit site lists; when non-empty they replace derived sites.
	DonorSites    []int `json:"donors,omitempty"`
	AcceptorSites []int `json:"acceptors,omitempty"`
}

// End returns the length of the coordinate space [0, End).
func (t *Transcriptome) End() int { return t.Length }

// Donors returns the donor coordinates in first-seen order without
// duplicates.
func (t *Transcriptome) Donors() []int {
	if len(t.DonorSites) > 0 {
		return dedup(t.DonorSites)
	}
	var sites []int
	for _, tr := range t.Transcripts {
		exons := tr.SortedExons()
		for i := 0; i < len(exons)-1; i++ {
			sites = append(sites, exons[i].End())
		}
	}
	return dedup(sites)
}

// Acceptors returns the acceptor coordinates in first-seen order without
// duplicates.
func (t *Transcriptome) Acceptors() []int {
	if len(t.AcceptorSites) > 0 {
		return dedup(t.AcceptorSites)
	}
	var sites []int
	for _, tr := range t.Transcripts {
		exons := tr.SortedExons()
		for i := 1; i < len(exons); i++ {
			sites = append(sites, exons[i].Start())
		}
	}
	return dedup(sites)
}

// Gene returns the gene with the given ID.
func (t *Transcriptome) Gene(id string) (Gene, bool) {
	for _, g := range t.Genes {
		if g.ID == id {
			return g, true
		}
	}
	return Gene{}, false
}

// TranscriptsOf returns the transcripts of gene id, in input order.
func (t *Transcriptome) TranscriptsOf(id string) []Transcript {
	var out []Transcript
	for _, tr := range t.Transcripts {
		if tr.Gene == id {
			out = append(out, tr)
		}
	}
	return out
}

// Validate checks that every interval lies within [0, End) and is
// non-empty.
func (t *Transcriptome) Validate() error {
	if t.Length <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "transcriptome end must be positive, got %d", t.Length)
	}
	check := func(kind, id string, start, end int) error {
		if start < 0 || end > t.Length || start >= end {
			return errors.New(errors.ErrCodeInvalidInput,
				"%s %q: interval [%d, %d) outside [0, %d)", kind, id, start, end, t.Length)
		}
		return nil
	}
	for _, g := range t.Genes {
		if err := check("gene", g.ID, g.Start, g.End); err != nil {
			return err
		}
	}
	for _, o := range t.ORFs {
		if err := check("orf", o.ID, o.Start, o.End); err != nil {
			return err
		}
	}
	for _, tr := range t.Transcripts {
		if len(tr.Exons) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "transcript %q has no exons", tr.ID)
		}
		for _, e := range tr.Exons {
			if err := check("exon of transcript", tr.ID, e.Start(), e.End()); err != nil {
				return err
			}
		}
	}
	for _, s := range append(slices.Clone(t.DonorSites), t.AcceptorSites...) {
		if s < 0 || s > t.Length {
			return errors.New(errors.ErrCodeInvalidInput, "site %d outside [0, %d]", s, t.Length)
		}
	}
	return nil
}

func dedup(sites []int) []int {
	seen := make(map[int]struct{}, len(sites))
	out := make([]int, 0, len(sites))
	for _, s := range sites {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
