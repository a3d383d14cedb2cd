// Package transcriptome models the input of a splice figure: the annotated
// genome of a pathogen with its transcript isoforms, and interval-score
// tracks of splice-site read support.
//
// A [Transcriptome] exposes the ordered donor and acceptor coordinates that
// drive the detail lanes. Donors are the ends of every exon but the last of
// each transcript; acceptors are the starts of every exon but the first.
// Explicit donor or acceptor lists, when present, take precedence.
//
// A [Track] is a read-only collection of half-open [Start, End) records with
// a score, supporting range queries, point queries and expansion into a
// per-position series.
package transcriptome
