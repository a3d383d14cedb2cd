package styles

import "github.com/matzehuels/spliceplot/pkg/errors"

// Palette holds the colors of a splice figure.
type Palette struct {
	Donor      string `toml:"donor" json:"donor"`
	Acceptor   string `toml:"acceptor" json:"acceptor"`
	Detail     string `toml:"detail" json:"detail"`         // line color inside lanes
	Connector  string `toml:"connector" json:"connector"`   // funnel color
	Gene       string `toml:"gene" json:"gene"`             // gene and exon glyphs
	ORF        string `toml:"orf" json:"orf"`               // ORF boxes
	Intron     string `toml:"intron" json:"intron"`         // intron lines
	Text       string `toml:"text" json:"text"`
	Background string `toml:"background" json:"background"` // empty for transparent
}

// DefaultPalette returns the standard splice figure colors.
func DefaultPalette() Palette {
	return Palette{
		Donor:     "#F78154",
		Acceptor:  "#5FAD56",
		Detail:    "red",
		Connector: "red",
		Gene:      "#4D9DE0",
		ORF:       "#7768AE",
		Intron:    "#555555",
		Text:      "#333333",
	}
}

// Merge returns p with every empty field taken from base.
func (p Palette) Merge(base Palette) Palette {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Palette{
		Donor:      pick(p.Donor, base.Donor),
		Acceptor:   pick(p.Acceptor, base.Acceptor),
		Detail:     pick(p.Detail, base.Detail),
		Connector:  pick(p.Connector, base.Connector),
		Gene:       pick(p.Gene, base.Gene),
		ORF:        pick(p.ORF, base.ORF),
		Intron:     pick(p.Intron, base.Intron),
		Text:       pick(p.Text, base.Text),
		Background: pick(p.Background, base.Background),
	}
}

// Validate checks that every non-empty color is safe to embed in SVG.
func (p Palette) Validate() error {
	for _, c := range []struct{ name, v string }{
		{"donor", p.Donor},
		{"acceptor", p.Acceptor},
		{"detail", p.Detail},
		{"connector", p.Connector},
		{"gene", p.Gene},
		{"orf", p.ORF},
		{"intron", p.Intron},
		{"text", p.Text},
		{"background", p.Background},
	} {
		if c.v == "" {
			continue
		}
		if err := errors.ValidateColor(c.v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "palette.%s", c.name)
		}
	}
	return nil
}
