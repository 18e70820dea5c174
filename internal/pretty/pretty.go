// Package pretty renders an ASCII plate map of a tagged spike table.
package pretty

import (
	"fmt"
	"strings"

	"mea-core/layout"
	"mea-core/spike"
)

// Cell glyphs. Analog corners are marked even when silent so the plate
// orientation stays readable.
const (
	GlyphEmpty   = "."
	GlyphSpikes  = "o"
	GlyphFlagged = "x"
	GlyphAnalog  = "#"
)

// baseTag strips a sub-sorting suffix ("e4.0" -> "e4").
func baseTag(tag string) string {
	if i := strings.IndexByte(tag, '.'); i >= 0 {
		return tag[:i]
	}
	return tag
}

// RenderPlate draws the 12x12 electrode grid. Sites with any
// conductance-flagged row render as flagged; sub-sorted unit tags are
// folded back onto their parent electrode.
func RenderPlate(t *spike.Table) string {
	spikes := map[string]int{}
	flagged := map[string]bool{}
	for _, s := range t.Rows() {
		tag := baseTag(s.Electrode)
		spikes[tag]++
		if s.Conductance {
			flagged[tag] = true
		}
	}

	var b strings.Builder
	b.WriteString("      a b c d e f g h j k l m\n")
	for y := 0; y < 12; y++ {
		fmt.Fprintf(&b, "%4d ", y+1)
		for x := 0; x < 12; x++ {
			tag, err := layout.TagForElectrode(x, y)
			glyph := GlyphEmpty
			switch {
			case err != nil:
				glyph = " "
			case flagged[tag]:
				glyph = GlyphFlagged
			case spike.IsAnalog(tag):
				glyph = GlyphAnalog
			case spikes[tag] > 0:
				glyph = GlyphSpikes
			}
			b.WriteString(" " + glyph)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
