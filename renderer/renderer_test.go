package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ByLCY/fitwidth/layout"
)

func TestRuns(t *testing.T) {
	red := layout.RGB(0xff, 0, 0)
	line := layout.Line{
		Text:   "abcdefgh",
		Start:  10,
		End:    18,
		Ranges: []layout.StyleRange{layout.Background(2, 4, red), layout.Clickable(4, 6, "x")},
	}
	assert.Equal(t, []Run{
		{Start: 0, End: 2},
		{Start: 2, End: 4, Style: layout.Background(2, 4, red), Styled: true},
		{Start: 4, End: 6, Style: layout.Clickable(4, 6, "x"), Styled: true},
		{Start: 6, End: 8},
	}, Runs(line))

	assert.Equal(t, []Run{{Start: 0, End: 8}}, Runs(layout.Line{Text: "abcdefgh", End: 8}))
	assert.Nil(t, Runs(layout.Line{ParagraphBreak: true, Start: 3, End: 4}))
}
