package script

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/riddler9999/recapflow/internal/recap"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// ExportDocx writes the narration as a styled docx: title heading, then one
// numbered paragraph per beat with its timing and keywords.
func (g *implGenerator) ExportDocx(script *recap.Script, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), script.Title, true, 16)
	doc.AddParagraph("")

	var offset float64
	for i, beat := range script.Beats {
		header := fmt.Sprintf("Beat %d  [%s - %s]", i+1,
			formatClock(offset), formatClock(offset+beat.ApproxDuration))
		addStyledRun(doc.AddParagraph(""), header, true, fontSize)

		p := doc.AddParagraph("")
		p.AddText(beat.Text).Font(fontName).Size(fontSize).Color("000000")

		if len(beat.Keywords) > 0 {
			kw := doc.AddParagraph("")
			kw.AddText("Keywords: "+strings.Join(beat.Keywords, ", ")).
				Font(fontName).Size(fontSize - 2).Color("666666")
		}

		doc.AddParagraph("")
		offset += beat.ApproxDuration
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
