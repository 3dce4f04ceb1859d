// Package report renders a finished quiz into a PDF document the bot
// sends back to the learner.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/e-taalim/quizbot/internal/messages"
	"github.com/e-taalim/quizbot/internal/model"
)

// Generator writes quiz reports under dir using the UTF-8 fonts found in
// fontDir (DejaVuSans.ttf and DejaVuSans-Bold.ttf cover Arabic).
type Generator struct {
	dir     string
	fontDir string
}

func NewGenerator(dir, fontDir string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	return &Generator{dir: dir, fontDir: fontDir}, nil
}

// Generate renders one result with its question texts and returns the
// path of the written file.
func (g *Generator) Generate(firstName, username string, res model.Result, questions []model.Question) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8Font("DejaVu", "", filepath.Join(g.fontDir, "DejaVuSans.ttf"))
	pdf.AddUTF8Font("DejaVu", "B", filepath.Join(g.fontDir, "DejaVuSans-Bold.ttf"))

	pdf.SetFont("DejaVu", "", 14)
	pdf.AddPage()

	pdf.SetFont("DejaVu", "B", 16)
	pdf.MultiCell(0, 10, "تقرير الاختبار", "", "R", false)
	pdf.Ln(4)

	pdf.SetFont("DejaVu", "", 12)
	info := fmt.Sprintf("الاسم: %s\nالمعرف: %s\nالنتيجة: %d من %d\nالنسبة: %.1f%%\n",
		firstName, username, res.Score, res.Total, res.Percentage)
	pdf.MultiCell(0, 8, info, "", "R", false)
	pdf.Ln(4)

	byID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for i, a := range res.Answers {
		pdf.SetFont("DejaVu", "B", 12)
		pdf.MultiCell(0, 8, fmt.Sprintf("السؤال %d:", i+1), "", "R", false)

		pdf.SetFont("DejaVu", "", 12)
		if q, ok := byID[a.QuestionID]; ok && q.Text != "" {
			pdf.MultiCell(0, 8, q.Text, "", "R", false)
			pdf.Ln(2)
		}
		verdict := messages.AnswerWrong
		if a.IsCorrect {
			verdict = messages.AnswerCorrect
		}
		line := fmt.Sprintf("إجابتك: %s\nالصحيحة: %s\n%s\n", a.UserAnswer, a.CorrectAnswer, verdict)
		pdf.MultiCell(0, 8, line, "", "R", false)
		pdf.Ln(4)
	}

	name := "result_" + res.ID + ".pdf"
	if username != "" {
		name = username + "_" + res.ID + ".pdf"
	}
	path := filepath.Join(g.dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", err
	}
	return path, nil
}
