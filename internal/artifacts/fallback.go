package artifacts

import (
	"fmt"

	"repotutor/internal/analysis"
	"repotutor/internal/structure"
)

// The fallback generators run when the concept pool came out empty. They
// build plain per-file material with no scoring or style variety so the
// caller always gets something usable back.

func (g *Generator) fallbackFlashcards(a *analysis.Analysis) []Flashcard {
	if a == nil || len(a.Files) == 0 {
		return nil
	}
	var cards []Flashcard
	for _, f := range a.Files {
		if len(cards) >= g.opts.MaxFlashcards {
			break
		}
		cards = append(cards, Flashcard{
			ID:       newID(),
			Style:    StyleResponsibility,
			Category: analysis.ConceptGeneral,
			Concept:  f.Path,
			Question: fmt.Sprintf(g.tpl.fallbackCardQuestion, f.Path),
			Answer:   fmt.Sprintf(g.tpl.fallbackCardAnswer, f.Path),
			Evidence: []analysis.CodeEvidence{fileEvidence(f)},
		})
	}
	return cards
}

func (g *Generator) fallbackQuiz(a *analysis.Analysis, numQuestions int) []QuizQuestion {
	if a == nil || len(a.Files) == 0 {
		return nil
	}
	var questions []QuizQuestion
	for i := 0; i < numQuestions && i < len(a.Files); i++ {
		f := a.Files[i]
		correct := fmt.Sprintf(g.tpl.fallbackCardAnswer, f.Path)
		options := []string{correct}
		for off := 0; off < len(g.tpl.genericWrong) && len(options) < quizOptionCount; off++ {
			options = append(options, g.tpl.genericWrong[(i+off)%len(g.tpl.genericWrong)])
		}
		shuffleOptions(options, f.Path, StyleResponsibility, i)
		questions = append(questions, QuizQuestion{
			ID:            newID(),
			Style:         StyleResponsibility,
			Concept:       f.Path,
			Question:      fmt.Sprintf(g.tpl.fallbackCardQuestion, f.Path),
			Options:       options,
			CorrectAnswer: correct,
			Evidence:      []analysis.CodeEvidence{fileEvidence(f)},
		})
	}
	return questions
}

func (g *Generator) fallbackPath(a *analysis.Analysis) LearningPath {
	path := LearningPath{ID: newID()}
	if a == nil || len(a.Files) == 0 {
		return path
	}
	step := LearningStep{
		ID:    newID(),
		Title: g.tpl.fallbackStepTitle,
	}
	for _, f := range a.Files {
		step.Concepts = append(step.Concepts, f.Path)
		step.Evidence = append(step.Evidence, fileEvidence(f))
	}
	step.Description = fmt.Sprintf(g.tpl.fallbackCardAnswer, step.Concepts[0])
	path.Steps = append(path.Steps, step)
	return path
}

func fileEvidence(f *structure.FileAnalysis) analysis.CodeEvidence {
	end := f.LineCount
	if end < 1 {
		end = 1
	}
	return analysis.CodeEvidence{
		FilePath:    f.Path,
		LineStart:   1,
		LineEnd:     end,
		Description: "file contents",
	}
}
