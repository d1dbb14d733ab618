package artifacts

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"

	"repotutor/internal/analysis"
	"repotutor/internal/intent"
)

const quizOptionCount = 4

// Quiz cycles the style rotation across the pool until numQuestions is
// reached. Distractors are drawn from other pooled concepts first, then
// from the generic wrong-answer table. Option order is shuffled with a
// seed derived from concept, style, and index so runs are reproducible.
func (g *Generator) Quiz(a *analysis.Analysis, in intent.Intent, numQuestions int) []QuizQuestion {
	if numQuestions <= 0 {
		numQuestions = g.opts.QuizQuestions
	}
	pool := g.Pool(a, in)
	if len(pool) == 0 {
		return g.fallbackQuiz(a, numQuestions)
	}

	var questions []QuizQuestion
	for i := 0; i < numQuestions; i++ {
		concept := pool[i%len(pool)]
		style := quizStyles[i%len(quizStyles)]
		questions = append(questions, g.buildQuestion(concept, style, i, pool))
	}
	g.logger.Debug("quiz generated", "questions", len(questions), "pool", len(pool))
	return questions
}

func (g *Generator) buildQuestion(c analysis.ConceptSeed, style Style, index int, pool []analysis.ConceptSeed) QuizQuestion {
	correct := fmt.Sprintf(g.tpl.quizCorrect[style], correctSubject(c, style))

	options := []string{correct}
	used := map[string]bool{normalizeKey(correct): true}
	appendOption := func(text string) {
		if len(options) >= quizOptionCount {
			return
		}
		key := normalizeKey(text)
		if text == "" || used[key] {
			return
		}
		used[key] = true
		options = append(options, text)
	}

	// Other concepts dressed in the same style read plausible but wrong.
	for _, other := range pool {
		if other.Name == c.Name {
			continue
		}
		appendOption(fmt.Sprintf(g.tpl.quizCorrect[style], correctSubject(other, style)))
	}
	// Rotate the generic fillers by question index so single-concept pools
	// still produce distinct option sets per question.
	generics := g.tpl.genericWrong
	for off := 0; off < len(generics) && len(options) < quizOptionCount; off++ {
		appendOption(generics[(index*3+off)%len(generics)])
	}

	shuffleOptions(options, c.Name, style, index)

	return QuizQuestion{
		ID:            newID(),
		Style:         style,
		Concept:       c.Name,
		Question:      fmt.Sprintf(g.tpl.quizQuestion[style], c.Name),
		Options:       options,
		CorrectAnswer: correct,
		Evidence:      c.Evidence,
	}
}

// correctSubject is what the correct-answer template cites: the concept
// description, except debug questions cite the anchor location.
func correctSubject(c analysis.ConceptSeed, style Style) string {
	if style == StyleDebug {
		return fmt.Sprintf("%s:%d", c.AnchorFile, c.AnchorLine)
	}
	return c.Description
}

// shuffleOptions reorders in place using a generator seeded from the
// stable (concept, style, index) triple.
func shuffleOptions(options []string, concept string, style Style, index int) {
	h := fnv.New64a()
	h.Write([]byte(concept))
	h.Write([]byte{'|'})
	h.Write([]byte(style))
	h.Write([]byte{'|'})
	h.Write([]byte(strconv.Itoa(index)))
	r := rand.New(rand.NewSource(int64(h.Sum64())))
	r.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}
