package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuizCanonical(t *testing.T) {
	raw := []byte(`[
		{"text": "Q1", "answers": [
			{"text": "a", "isCorrect": false},
			{"text": "b", "isCorrect": true}
		]},
		{"text": "Q2", "answers": [
			{"text": "x", "isCorrect": true},
			{"text": "y", "isCorrect": false}
		]}
	]`)

	questions, format := NormalizeQuiz(raw)
	assert.Equal(t, QuizCanonical, format)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, CorrectIndex(questions[0]))
	assert.Equal(t, 0, CorrectIndex(questions[1]))
}

func TestNormalizeQuizWrapped(t *testing.T) {
	for _, key := range []string{"quiz", "questions", "data", "items"} {
		raw := []byte(`{"` + key + `": [{"question": "Q1", "options": [
			{"answer": "a", "is_correct": true},
			{"answer": "b"}
		]}]}`)

		questions, format := NormalizeQuiz(raw)
		assert.Equal(t, QuizQuestionsWrapped, format, key)
		require.Len(t, questions, 1, key)
		assert.Equal(t, "Q1", questions[0].Text)
		assert.Equal(t, 0, CorrectIndex(questions[0]))
	}
}

func TestNormalizeQuizSingleton(t *testing.T) {
	raw := []byte(`{"title": "Only one", "choices": [
		{"label": "a"},
		{"label": "b", "correct": true}
	]}`)

	questions, format := NormalizeQuiz(raw)
	assert.Equal(t, QuizSingleton, format)
	require.Len(t, questions, 1)
	assert.Equal(t, 1, CorrectIndex(questions[0]))
}

func TestNormalizeQuizLegacyIndexed(t *testing.T) {
	// Primitive answers with a 1-based question-level index.
	raw := []byte(`[{"q": "Legacy", "answers": ["a", "b", "c"], "correct": 2}]`)

	questions, format := NormalizeQuiz(raw)
	assert.Equal(t, QuizLegacyIndexed, format)
	require.Len(t, questions, 1)
	assert.Equal(t, 1, CorrectIndex(questions[0]))
	assert.Equal(t, "b", questions[0].Answers[1].Text)
}

func TestNormalizeQuizDoubleEncoded(t *testing.T) {
	raw := []byte(`"[{\"text\": \"Q1\", \"answers\": [{\"text\": \"a\", \"isCorrect\": true}, {\"text\": \"b\"}]}]"`)

	questions, format := NormalizeQuiz(raw)
	assert.Equal(t, QuizCanonical, format)
	require.Len(t, questions, 1)
}

func TestNormalizeQuizAnswerKeyFallback(t *testing.T) {
	raw := []byte(`[{"text": "Q1", "answer_1": "a", "answer_2": "b", "answer_3": "", "correctIndex": 1}]`)

	questions, _ := NormalizeQuiz(raw)
	require.Len(t, questions, 1)
	require.Len(t, questions[0].Answers, 2)
	assert.Equal(t, 0, CorrectIndex(questions[0]))
}

func TestNormalizeQuizDropsUnusable(t *testing.T) {
	raw := []byte(`[
		{"text": "", "answers": [{"text": "a"}, {"text": "b"}]},
		{"text": "One answer", "answers": [{"text": "a"}]},
		"just a string",
		{"text": "Kept", "answers": [{"text": "a"}, {"text": "b", "isCorrect": true}]}
	]`)

	questions, _ := NormalizeQuiz(raw)
	require.Len(t, questions, 1)
	assert.Equal(t, "Kept", questions[0].Text)
}

func TestNormalizeQuizInvalid(t *testing.T) {
	for _, raw := range [][]byte{
		nil,
		[]byte(``),
		[]byte(`not json at all{`),
		[]byte(`42`),
		[]byte(`{"unrelated": true}`),
	} {
		questions, format := NormalizeQuiz(raw)
		assert.Equal(t, QuizInvalid, format, string(raw))
		assert.Empty(t, questions)
	}
}

func TestNormalizeQuizKeepsUnmarkedQuestions(t *testing.T) {
	// A question with no correct answer anywhere must survive with no
	// invented key; it scores as always-wrong, not first-correct.
	raw := []byte(`[{"text": "No key", "answers": [{"text": "a"}, {"text": "b"}]}]`)

	questions, _ := NormalizeQuiz(raw)
	require.Len(t, questions, 1)
	assert.Equal(t, -1, CorrectIndex(questions[0]))
}

func TestEnsureCorrectMarked(t *testing.T) {
	questions := []QuizQuestion{
		{Text: "unmarked", Answers: []QuizAnswer{{Text: "a"}, {Text: "b"}}},
		{Text: "marked", Answers: []QuizAnswer{{Text: "a"}, {Text: "b", IsCorrect: true}}},
	}

	EnsureCorrectMarked(questions)

	assert.Equal(t, 0, CorrectIndex(questions[0]))
	assert.Equal(t, 1, CorrectIndex(questions[1]))
}

func TestScoreSubmission(t *testing.T) {
	questions := []QuizQuestion{
		{Text: "Q1", Answers: []QuizAnswer{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		{Text: "Q2", Answers: []QuizAnswer{{Text: "a"}, {Text: "b", IsCorrect: true}}},
		{Text: "Q3", Answers: []QuizAnswer{{Text: "a"}, {Text: "b", IsCorrect: true}}},
	}

	i0, i1 := 0, 0
	score, correct, indices := ScoreSubmission(questions, []*int{&i0, &i1, nil})

	assert.Equal(t, 1, correct)
	assert.InDelta(t, 33.3, score, 0.001)
	assert.Equal(t, []int{0, 1, 1}, indices)
}

func TestScoreSubmissionUnmarkedNeverCorrect(t *testing.T) {
	questions := []QuizQuestion{
		{Text: "Q1", Answers: []QuizAnswer{{Text: "a"}, {Text: "b"}}},
	}

	zero := 0
	score, correct, indices := ScoreSubmission(questions, []*int{&zero})

	assert.Equal(t, 0, correct)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, []int{-1}, indices)
}

func TestScoreSubmissionEmptyQuiz(t *testing.T) {
	score, correct, _ := ScoreSubmission(nil, nil)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, 0, correct)
}

func TestScoreSubmissionRounding(t *testing.T) {
	questions := make([]QuizQuestion, 3)
	for i := range questions {
		questions[i] = QuizQuestion{
			Text:    "Q",
			Answers: []QuizAnswer{{Text: "a", IsCorrect: true}, {Text: "b"}},
		}
	}
	zero := 0
	score, _, _ := ScoreSubmission(questions, []*int{&zero, &zero, nil})

	// 2/3 rounds to one decimal.
	assert.Equal(t, 66.7, score)
}

func TestParseStoredAnswersJSON(t *testing.T) {
	vals := ParseStoredAnswers([]byte(`[0, 2, null, 1]`))
	require.Len(t, vals, 4)
	assert.Nil(t, vals[2])

	indices := AnswerIndices(vals)
	require.Len(t, indices, 4)
	assert.Equal(t, 0, *indices[0])
	assert.Equal(t, 2, *indices[1])
	assert.Nil(t, indices[2])
}

func TestParseStoredAnswersDoubleEncoded(t *testing.T) {
	vals := ParseStoredAnswers([]byte(`"[1, null, 0]"`))
	require.Len(t, vals, 3)
	assert.Nil(t, vals[1])
}

func TestParseStoredAnswersLegacyText(t *testing.T) {
	vals := ParseStoredAnswers([]byte(`[1, 'None', "2", none]`))
	require.Len(t, vals, 4)
	assert.Nil(t, vals[1])
	assert.Nil(t, vals[3])

	indices := AnswerIndices(vals)
	assert.Equal(t, 1, *indices[0])
	assert.Equal(t, 2, *indices[2])
}

func TestParseStoredAnswersOpaqueFallback(t *testing.T) {
	vals := ParseStoredAnswers([]byte(`garbage value`))
	require.Len(t, vals, 1)
	assert.Equal(t, "garbage value", vals[0])
}

func TestParseStoredAnswersEmpty(t *testing.T) {
	assert.Empty(t, ParseStoredAnswers(nil))
	assert.Empty(t, ParseStoredAnswers([]byte(``)))
	assert.Empty(t, ParseStoredAnswers([]byte(`null`)))
}
