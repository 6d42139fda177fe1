package course

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Canonical quiz shape. Everything stored or scored goes through this.
type QuizAnswer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuizQuestion struct {
	Text    string       `json:"text"`
	Answers []QuizAnswer `json:"answers"`
}

// PublicQuestion is the trainee-facing view of a question with the
// answer key stripped.
type PublicQuestion struct {
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
}

// QuizFormat classifies the stored representation of a quiz. Historical
// data carries several shapes; each gets its own normalization path.
type QuizFormat int

const (
	QuizInvalid QuizFormat = iota
	QuizCanonical
	QuizQuestionsWrapped
	QuizSingleton
	QuizLegacyIndexed
)

func (f QuizFormat) String() string {
	switch f {
	case QuizCanonical:
		return "canonical"
	case QuizQuestionsWrapped:
		return "wrapped"
	case QuizSingleton:
		return "singleton"
	case QuizLegacyIndexed:
		return "legacy_indexed"
	default:
		return "invalid"
	}
}

var quizWrapperKeys = []string{"quiz", "questions", "data", "items"}
var questionTextKeys = []string{"text", "question", "title", "q"}
var answerListKeys = []string{"answers", "options", "choices"}
var answerTextKeys = []string{"text", "answer", "label", "option"}
var questionCorrectKeys = []string{"correctIndex", "correct", "correct_index", "correctAnswer", "correct_answer"}
var answerCorrectKeys = []string{"isCorrect", "is_correct", "correct", "isAnswer", "answer_is_correct"}

// decodeQuiz unmarshals stored quiz JSON, unwrapping one level of
// double-encoding. Returns nil for unparseable input.
func decodeQuiz(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	if s, ok := v.(string); ok {
		var inner interface{}
		if err := json.Unmarshal([]byte(s), &inner); err != nil {
			return nil
		}
		v = inner
	}
	return v
}

// DetectQuizFormat reports which stored shape the decoded value is in.
func DetectQuizFormat(v interface{}) QuizFormat {
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			q, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if quizItemIsLegacy(q) {
				return QuizLegacyIndexed
			}
		}
		return QuizCanonical
	case map[string]interface{}:
		for _, key := range quizWrapperKeys {
			if _, ok := t[key].([]interface{}); ok {
				return QuizQuestionsWrapped
			}
		}
		if questionText(t) != "" {
			return QuizSingleton
		}
		return QuizInvalid
	default:
		return QuizInvalid
	}
}

func quizItemIsLegacy(q map[string]interface{}) bool {
	for _, key := range questionCorrectKeys {
		if _, ok := q[key]; ok {
			return true
		}
	}
	for _, key := range answerListKeys {
		if list, ok := q[key].([]interface{}); ok {
			for _, a := range list {
				if _, isMap := a.(map[string]interface{}); !isMap {
					return true
				}
			}
		}
	}
	return false
}

// NormalizeQuiz turns raw stored quiz JSON into canonical questions.
// Unrecognized or invalid input yields an empty list, never an error:
// legacy rows must not be able to crash a scoring request.
func NormalizeQuiz(raw []byte) ([]QuizQuestion, QuizFormat) {
	v := decodeQuiz(raw)
	format := DetectQuizFormat(v)
	switch format {
	case QuizCanonical, QuizLegacyIndexed:
		return normalizeItems(v.([]interface{})), format
	case QuizQuestionsWrapped:
		m := v.(map[string]interface{})
		for _, key := range quizWrapperKeys {
			if list, ok := m[key].([]interface{}); ok {
				return normalizeItems(list), format
			}
		}
		return nil, format
	case QuizSingleton:
		return normalizeItems([]interface{}{v}), format
	default:
		return nil, QuizInvalid
	}
}

func questionText(q map[string]interface{}) string {
	for _, key := range questionTextKeys {
		if s, ok := q[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// questionCorrectIndex extracts a question-level correct index. Values
// are accepted 1-based and shifted down; zero and negatives pass
// through as already 0-based.
func questionCorrectIndex(q map[string]interface{}) (int, bool) {
	for _, key := range questionCorrectKeys {
		v, ok := q[key]
		if !ok {
			continue
		}
		n, ok := asInt(v)
		if !ok {
			return 0, false
		}
		if n > 0 {
			return n - 1, true
		}
		return n, true
	}
	return 0, false
}

func asInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes":
			return true
		}
		return false
	default:
		return false
	}
}

func answerCorrect(a map[string]interface{}) bool {
	for _, key := range answerCorrectKeys {
		if v, ok := a[key]; ok && truthy(v) {
			return true
		}
	}
	return false
}

func answerText(a map[string]interface{}) string {
	for _, key := range answerTextKeys {
		if s, ok := a[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func normalizeItems(items []interface{}) []QuizQuestion {
	norm := make([]QuizQuestion, 0, len(items))
	for _, item := range items {
		q, ok := item.(map[string]interface{})
		if !ok {
			// Bare strings carry no answers; skip.
			continue
		}
		text := questionText(q)
		correctIdx, hasCorrectIdx := questionCorrectIndex(q)

		var rawAnswers []interface{}
		for _, key := range answerListKeys {
			if list, ok := q[key].([]interface{}); ok {
				rawAnswers = list
				break
			}
		}

		answers := make([]QuizAnswer, 0, len(rawAnswers))
		for idx, a := range rawAnswers {
			var at string
			var corr bool
			if m, isMap := a.(map[string]interface{}); isMap {
				at = answerText(m)
				corr = answerCorrect(m)
			} else {
				at = strings.TrimSpace(stringify(a))
			}
			if !corr && hasCorrectIdx && idx == correctIdx {
				corr = true
			}
			if at == "" {
				continue
			}
			answers = append(answers, QuizAnswer{Text: at, IsCorrect: corr})
		}

		// Fallback shape: answer_1 .. answer_5 keys on the question.
		if len(answers) == 0 {
			for i := 1; i <= 5; i++ {
				v, ok := q["answer_"+strconv.Itoa(i)]
				if !ok {
					continue
				}
				at := strings.TrimSpace(stringify(v))
				if at == "" {
					continue
				}
				corr := hasCorrectIdx && len(answers) == correctIdx
				answers = append(answers, QuizAnswer{Text: at, IsCorrect: corr})
			}
		}

		if text == "" || len(answers) < 2 {
			continue
		}
		norm = append(norm, QuizQuestion{Text: text, Answers: answers})
	}
	return norm
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// EnsureCorrectMarked defaults the first answer of each question to
// correct when none is marked. Authoring path only; scoring never
// invents a correct answer.
func EnsureCorrectMarked(qs []QuizQuestion) {
	for i := range qs {
		if CorrectIndex(qs[i]) < 0 && len(qs[i].Answers) > 0 {
			qs[i].Answers[0].IsCorrect = true
		}
	}
}

// CorrectIndex returns the index of the first correct answer, or -1
// when no correct answer is recorded.
func CorrectIndex(q QuizQuestion) int {
	for i, a := range q.Answers {
		if a.IsCorrect {
			return i
		}
	}
	return -1
}

// PublicQuiz strips the answer key for trainee-facing delivery.
func PublicQuiz(qs []QuizQuestion) []PublicQuestion {
	out := make([]PublicQuestion, 0, len(qs))
	for _, q := range qs {
		texts := make([]string, 0, len(q.Answers))
		for _, a := range q.Answers {
			texts = append(texts, a.Text)
		}
		out = append(out, PublicQuestion{Text: q.Text, Answers: texts})
	}
	return out
}

// ScoreSubmission scores an ordered answer vector (nil = unanswered)
// against the canonical questions. A position is correct iff the
// submitted index equals the recorded correct index and one exists.
// Returns the percentage rounded to one decimal, the correct count and
// the per-question correct indices.
func ScoreSubmission(qs []QuizQuestion, answers []*int) (float64, int, []int) {
	total := len(qs)
	indices := make([]int, 0, total)
	correct := 0
	for i, q := range qs {
		ci := CorrectIndex(q)
		indices = append(indices, ci)
		if ci < 0 || i >= len(answers) || answers[i] == nil {
			continue
		}
		if *answers[i] == ci {
			correct++
		}
	}
	if total == 0 {
		return 0, 0, indices
	}
	score := math.Round(float64(correct)/float64(total)*1000) / 10
	return score, correct, indices
}

// ParseStoredAnswers reads a saved answer snapshot. Normal rows are
// JSON arrays; legacy rows may be double-encoded or plain
// bracket-delimited comma lists with quoted or bare tokens. Never
// fails: an unsplittable value comes back as a single opaque element.
func ParseStoredAnswers(raw []byte) []interface{} {
	if len(raw) == 0 {
		return []interface{}{}
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err == nil {
		if s, ok := v.(string); ok {
			var inner interface{}
			if err := json.Unmarshal([]byte(s), &inner); err == nil {
				v = inner
			} else {
				return parseLegacyAnswerList(s)
			}
		}
		if list, ok := v.([]interface{}); ok {
			return list
		}
		if v == nil {
			return []interface{}{}
		}
		return []interface{}{v}
	}
	return parseLegacyAnswerList(string(raw))
}

func parseLegacyAnswerList(s string) []interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return []interface{}{}
	}
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	parts := strings.Split(s, ",")
	out := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		tok := strings.Trim(strings.TrimSpace(p), `"'`)
		switch strings.ToLower(tok) {
		case "", "null", "none":
			out = append(out, nil)
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil {
			out = append(out, float64(n))
			continue
		}
		out = append(out, tok)
	}
	return out
}

// AnswerIndices converts a stored answer snapshot into the selected
// option indices used for scoring. Non-numeric entries count as
// unanswered.
func AnswerIndices(vals []interface{}) []*int {
	out := make([]*int, 0, len(vals))
	for _, v := range vals {
		if n, ok := asInt(v); ok {
			idx := n
			out = append(out, &idx)
			continue
		}
		out = append(out, nil)
	}
	return out
}
