package records

import (
	"math/rand/v2"

	"examdesk/internal/schema"
)

// DrawQuestions selects up to count questions from pool under the
// mandatory-first quota rule:
//
//   - pool fits within count: the whole pool, order preserved, no shuffle
//   - mandatory questions alone meet the quota: count of them, uniformly
//     shuffled, optional questions excluded entirely
//   - otherwise: all mandatory questions plus a uniformly shuffled fill of
//     optional ones up to count
//
// The pool is never mutated; shuffles operate on copies.
func DrawQuestions(pool []schema.Question, count int) []schema.Question {
	if len(pool) <= count {
		return pool
	}

	var mandatory, optional []schema.Question

	for _, question := range pool {
		if question.IsMandatory {
			mandatory = append(mandatory, question)
		} else {
			optional = append(optional, question)
		}
	}

	if len(mandatory) >= count {
		return shuffled(mandatory)[:count]
	}

	result := make([]schema.Question, 0, count)
	result = append(result, mandatory...)

	return append(result, shuffled(optional)[:count-len(mandatory)]...)
}

// shuffled returns a uniformly random permutation of questions, leaving the
// input untouched.
func shuffled(questions []schema.Question) []schema.Question {
	result := make([]schema.Question, len(questions))
	copy(result, questions)

	rand.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})

	return result
}
