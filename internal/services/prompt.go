package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/ai-interviewer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// scoringRubric anchors every grading prompt. The explicit per-band
// descriptions and the worked example are there to fight grade inflation:
// without them most models cluster everything at 4-5.
const scoringRubric = `You are a strict technical interviewer. Grade every answer on four criteria, each scored 0-5:

1. Correctness - factual and technical accuracy of the answer
2. Reasoning - depth and soundness of the thought process
3. Clarity - structure and communication quality
4. Problem Solving - approach to breaking down and attacking the problem

Score anchors (apply them literally, do NOT inflate):
- 0: no answer, or entirely wrong
- 1: mostly wrong, a single relevant fragment
- 2: partially correct but shallow, significant gaps
- 3: adequate, covers the basics with some gaps
- 4: strong, minor omissions only
- 5: exceptional, complete and precise (rare - most answers are not a 5)

Worked example: an answer that is partially correct (2), shows weak reasoning (1),
is reasonably clear (2), and shows little problem solving (1) sums to 6 out of 20.
An average answer lands at 2-3 per criterion, not 4-5.`

// BuildAckPrompt asks for a short spoken acknowledgment of the answer.
func (pb *PromptBuilder) BuildAckPrompt(question, answer string) []Message {
	return []Message{
		SystemMessage("You are an interviewer conducting a spoken mock interview. Respond with a brief, natural acknowledgment of 4 to 6 words. No evaluation, no punctuation-heavy text, just a spoken-style transition."),
		UserMessage(fmt.Sprintf("Question: %s\n\nCandidate answer: %s\n\nAcknowledge the answer in 4-6 words.", question, answer)),
	}
}

// BuildFeedbackPrompt creates the per-answer feedback prompt. Prior-session
// context snippets are appended verbatim when present.
func (pb *PromptBuilder) BuildFeedbackPrompt(question, answer string, priorContext []string) []Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\nCandidate answer: %s\n\n", question, answer)

	if len(priorContext) > 0 {
		b.WriteString("Context from the candidate's previous sessions:\n")
		for _, snippet := range priorContext {
			b.WriteString(snippet)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Using the rubric, give the candidate 2-3 sentences of direct feedback on this answer. Mention the strongest point and the most important gap. Return only the feedback text.")

	return []Message{
		SystemMessage(scoringRubric),
		UserMessage(b.String()),
	}
}

// BuildFollowUpPrompt asks for at most one follow-up question. The model must
// answer with the literal word NONE when the answer needs no probing.
func (pb *PromptBuilder) BuildFollowUpPrompt(question, answer string) []Message {
	return []Message{
		SystemMessage(scoringRubric),
		UserMessage(fmt.Sprintf(`Question: %s

Candidate answer: %s

If the answer leaves an important gap worth probing, return exactly one short follow-up question.
If the answer is complete enough, return exactly the word NONE and nothing else.`, question, answer)),
	}
}

// BuildReportPrompt embeds every Q&A pair of the session into one grading
// request that must come back as pure JSON.
func (pb *PromptBuilder) BuildReportPrompt(candidateName string, qas []models.QA) []Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Evaluate the full mock interview of candidate %q.\n\n", candidateName)

	for i, qa := range qas {
		fmt.Fprintf(&b, "Question %d: %s\nAnswer %d: %s\n\n", i+1, qa.Question, i+1, qa.Answer)
	}

	b.WriteString(`Score every question on the four rubric criteria (0-5 each).
The per-question total is (correctness + reasoning + clarity + problem_solving) / 20 * 10,
rounded to one decimal. Example: scores 1,1,2,1 sum to 5, so the total is 2.5.

Return ONLY a JSON object with this exact shape, no markdown fences, no commentary:
{
  "questions": [
    {
      "question": "<the question>",
      "answer": "<the answer>",
      "scores": {
        "correctness": {"score": <0-5>, "reason": "<one sentence>"},
        "reasoning": {"score": <0-5>, "reason": "<one sentence>"},
        "clarity": {"score": <0-5>, "reason": "<one sentence>"},
        "problem_solving": {"score": <0-5>, "reason": "<one sentence>"}
      },
      "feedback": {
        "what_went_right": ["<point>"],
        "needs_improvement": ["<point>"]
      }
    }
  ],
  "overall_feedback": "<3-5 sentences on the whole interview>"
}`)

	return []Message{
		SystemMessage(scoringRubric),
		UserMessage(b.String()),
	}
}
