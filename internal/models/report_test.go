package models

import (
	"encoding/json"
	"testing"
)

func scores(c, r, cl, ps int) CriterionScores {
	return CriterionScores{
		Correctness:    Criterion{Score: c},
		Reasoning:      Criterion{Score: r},
		Clarity:        Criterion{Score: cl},
		ProblemSolving: Criterion{Score: ps},
	}
}

func TestQuestionTotal(t *testing.T) {
	tests := []struct {
		name       string
		c, r, cl, ps int
		want       float64
	}{
		{"worked example", 1, 1, 2, 1, 2.5},
		{"all zero", 0, 0, 0, 0, 0},
		{"all max", 5, 5, 5, 5, 10},
		{"mixed", 3, 2, 4, 1, 5.0},
		{"odd sum", 2, 2, 2, 1, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuestionTotal(scores(tt.c, tt.r, tt.cl, tt.ps))
			if got != tt.want {
				t.Fatalf("QuestionTotal(%d,%d,%d,%d) = %v, want %v", tt.c, tt.r, tt.cl, tt.ps, got, tt.want)
			}
		})
	}
}

func TestQuestionTotalBounds(t *testing.T) {
	for c := 0; c <= 5; c++ {
		for r := 0; r <= 5; r++ {
			for cl := 0; cl <= 5; cl++ {
				for ps := 0; ps <= 5; ps++ {
					total := QuestionTotal(scores(c, r, cl, ps))
					if total < 0 || total > 10 {
						t.Fatalf("total %v out of range for scores %d,%d,%d,%d", total, c, r, cl, ps)
					}
				}
			}
		}
	}
}

func TestFinalScore(t *testing.T) {
	tests := []struct {
		name   string
		totals []float64
		want   int
	}{
		// mean 5.25 scales to 52.5; rounding is half-up, so 53
		{"half-up at the boundary", []float64{2.5, 8.0}, 53},
		{"single question", []float64{7.5}, 75},
		{"empty", nil, 0},
		{"all max", []float64{10, 10, 10}, 100},
		{"all zero", []float64{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalScore(tt.totals)
			if got != tt.want {
				t.Fatalf("FinalScore(%v) = %d, want %d", tt.totals, got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Fatalf("FinalScore(%v) = %d out of [0,100]", tt.totals, got)
			}
		})
	}
}

func TestRecomputeOverridesModelNumbers(t *testing.T) {
	report := Report{
		Questions: []QuestionEvaluation{
			{Scores: scores(1, 1, 2, 1), Total: 9.9},
			{Scores: scores(4, 4, 4, 4), Total: 0.1},
		},
		FinalScore: 1,
	}

	report.Recompute()

	if report.Questions[0].Total != 2.5 {
		t.Fatalf("expected first total 2.5, got %v", report.Questions[0].Total)
	}
	if report.Questions[1].Total != 8.0 {
		t.Fatalf("expected second total 8.0, got %v", report.Questions[1].Total)
	}
	if report.FinalScore != 53 {
		t.Fatalf("expected final score 53, got %d", report.FinalScore)
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	report := Report{
		Questions: []QuestionEvaluation{
			{Scores: scores(3, 2, 4, 1)},
			{Scores: scores(5, 5, 4, 3)},
		},
	}

	report.Recompute()
	firstTotals := []float64{report.Questions[0].Total, report.Questions[1].Total}
	firstFinal := report.FinalScore

	report.Recompute()

	if report.Questions[0].Total != firstTotals[0] || report.Questions[1].Total != firstTotals[1] {
		t.Fatalf("totals changed on second recompute")
	}
	if report.FinalScore != firstFinal {
		t.Fatalf("final score changed on second recompute: %d vs %d", firstFinal, report.FinalScore)
	}
}

func TestRecomputeClampsScores(t *testing.T) {
	report := Report{
		Questions: []QuestionEvaluation{
			{Scores: scores(9, -2, 5, 5)},
		},
	}

	report.Recompute()

	if got := report.Questions[0].Scores.Correctness.Score; got != 5 {
		t.Fatalf("expected correctness clamped to 5, got %d", got)
	}
	if got := report.Questions[0].Scores.Reasoning.Score; got != 0 {
		t.Fatalf("expected reasoning clamped to 0, got %d", got)
	}
	if report.Questions[0].Total != 7.5 {
		t.Fatalf("expected total 7.5 after clamping, got %v", report.Questions[0].Total)
	}
}

func TestCriterionUnmarshalBareNumber(t *testing.T) {
	var c Criterion
	if err := json.Unmarshal([]byte(`4`), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Score != 4 || c.Reason != "" {
		t.Fatalf("unexpected criterion: %+v", c)
	}
}

func TestCriterionUnmarshalObject(t *testing.T) {
	var c Criterion
	if err := json.Unmarshal([]byte(`{"score": 3, "reason": "solid basics"}`), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Score != 3 || c.Reason != "solid basics" {
		t.Fatalf("unexpected criterion: %+v", c)
	}
}

func TestCriterionUnmarshalBothShapesMatch(t *testing.T) {
	var fromNumber, fromObject CriterionScores

	bare := `{"correctness": 1, "reasoning": 1, "clarity": 2, "problem_solving": 1}`
	wrapped := `{
		"correctness": {"score": 1},
		"reasoning": {"score": 1},
		"clarity": {"score": 2},
		"problem_solving": {"score": 1}
	}`

	if err := json.Unmarshal([]byte(bare), &fromNumber); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal([]byte(wrapped), &fromObject); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fromNumber.Sum() != fromObject.Sum() {
		t.Fatalf("sums differ: %d vs %d", fromNumber.Sum(), fromObject.Sum())
	}
	if QuestionTotal(fromNumber) != 2.5 {
		t.Fatalf("expected total 2.5, got %v", QuestionTotal(fromNumber))
	}
}

func TestCriterionUnmarshalMissingFieldsDefaultToZero(t *testing.T) {
	var s CriterionScores
	if err := json.Unmarshal([]byte(`{"correctness": 5}`), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Correctness.Score != 5 || s.Reasoning.Score != 0 || s.Clarity.Score != 0 || s.ProblemSolving.Score != 0 {
		t.Fatalf("unexpected scores: %+v", s)
	}
}

func TestCriterionUnmarshalRejectsInvalid(t *testing.T) {
	var c Criterion
	if err := json.Unmarshal([]byte(`"four"`), &c); err == nil {
		t.Fatal("expected error for non-numeric, non-object criterion")
	}
}
