package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Criterion is one scored rubric dimension. The LLM is inconsistent about the
// shape it returns (a bare number or a {score, reason} object), so both decode
// into this canonical form.
type Criterion struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

func (c *Criterion) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		c.Score = int(math.Round(num))
		c.Reason = ""
		return nil
	}

	var obj struct {
		Score  float64 `json:"score"`
		Reason string  `json:"reason"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("criterion must be a number or an object: %w", err)
	}

	c.Score = int(math.Round(obj.Score))
	c.Reason = obj.Reason
	return nil
}

// Clamp forces the score into the 0-5 rubric range.
func (c *Criterion) Clamp() {
	if c.Score < 0 {
		c.Score = 0
	}
	if c.Score > 5 {
		c.Score = 5
	}
}

type CriterionScores struct {
	Correctness    Criterion `json:"correctness"`
	Reasoning      Criterion `json:"reasoning"`
	Clarity        Criterion `json:"clarity"`
	ProblemSolving Criterion `json:"problem_solving"`
}

func (s *CriterionScores) Clamp() {
	s.Correctness.Clamp()
	s.Reasoning.Clamp()
	s.Clarity.Clamp()
	s.ProblemSolving.Clamp()
}

func (s CriterionScores) Sum() int {
	return s.Correctness.Score + s.Reasoning.Score + s.Clarity.Score + s.ProblemSolving.Score
}

type QuestionFeedback struct {
	WhatWentRight    []string `json:"what_went_right"`
	NeedsImprovement []string `json:"needs_improvement"`
}

type QuestionEvaluation struct {
	Question string           `json:"question"`
	Answer   string           `json:"answer"`
	Scores   CriterionScores  `json:"scores"`
	Total    float64          `json:"total"`
	Feedback QuestionFeedback `json:"feedback"`
}

type Candidate struct {
	Name      string `json:"name"`
	SessionID string `json:"session_id"`
}

// Report is the final interview evaluation handed to persistence and display.
type Report struct {
	Candidate       Candidate            `json:"candidate"`
	Questions       []QuestionEvaluation `json:"questions"`
	FinalScore      int                  `json:"final_score"`
	OverallFeedback string               `json:"overall_feedback"`
}

// QuestionTotal converts four 0-5 criterion scores into a 0-10 total with one
// decimal place. Rounding is half-up.
func QuestionTotal(s CriterionScores) float64 {
	total := float64(s.Sum()) / 20.0 * 10.0
	return math.Round(total*10) / 10
}

// FinalScore is the half-up rounded mean of the per-question totals scaled to
// 0-100. An empty list scores zero.
func FinalScore(totals []float64) int {
	if len(totals) == 0 {
		return 0
	}
	var sum float64
	for _, t := range totals {
		sum += t
	}
	mean := sum / float64(len(totals))
	return int(math.Round(mean * 10))
}

// Recompute discards every numeric total the model reported and derives them
// locally from the raw criterion scores.
func (r *Report) Recompute() {
	totals := make([]float64, 0, len(r.Questions))
	for i := range r.Questions {
		r.Questions[i].Scores.Clamp()
		r.Questions[i].Total = QuestionTotal(r.Questions[i].Scores)
		totals = append(totals, r.Questions[i].Total)
	}
	r.FinalScore = FinalScore(totals)
}
