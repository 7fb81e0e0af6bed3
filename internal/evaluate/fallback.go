package evaluate

// Fallback returns the neutral evaluation used whenever the external
// evaluator is unavailable or its response cannot be interpreted. The score
// sits mid-range so one outage neither sinks nor inflates a candidate.
func Fallback() Evaluation {
	return Evaluation{
		Score:     5.0,
		Feedback:  "Thank you for your answer. We couldn't perform a detailed review of this response, so keep practicing this topic and compare your approach with the documentation.",
		Strengths: []string{},
		Gaps:      []string{},
	}
}
