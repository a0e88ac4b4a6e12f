package harness

// StepTrace records the outcome of one executed step: the op, "ok" or
// "err:<tag>", and the canonical CLIF rendering of the graph after the
// step.
type StepTrace struct {
	Op     string `json:"op"`
	Result string `json:"result"`
	Clif   string `json:"clif"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expectation held.
	Pass bool `json:"pass"`

	// Steps traces each executed operation in order.
	Steps []StepTrace `json:"steps"`

	// Final is the canonical CLIF rendering of the final graph.
	Final string `json:"final_clif"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Steps: []StepTrace{},
	}
}

// AddError records an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddStep appends one step trace.
func (r *Result) AddStep(op, outcome, clif string) {
	r.Steps = append(r.Steps, StepTrace{Op: op, Result: outcome, Clif: clif})
}
