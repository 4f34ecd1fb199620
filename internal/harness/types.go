package harness

// TraceEvent is one recorded write.
type TraceEvent struct {
	Seq      int64  `json:"seq"`
	Monitor  string `json:"monitor"`
	Code     string `json:"code"`
	Name     string `json:"name,omitempty"`
	Value    uint16 `json:"value"`
	Verified bool   `json:"verified"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	RunID    string `json:"run_id"`
	Executed int    `json:"executed"`

	// Output holds the lines printed by get and toggle steps.
	Output []string `json:"output"`

	// Failed holds the errors of failed steps when errors are ignored.
	Failed []string `json:"failed"`

	// Trace holds every write of the run ordered by seq.
	Trace []TraceEvent `json:"trace"`

	// Errors holds assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(runID string) *Result {
	return &Result{
		Pass:   true,
		RunID:  runID,
		Output: []string{},
		Failed: []string{},
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddWrite appends a write to the trace.
func (r *Result) AddWrite(e TraceEvent) {
	r.Trace = append(r.Trace, e)
}
