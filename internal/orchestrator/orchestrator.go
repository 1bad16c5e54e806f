// Package orchestrator wires extraction, merging and rendering into the
// combine and render pipelines.
package orchestrator

// Step identifies a pipeline step.
type Step int

const (
	StepExtractDeck Step = iota
	StepExtractDocument
	StepMerge
	StepRender
)

func (s Step) String() string {
	names := [...]string{
		"extract-deck",
		"extract-document",
		"merge",
		"render",
	}
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// ProgressEvent is emitted while a pipeline runs.
type ProgressEvent struct {
	Step    Step
	Item    string // input or output path the step works on
	Status  ProgressStatus
	Message string
}

// ProgressStatus is the state of a step.
type ProgressStatus string

const (
	ProgressPending  ProgressStatus = "pending"
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressFailed   ProgressStatus = "failed"
)
