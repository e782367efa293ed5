package domain

// OptionSeparator joins option texts into the single CSV options column.
const OptionSeparator = " | "

// CSVHeader is the column order of the intermediate CSV file. The publisher
// validates against the same header before parsing.
var CSVHeader = []string{
	"question",
	"question_images",
	"options",
	"options_images",
	"answer",
	"answer_images",
	"note",
}

// StepResult classifies the outcome of a best-effort UI step. Absent means
// the control never appeared, which is not an error for optional steps.
type StepResult int

const (
	StepSucceeded StepResult = iota
	StepAbsent
	StepFailed
)

func (s StepResult) String() string {
	switch s {
	case StepSucceeded:
		return "succeeded"
	case StepAbsent:
		return "absent"
	case StepFailed:
		return "failed"
	}
	return "unknown"
}

// LoopState is the extraction loop state machine. The loop starts READY,
// moves to ACTIVE on the first extraction, and terminates in DONE (normal
// end of pagination or cap reached) or ABORTED (navigation fault; records
// gathered so far are still flushed).
type LoopState int

const (
	LoopReady LoopState = iota
	LoopActive
	LoopDone
	LoopAborted
)

func (s LoopState) String() string {
	switch s {
	case LoopReady:
		return "READY"
	case LoopActive:
		return "ACTIVE"
	case LoopDone:
		return "DONE"
	case LoopAborted:
		return "ABORTED"
	}
	return "UNKNOWN"
}
