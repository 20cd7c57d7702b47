package domain

// SubmitControlID is the identifier of the symbol submit control.
const SubmitControlID = "find"

// TriggerKind classifies the control that caused a request.
type TriggerKind string

const (
	TriggerNone    TriggerKind = "none"    // initial load, nothing clicked yet
	TriggerSubmit  TriggerKind = "submit"  // symbol submitted
	TriggerPeriod  TriggerKind = "period"  // one of the period controls
	TriggerUnknown TriggerKind = "unknown" // an id no control uses
)

// Trigger identifies the control that fired for the current request.
type Trigger struct {
	Kind   TriggerKind
	Period Period // set when Kind is TriggerPeriod
	ID     string // raw control id as received
}

// NoTrigger is the trigger of the initial load.
func NoTrigger() Trigger {
	return Trigger{Kind: TriggerNone}
}

// SubmitTrigger is the trigger of the symbol submit control.
func SubmitTrigger() Trigger {
	return Trigger{Kind: TriggerSubmit, ID: SubmitControlID}
}

// PeriodTrigger is the trigger of the control for period p.
func PeriodTrigger(p Period) Trigger {
	return Trigger{Kind: TriggerPeriod, Period: p, ID: string(p)}
}

// ParseTrigger maps a control id to a Trigger: "" is the initial load, "find" is the
// submit control, a period token is that period's control. Any other id is TriggerUnknown.
func ParseTrigger(id string) Trigger {
	switch id {
	case "":
		return NoTrigger()
	case SubmitControlID:
		return SubmitTrigger()
	}
	if p, ok := ParsePeriod(id); ok {
		return PeriodTrigger(p)
	}
	return Trigger{Kind: TriggerUnknown, ID: id}
}
