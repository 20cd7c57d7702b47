// Package period decides which lookback window a dashboard request runs with.
package period

import "github.com/mtlprog/stockstat/internal/domain"

// Resolve returns the period in effect for a request fired by trigger.
//
// A period control resolves to its own token. The initial load and a symbol submit resolve to
// domain.DefaultPeriod, so a submit drops the previously requested period. Unrecognized
// triggers also resolve to the default. requested may be empty.
func Resolve(trigger domain.Trigger, requested domain.Period) domain.Period {
	if trigger.Kind == domain.TriggerPeriod && trigger.Period.Valid() {
		return trigger.Period
	}
	return domain.DefaultPeriod
}
