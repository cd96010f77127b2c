package component

// ScheduledCall runs Run once Remaining seconds have elapsed. There is no
// cancellation; callers that care about staleness guard inside Run.
type ScheduledCall struct {
	Name      string
	Remaining float64
	Run       func()
}

var ScheduledCallComponent = NewComponent[ScheduledCall]()
