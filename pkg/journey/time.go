package journey

import "time"

type Severity string

const (
	SeverityGood Severity = "good"
	SeverityBad  Severity = "bad"
)

// DelayThresholdSeconds is the largest delay still classified as good
const DelayThresholdSeconds = 300

type Role string

const (
	RoleArrival   Role = "arrival"
	RoleDeparture Role = "departure"
)

// TimeStatus is a single arrival or departure event. Delay and Severity are only set when
// realtime data is known; otherwise Time is the planned time.
type TimeStatus struct {
	Time     time.Time `json:"time" groups:"basic"`
	Delay    *float64  `json:"delay,omitempty" groups:"basic"`
	Severity Severity  `json:"severity,omitempty" groups:"basic"`
}

// TimePair bundles the arrival and departure at one place. A nil side does not exist.
type TimePair struct {
	Arrival   *TimeStatus `json:"arrival" groups:"basic"`
	Departure *TimeStatus `json:"departure" groups:"basic"`
}

func (p TimePair) Get(role Role) *TimeStatus {
	if role == RoleArrival {
		return p.Arrival
	}

	return p.Departure
}

// ParseSingle builds the status of one event. It returns nil when neither an actual nor a
// planned time exists.
func ParseSingle(actual *time.Time, planned *time.Time, delaySeconds *int) *TimeStatus {
	if actual == nil && planned == nil {
		return nil
	}

	if delaySeconds == nil {
		displayed := planned
		if displayed == nil {
			displayed = actual
		}
		return &TimeStatus{Time: *displayed}
	}

	displayed := actual
	if displayed == nil {
		displayed = planned
	}

	delay := float64(*delaySeconds) / 60
	severity := SeverityGood
	if *delaySeconds > DelayThresholdSeconds {
		severity = SeverityBad
	}

	return &TimeStatus{
		Time:     *displayed,
		Delay:    &delay,
		Severity: severity,
	}
}

// ParseSingleTime places a single event on the given side of a TimePair
func ParseSingleTime(actual *time.Time, planned *time.Time, delaySeconds *int, role Role) TimePair {
	status := ParseSingle(actual, planned, delaySeconds)

	if role == RoleArrival {
		return TimePair{Arrival: status}
	}

	return TimePair{Departure: status}
}

// ParseTimePair parses arrival and departure of one record independently
func ParseTimePair(
	arrival *time.Time, plannedArrival *time.Time, arrivalDelay *int,
	departure *time.Time, plannedDeparture *time.Time, departureDelay *int,
) TimePair {
	return TimePair{
		Arrival:   ParseSingle(arrival, plannedArrival, arrivalDelay),
		Departure: ParseSingle(departure, plannedDeparture, departureDelay),
	}
}

// MinutesBetween returns b - a in minutes. Absence of either input is propagated as nil,
// never coerced to zero.
func MinutesBetween(a *time.Time, b *time.Time) *float64 {
	if a == nil || b == nil {
		return nil
	}

	minutes := b.Sub(*a).Minutes()
	return &minutes
}

func statusTime(status *TimeStatus) *time.Time {
	if status == nil {
		return nil
	}

	return &status.Time
}

func firstTime(times ...*time.Time) *time.Time {
	for _, t := range times {
		if t != nil {
			return t
		}
	}

	return nil
}
