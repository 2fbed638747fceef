package view

import "github.com/skycast/skycast/internal/domain"

// Phase is the lifecycle stage of the current lookup.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

// LookupKind distinguishes the two request paths; the failure message shown
// to the user depends on it, not on the underlying error.
type LookupKind int

const (
	LookupCoordinates LookupKind = iota
	LookupCity
)

// Fixed failure messages. Clients match on these strings; do not reword them.
const (
	ErrTextFetch = "Failed to fetch weather data. Please try again."
	ErrTextCity  = "City not found. Please check the spelling and try again."
)

// Fallback coordinates (San Francisco) used when no location is supplied.
const (
	DefaultLatitude  = 37.7749
	DefaultLongitude = -122.4194
)

// State is an immutable snapshot of the presenter. Transition methods return
// a new value; callers keep only the latest one.
type State struct {
	Phase      Phase
	Generation uint64
	Unit       Unit
	Report     *domain.WeatherReport
	Message    string
	Notice     string
}

// NewState returns the initial idle state with Fahrenheit display.
func NewState() State {
	return State{Phase: PhaseIdle, Unit: UnitFahrenheit}
}

// StartLookup begins a new request generation. The previous report is kept so
// stale data can stay on screen while the refresh is in flight.
func (s State) StartLookup() State {
	s.Generation++
	s.Phase = PhaseLoading
	s.Message = ""
	return s
}

// Resolve applies a successful report. Results from superseded generations
// are dropped unchanged.
func (s State) Resolve(generation uint64, report *domain.WeatherReport) State {
	if generation != s.Generation || s.Phase != PhaseLoading {
		return s
	}
	s.Phase = PhaseSuccess
	s.Report = report
	s.Message = ""
	return s
}

// Fail marks the in-flight lookup as failed. Results from superseded
// generations are dropped unchanged.
func (s State) Fail(generation uint64, kind LookupKind) State {
	if generation != s.Generation || s.Phase != PhaseLoading {
		return s
	}
	s.Phase = PhaseError
	if kind == LookupCity {
		s.Message = ErrTextCity
	} else {
		s.Message = ErrTextFetch
	}
	return s
}

// ToggleUnit flips the display unit. Phase, generation and report are
// untouched; no new lookup is started.
func (s State) ToggleUnit() State {
	s.Unit = s.Unit.Toggle()
	return s
}

// WithNotice attaches an informational line, such as the default-location
// hint shown when no position is available.
func (s State) WithNotice(notice string) State {
	s.Notice = notice
	return s
}
