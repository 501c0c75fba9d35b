package registry

// Status is the phase of an author lookup.
type Status int

const (
	// StatusIdle means no lookup has been requested yet.
	StatusIdle Status = iota
	StatusPending
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is the lookup result bound to one package identifier.
//
// A Ready state with a nil Record is the "no data" outcome: the registry
// answered with a non-success status.
type State struct {
	Status Status
	ID     string
	Record *Record
	Err    error
}

// AuthorName returns the resolved author, or "" while loading, on failure,
// or when the registry had no author.
func (s State) AuthorName() string {
	if s.Status != StatusReady {
		return ""
	}
	return s.Record.AuthorName()
}

// IsLoading reports whether a fetch for ID is in flight.
func (s State) IsLoading() bool { return s.Status == StatusPending }

// Result is the consumer-facing view of a [State].
type Result struct {
	Package    string `json:"package"`
	AuthorName string `json:"authorName"`
	IsLoading  bool   `json:"isLoading"`
	Error      string `json:"error,omitempty"`
}

// Result flattens s for display or JSON output.
func (s State) Result() Result {
	r := Result{
		Package:    s.ID,
		AuthorName: s.AuthorName(),
		IsLoading:  s.IsLoading(),
	}
	if s.Status == StatusFailed && s.Err != nil {
		r.Error = s.Err.Error()
	}
	return r
}
