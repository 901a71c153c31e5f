package reconcile

// ActionType is the kind of change applied to the local directory.
type ActionType string

const (
	// ActionJoin creates a local record for an id only the source knows.
	ActionJoin ActionType = "join"
	// ActionTerminate marks a record the source no longer knows at all.
	ActionTerminate ActionType = "terminate"
	// ActionLeave marks a record that still exists upstream but left the scope.
	ActionLeave ActionType = "leave"
	// ActionUpdate writes field-level changes to a matched record.
	ActionUpdate ActionType = "update"
)

// Summary provides aggregate counts for one reconciliation run.
type Summary struct {
	// External is the number of in-scope ids reported by the source.
	External int `json:"external"`

	// LocalActive is the number of local records that were neither terminated nor left.
	LocalActive int `json:"local_active"`

	// Joined counts records created locally.
	Joined int `json:"joined"`

	// Terminated counts records transitioned to the terminated status.
	Terminated int `json:"terminated"`

	// Left counts records transitioned to the left status.
	Left int `json:"left"`

	// Checked counts matched records that were field-diffed.
	Checked int `json:"checked"`

	// Updated counts matched records that were written.
	Updated int `json:"updated"`
}

// Record increments the counter for an applied action.
func (s *Summary) Record(action ActionType) {
	switch action {
	case ActionJoin:
		s.Joined++
	case ActionTerminate:
		s.Terminated++
	case ActionLeave:
		s.Left++
	case ActionUpdate:
		s.Updated++
	}
}

// Writes returns the number of persisted changes.
func (s Summary) Writes() int {
	return s.Joined + s.Terminated + s.Left + s.Updated
}
