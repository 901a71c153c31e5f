package reconcile

// Family is a group of record attributes that the source timestamps together.
type Family string

// Families is the declared list of timestamped attribute groups queried by an
// incremental run.
var Families = []Family{
	"jobCode",
	"department",
	"location",
	"name",
	"workPhone",
	"jobData",
}

// Field returns the source field holding the family's last update instant.
func (f Family) Field() string {
	return string(f) + "LastUpdated"
}
