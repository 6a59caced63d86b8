package schema

// CatalogLoanEventTable represents the 'catalog.loanevent' table
type CatalogLoanEventTable struct {
	Table      string
	ID         string
	InstanceID string
	EventType  string
	ActorID    string
	Payload    string
	OccurredAt string
}

// CatalogLoanEvent is the schema definition for catalog.loanevent
var CatalogLoanEvent = CatalogLoanEventTable{
	Table:      "catalog.loanevent",
	ID:         "id",
	InstanceID: "instanceid",
	EventType:  "eventtype",
	ActorID:    "actorid",
	Payload:    "payload",
	OccurredAt: "occurredat",
}

func (t CatalogLoanEventTable) Columns() []string {
	return []string{t.ID, t.InstanceID, t.EventType, t.ActorID, t.Payload, t.OccurredAt}
}
