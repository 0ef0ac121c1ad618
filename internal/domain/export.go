package domain

// ExportRow is a single row in the itinerary export.
// It is a flat view: one row per slot, in day, period, slot order.
// Empty slots yield a row with an empty AttractionID.
type ExportRow struct {
	TripName string
	DayID    int
	Period   Period
	Slot     int

	// Attraction fields, zero values for an empty slot.
	AttractionID   string
	AttractionName string
	Category       string
	Location       string
	Hours          string
}
