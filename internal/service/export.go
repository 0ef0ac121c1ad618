package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/planner"
	"github.com/pkordes/tripweaver/internal/repo"
)

// ExportService flattens a trip's itinerary for download.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns the trip name and one ExportRow per slot, in day, period,
// slot order. Empty slots produce a row with empty attraction fields.
func (s *ExportService) Export(ctx context.Context, userID string, tripID uuid.UUID) (string, []domain.ExportRow, error) {
	if userID == "" {
		return "", nil, domain.ErrUnauthenticated
	}
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return "", nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	planner.Normalize(&trip.Schedule)

	rows := []domain.ExportRow{}
	for _, day := range trip.Schedule.Days {
		for _, p := range domain.Periods {
			for i, a := range *day.Slots(p) {
				row := domain.ExportRow{TripName: trip.Name, DayID: day.ID, Period: p, Slot: i}
				if a != nil {
					row.AttractionID = a.ID
					row.AttractionName = a.Name
					row.Category = a.Category
					row.Location = a.Location
					row.Hours = a.Hours
				}
				rows = append(rows, row)
			}
		}
	}
	return trip.Name, rows, nil
}
