// Package handler: export.go implements GET /trips/{tripID}/export.
// Returns the itinerary as a flat table, one row per slot.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkordes/tripweaver/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_name", "day", "period", "slot",
	"attraction_id", "attraction_name", "category", "location", "hours",
}

// ExportRow is the JSON shape of one exported slot.
type ExportRow struct {
	TripName       string `json:"trip_name"`
	Day            int    `json:"day"`
	Period         string `json:"period"`
	Slot           int    `json:"slot"`
	AttractionID   string `json:"attraction_id,omitempty"`
	AttractionName string `json:"attraction_name,omitempty"`
	Category       string `json:"category,omitempty"`
	Location       string `json:"location,omitempty"`
	Hours          string `json:"hours,omitempty"`
}

// GetExport handles GET /trips/{tripID}/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}
	var format *string
	if err := queryParam(r, "format", &format); err != nil {
		requestError(w, err.Error())
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		requestError(w, "format must be csv or json")
		return
	}

	name, rows, err := s.export.Export(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	if format != nil && *format == "csv" {
		writeCSV(w, name, rows)
		return
	}
	out := make([]ExportRow, len(rows))
	for i, row := range rows {
		out[i] = domainRowToResponse(row)
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as an attachment named after the trip.
func writeCSV(w http.ResponseWriter, tripName string, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer never fails a write; errors surface through cw.Error.
	_ = cw.Write(csvHeaders)
	for _, r := range rows {
		_ = cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename(tripName)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func domainRowToResponse(r domain.ExportRow) ExportRow {
	return ExportRow{
		TripName:       r.TripName,
		Day:            r.DayID,
		Period:         string(r.Period),
		Slot:           r.Slot,
		AttractionID:   r.AttractionID,
		AttractionName: r.AttractionName,
		Category:       r.Category,
		Location:       r.Location,
		Hours:          r.Hours,
	}
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Empty slots keep their position columns and leave the rest blank.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripName,
		strconv.Itoa(r.DayID),
		string(r.Period),
		strconv.Itoa(r.Slot),
		r.AttractionID,
		r.AttractionName,
		r.Category,
		r.Location,
		r.Hours,
	}
}

// exportFilename turns a trip name into a safe file name, e.g.
// "LA Weekend!" → "la-weekend.csv".
func exportFilename(name string) string {
	var b strings.Builder
	dash := false
	for _, c := range strings.ToLower(name) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "itinerary"
	}
	return slug + ".csv"
}
