// Package domain contains the core data types for the TripWeaver API.
// It is imported by every other internal package (catalog, planner, repo,
// service, handler) and holds no I/O.
package domain

import (
	"slices"
	"time"
)

// Price is the admission class of an attraction.
type Price string

const (
	PriceFree Price = "Free"
	PricePaid Price = "Paid"
)

// Valid reports whether p is one of the known price classes.
// The empty string is accepted: live catalog records may carry no price.
func (p Price) Valid() bool {
	return p == "" || p == PriceFree || p == PricePaid
}

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Attraction is a browsable place. It is a value type: every holder (catalog,
// folder, itinerary slot, drag session) owns its own copy.
type Attraction struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Location    string      `json:"location"`
	Coordinates Coordinates `json:"coordinates"`
	Rating      int         `json:"rating"`
	Price       Price       `json:"price"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Features    []string    `json:"features"`
	Hours       string      `json:"hours"`
}

// Clone returns a deep copy so later edits to the source never propagate.
func (a Attraction) Clone() Attraction {
	a.Features = slices.Clone(a.Features)
	return a
}

// SavedAttraction is one persisted wishlist record.
// ID is the document key {userId}_{folderName}_{attractionId}.
type SavedAttraction struct {
	ID           string
	UserID       string
	FolderName   string
	AttractionID string
	Attraction   Attraction
	SavedAt      time.Time
	LastModified time.Time
}

// Folder is a named, user-owned collection of saved attractions.
// Name doubles as the key; folders have no surrogate id.
type Folder struct {
	Name         string
	Attractions  []Attraction
	Count        int
	LastModified time.Time
}

// FolderPlaceholder is the record that makes a folder exist before anything
// has been saved into it. ID is {userId}_folder_{folderName}.
type FolderPlaceholder struct {
	ID           string
	UserID       string
	FolderName   string
	CreatedAt    time.Time
	LastModified time.Time
}

// SavedAttractionKey builds the document key of a saved attraction.
func SavedAttractionKey(userID, folderName, attractionID string) string {
	return userID + "_" + folderName + "_" + attractionID
}

// FolderKey builds the document key of a folder placeholder.
func FolderKey(userID, folderName string) string {
	return userID + "_folder_" + folderName
}
