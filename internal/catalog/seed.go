package catalog

import "github.com/pkordes/tripweaver/internal/domain"

// Seed is the built-in Los Angeles catalog served when no live source is
// configured or no city is requested.
var Seed = []domain.Attraction{
	{
		ID:          "hollywood-walk-of-fame",
		Name:        "Hollywood Walk of Fame",
		Category:    "Landmark",
		Location:    "Los Angeles, CA",
		Coordinates: domain.Coordinates{Lat: 34.1019, Lng: -118.3269},
		Rating:      4,
		Price:       domain.PriceFree,
		Description: "The Hollywood Walk of Fame features more than 2,700 brass stars embedded along Hollywood Boulevard and Vine Street, honoring notable figures in entertainment.",
		Image:       "/img/hollywood.png",
		Features:    []string{"Family-friendly", "Open 24h", "Nearby transit"},
		Hours:       "Open 24 hours",
	},
	{
		ID:          "griffith-observatory",
		Name:        "Griffith Observatory",
		Category:    "Science",
		Location:    "Los Angeles, CA",
		Coordinates: domain.Coordinates{Lat: 34.1184, Lng: -118.3004},
		Rating:      5,
		Price:       domain.PriceFree,
		Description: "Public observatory & planetarium with iconic city views.",
		Image:       "/img/griffith.png",
		Features:    []string{"Scenic views", "Educational", "Parking available"},
		Hours:       "Tuesday-Friday 12:00-22:00, Saturday-Sunday 10:00-22:00",
	},
	{
		ID:          "getty-center",
		Name:        "The Getty Center",
		Category:    "Museum",
		Location:    "Los Angeles, CA",
		Coordinates: domain.Coordinates{Lat: 34.0780, Lng: -118.4741},
		Rating:      5,
		Price:       domain.PriceFree,
		Description: "Art museum known for its architecture, gardens, and city views.",
		Image:       "/img/getty.png",
		Features:    []string{"Art collection", "Gardens", "Restaurant"},
		Hours:       "Tuesday-Friday, Sunday 10:00-17:30, Saturday 10:00-21:00",
	},
	{
		ID:          "santa-monica-pier",
		Name:        "Santa Monica Pier",
		Category:    "Landmark",
		Location:    "Santa Monica, CA",
		Coordinates: domain.Coordinates{Lat: 34.0094, Lng: -118.4973},
		Rating:      4,
		Price:       domain.PriceFree,
		Description: "Historic pier with amusement park, aquarium, and restaurants.",
		Image:       "/img/hollywood.png",
		Features:    []string{"Family-friendly", "Beach access", "Dining"},
		Hours:       "Open 24 hours",
	},
	{
		ID:          "universal-studios",
		Name:        "Universal Studios Hollywood",
		Category:    "Theme Park",
		Location:    "Universal City, CA",
		Coordinates: domain.Coordinates{Lat: 34.1381, Lng: -118.3534},
		Rating:      5,
		Price:       domain.PricePaid,
		Description: "Film studio and theme park with movie-themed rides and attractions.",
		Image:       "/img/griffith.png",
		Features:    []string{"Theme park", "Studio tour", "Dining"},
		Hours:       "Daily 9:00-18:00 (varies by season)",
	},
	{
		ID:          "la-county-museum",
		Name:        "Los Angeles County Museum of Art",
		Category:    "Museum",
		Location:    "Los Angeles, CA",
		Coordinates: domain.Coordinates{Lat: 34.0639, Lng: -118.3592},
		Rating:      4,
		Price:       domain.PricePaid,
		Description: "Largest art museum in the western United States.",
		Image:       "/img/getty.png",
		Features:    []string{"Art collection", "Exhibitions", "Gift shop"},
		Hours:       "Monday, Tuesday, Thursday 11:00-17:00, Friday 11:00-20:00, Saturday-Sunday 10:00-19:00",
	},
}
