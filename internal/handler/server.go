// Package handler implements the HTTP handlers for the TripWeaver API.
// All handlers are methods on Server. Routes wires them into a chi router;
// methods are split into domain-specific files (catalog.go, trip.go, etc.).
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/service"
)

// CatalogServicer defines the attraction lookups the catalog handlers need.
// Interfaces live here, in the consumer package, so handler tests can inject
// mocks without a database or the places API.
type CatalogServicer interface {
	Search(ctx context.Context, q service.CatalogQuery) ([]domain.Attraction, error)
	Get(ctx context.Context, id string) (domain.Attraction, error)
	Categories() []string
}

// WishlistServicer defines the wishlist operations.
type WishlistServicer interface {
	SaveAttraction(ctx context.Context, userID, folderName string, a domain.Attraction) (domain.SavedAttraction, error)
	ListFolders(ctx context.Context, userID string) ([]domain.Folder, error)
	FolderNames(ctx context.Context, userID string) ([]string, error)
	CreateFolder(ctx context.Context, userID, folderName string) (domain.FolderPlaceholder, error)
	FolderAttractions(ctx context.Context, userID, folderName string) ([]domain.Attraction, error)
	RemoveAttraction(ctx context.Context, userID, folderName, attractionID string) error
	DeleteFolder(ctx context.Context, userID, folderName string) error
	IsAttractionSaved(ctx context.Context, userID, attractionID string) (bool, error)
}

// TripServicer defines trip lifecycle and itinerary grid operations.
type TripServicer interface {
	Create(ctx context.Context, userID, ownerEmail string, trip domain.Trip, days int) (domain.Trip, error)
	GetByID(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID string, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	AddDay(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, domain.Day, error)
	RemoveDay(ctx context.Context, userID string, id uuid.UUID, dayID int) (domain.Trip, error)
	AddSlot(ctx context.Context, userID string, id uuid.UUID, dayID int, p domain.Period) (domain.Trip, error)
	RemoveSlot(ctx context.Context, userID string, id uuid.UUID, t domain.SlotTarget) (domain.Trip, error)
	Place(ctx context.Context, userID string, id uuid.UUID, t domain.SlotTarget, a domain.Attraction) (domain.Trip, error)
}

// DragServicer defines the two-phase pick-up/drop interaction.
type DragServicer interface {
	PickUp(ctx context.Context, userID string, tripID uuid.UUID, a domain.Attraction) (service.DragStatus, error)
	Status(ctx context.Context, userID string, tripID uuid.UUID) (service.DragStatus, error)
	Drop(ctx context.Context, userID string, tripID uuid.UUID, t domain.SlotTarget) (service.DragResult, error)
	Cancel(ctx context.Context, userID string, tripID uuid.UUID) error
}

// CollaboratorServicer defines trip sharing.
type CollaboratorServicer interface {
	List(ctx context.Context, userID string, tripID uuid.UUID) ([]domain.Collaborator, error)
	Invite(ctx context.Context, userID string, tripID uuid.UUID, email string, role domain.Role) (domain.Collaborator, error)
	UpdateRole(ctx context.Context, userID string, tripID uuid.UUID, email string, role domain.Role) (domain.Collaborator, error)
	Remove(ctx context.Context, userID string, tripID uuid.UUID, email string) error
}

// ExportServicer flattens a trip's schedule for download.
type ExportServicer interface {
	Export(ctx context.Context, userID string, tripID uuid.UUID) (string, []domain.ExportRow, error)
}

// Services groups the Server's dependencies. Nil fields are allowed in tests
// that only exercise other routes.
type Services struct {
	Catalog       CatalogServicer
	Wishlist      WishlistServicer
	Trips         TripServicer
	Drag          DragServicer
	Collaborators CollaboratorServicer
	Export        ExportServicer
}

// Server holds the services behind every endpoint.
type Server struct {
	catalog       CatalogServicer
	wishlist      WishlistServicer
	trips         TripServicer
	drag          DragServicer
	collaborators CollaboratorServicer
	export        ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(s Services) *Server {
	return &Server{
		catalog:       s.Catalog,
		wishlist:      s.Wishlist,
		trips:         s.Trips,
		drag:          s.Drag,
		collaborators: s.Collaborators,
		export:        s.Export,
	}
}

// Routes returns a chi router with every endpoint registered. Middleware is
// applied by the caller; the routes only need middleware.UserFrom to work.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/attractions", s.ListAttractions)
	r.Get("/attractions/{attractionID}", s.GetAttraction)
	r.Get("/categories", s.ListCategories)

	r.Get("/wishlists", s.ListWishlists)
	r.Get("/saved/{attractionID}", s.GetSaved)
	r.Route("/folders", func(r chi.Router) {
		r.Get("/", s.ListFolderNames)
		r.Post("/", s.CreateFolder)
		r.Delete("/{folder}", s.DeleteFolder)
		r.Get("/{folder}/attractions", s.ListFolderAttractions)
		r.Post("/{folder}/attractions", s.SaveAttraction)
		r.Delete("/{folder}/attractions/{attractionID}", s.RemoveAttraction)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Delete("/", s.DeleteTrip)

			r.Post("/days", s.AddDay)
			r.Delete("/days/{dayID}", s.RemoveDay)
			r.Post("/days/{dayID}/{period}/slots", s.AddSlot)
			r.Put("/days/{dayID}/{period}/slots/{index}", s.PlaceAttraction)
			r.Delete("/days/{dayID}/{period}/slots/{index}", s.RemoveSlot)

			r.Get("/drag", s.GetDrag)
			r.Post("/drag", s.PickUp)
			r.Delete("/drag", s.CancelDrag)
			r.Post("/drag/drop", s.Drop)

			r.Get("/collaborators", s.ListCollaborators)
			r.Post("/collaborators", s.InviteCollaborator)
			r.Put("/collaborators/{email}", s.UpdateCollaborator)
			r.Delete("/collaborators/{email}", s.RemoveCollaborator)

			r.Get("/export", s.GetExport)
		})
	})

	return r
}
