// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (account.go, trip.go, etc.) but share the same Server struct so they
// can reach its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/auth"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/internal/service"
)

// The servicer interfaces below are declared here, in the consumer package,
// so handler tests can inject mocks without a database or service layer.

// AccountServicer defines the account operations the handlers depend on.
type AccountServicer interface {
	Signup(ctx context.Context, in service.SignupInput) (domain.User, error)
	Authenticate(ctx context.Context, identifier, password string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// TripServicer defines the trip aggregate operations the handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, in service.CreateTripInput) (domain.Trip, error)
	List(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	Get(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error)
	Delete(ctx context.Context, ownerID, tripID uuid.UUID) error
}

// ItineraryServicer defines the itinerary operations the handlers depend on.
type ItineraryServicer interface {
	List(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.ItineraryDay, error)
	AddActivity(ctx context.Context, ownerID uuid.UUID, in service.AddActivityInput) (domain.Activity, error)
	RemoveActivity(ctx context.Context, ownerID, tripID, dayID, activityID uuid.UUID) error
}

// ExpenseServicer defines the expense ledger operations the handlers depend on.
type ExpenseServicer interface {
	Add(ctx context.Context, ownerID uuid.UUID, in service.AddExpenseInput) (domain.Expense, error)
	Remove(ctx context.Context, ownerID, tripID, expenseID uuid.UUID) error
	List(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.Expense, error)
	Export(ctx context.Context, ownerID, tripID uuid.UUID) (service.Ledger, error)
}

// SessionIssuer issues and verifies session tokens and owns the cookie policy.
// auth.SessionManager satisfies it.
type SessionIssuer interface {
	middleware.TokenVerifier
	Issue(userID uuid.UUID, username string) (string, error)
	SetCookie(w http.ResponseWriter, token string)
	ClearCookie(w http.ResponseWriter)
}

// Pinger reports database reachability. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries everything NewServer needs. Logger defaults to slog.Default()
// and LandingURL to "/".
type Deps struct {
	Accounts   AccountServicer
	Trips      TripServicer
	Itinerary  ItineraryServicer
	Expenses   ExpenseServicer
	Sessions   SessionIssuer
	DB         Pinger
	Logger     *slog.Logger
	LandingURL string
}

// Server implements every API endpoint.
type Server struct {
	accounts   AccountServicer
	trips      TripServicer
	itinerary  ItineraryServicer
	expenses   ExpenseServicer
	sessions   SessionIssuer
	db         Pinger
	log        *slog.Logger
	landingURL string
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	s := &Server{
		accounts:   d.Accounts,
		trips:      d.Trips,
		itinerary:  d.Itinerary,
		expenses:   d.Expenses,
		sessions:   d.Sessions,
		db:         d.DB,
		log:        d.Logger,
		landingURL: d.LandingURL,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.landingURL == "" {
		s.landingURL = "/"
	}
	return s
}

// Routes returns the API router. Cross-cutting middleware (request ids,
// logging, CORS, body limits) is applied by the caller around it.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "not_found", Message: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "method_not_allowed", Message: "method not allowed"})
	})

	// Public routes.
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Post("/signup", s.Signup)
	r.Post("/login", s.Login)
	r.Get("/logout", s.Logout)

	// Everything else requires a session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(s.sessions))

		r.Get("/me", s.GetMe)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)
			r.Get("/{id}", s.GetTrip)
			r.Delete("/{id}", s.DeleteTrip)
			r.Get("/{id}/export", s.ExportTrip)
		})

		r.Get("/itinerary", s.GetItinerary)
		r.Post("/itinerary", s.AddActivity)
		r.Delete("/itinerary", s.RemoveActivity)

		r.Get("/expenses", s.ListExpenses)
		r.Post("/expenses", s.AddExpense)
		r.Delete("/expenses", s.RemoveExpense)
	})

	return r
}

// caller returns the authenticated user id. RequireSession guarantees it is
// present on every protected route.
func caller(r *http.Request) uuid.UUID {
	id, _ := auth.IdentityFromContext(r.Context())
	return id.UserID
}
