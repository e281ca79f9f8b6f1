package routes

import (
	"net/http"

	"github.com/scmc/club-backend/internal/api/handlers"
	"github.com/scmc/club-backend/internal/api/middleware"
	"github.com/scmc/club-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	userHandler         *handlers.UserHandler
	bookingHandler      *handlers.BookingHandler
	couponHandler       *handlers.CouponHandler
	paymentHandler      *handlers.PaymentHandler
	memberHandler       *handlers.MemberHandler
	courtHandler        *handlers.CourtHandler
	announcementHandler *handlers.AnnouncementHandler
	reviewHandler       *handlers.ReviewHandler
	statsHandler        *handlers.StatsHandler
	sseHandler          *handlers.SSEHandler

	auth            *middleware.AuthMiddleware
	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	userHandler *handlers.UserHandler,
	bookingHandler *handlers.BookingHandler,
	couponHandler *handlers.CouponHandler,
	paymentHandler *handlers.PaymentHandler,
	memberHandler *handlers.MemberHandler,
	courtHandler *handlers.CourtHandler,
	announcementHandler *handlers.AnnouncementHandler,
	reviewHandler *handlers.ReviewHandler,
	statsHandler *handlers.StatsHandler,
	sseHandler *handlers.SSEHandler,
	auth *middleware.AuthMiddleware,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		userHandler:         userHandler,
		bookingHandler:      bookingHandler,
		couponHandler:       couponHandler,
		paymentHandler:      paymentHandler,
		memberHandler:       memberHandler,
		courtHandler:        courtHandler,
		announcementHandler: announcementHandler,
		reviewHandler:       reviewHandler,
		statsHandler:        statsHandler,
		sseHandler:          sseHandler,
		auth:                auth,
		cacheMiddleware:     cacheMiddleware,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// User endpoints
	r.mux.HandleFunc("POST /api/users", r.userHandler.Register)
	r.mux.HandleFunc("GET /api/users/{email}/role", r.userHandler.GetRole)
	r.mux.HandleFunc("GET /api/admin/users", r.auth.RequireAdmin(r.userHandler.ListUsers))

	// Booking endpoints
	r.mux.HandleFunc("POST /api/bookings", r.auth.Authenticated(r.bookingHandler.CreateBooking))
	r.mux.HandleFunc("GET /api/bookings", r.auth.Authenticated(r.bookingHandler.ListMyBookings))
	r.mux.HandleFunc("GET /api/bookings/{id}", r.auth.Authenticated(r.bookingHandler.GetBooking))
	r.mux.HandleFunc("GET /api/bookings/confirmed", r.auth.Authenticated(r.bookingHandler.ListConfirmedBookings))
	r.mux.HandleFunc("GET /api/bookings/confirmed/{email}", r.auth.RequireMember(r.bookingHandler.ListOwnerConfirmedBookings))
	r.mux.HandleFunc("GET /api/admin/bookings", r.auth.RequireAdmin(r.bookingHandler.ListPendingBookings))
	r.mux.HandleFunc("PATCH /api/admin/bookings/{id}/approve", r.auth.RequireAdmin(r.bookingHandler.ApproveBooking))
	r.mux.HandleFunc("DELETE /api/admin/bookings/{id}", r.auth.RequireAdmin(r.bookingHandler.DeleteBooking))
	r.mux.HandleFunc("GET /api/admin/bookings/stream", r.auth.RequireAdmin(r.sseHandler.StreamBookingUpdates))

	// Coupon endpoints
	r.mux.HandleFunc("POST /api/coupons/validate", r.couponHandler.ValidateCoupon)
	r.mux.HandleFunc("POST /api/admin/coupons", r.auth.RequireAdmin(r.couponHandler.CreateCoupon))
	r.mux.HandleFunc("GET /api/admin/coupons", r.auth.RequireAdmin(r.couponHandler.ListCoupons))
	r.mux.HandleFunc("PATCH /api/admin/coupons/{id}", r.auth.RequireAdmin(r.couponHandler.UpdateCoupon))
	r.mux.HandleFunc("DELETE /api/admin/coupons/{id}", r.auth.RequireAdmin(r.couponHandler.DeleteCoupon))

	// Payment endpoints
	r.mux.HandleFunc("POST /api/payments/intent", r.auth.Authenticated(r.paymentHandler.CreateIntent))
	r.mux.HandleFunc("POST /api/payments", r.auth.Authenticated(r.paymentHandler.RecordPayment))
	r.mux.HandleFunc("GET /api/payments", r.auth.Authenticated(r.paymentHandler.PaymentHistory))

	// Member endpoints
	r.mux.HandleFunc("GET /api/members/membership-date", r.auth.Authenticated(r.memberHandler.GetMembershipDate))
	r.mux.HandleFunc("GET /api/admin/members", r.auth.RequireAdmin(r.memberHandler.ListMembers))
	r.mux.HandleFunc("DELETE /api/admin/members/{email}", r.auth.RequireAdmin(r.memberHandler.DeleteMember))

	// Court endpoints
	r.mux.HandleFunc("GET /api/courts", r.courtHandler.ListCourts)
	r.mux.HandleFunc("GET /api/courts/featured", r.courtHandler.ListFeaturedCourts)
	r.mux.HandleFunc("GET /api/courts/{id}", r.courtHandler.GetCourt)
	r.mux.HandleFunc("POST /api/admin/courts", r.auth.RequireAdmin(r.courtHandler.CreateCourt))
	r.mux.HandleFunc("PATCH /api/admin/courts/{id}", r.auth.RequireAdmin(r.courtHandler.UpdateCourt))
	r.mux.HandleFunc("DELETE /api/admin/courts/{id}", r.auth.RequireAdmin(r.courtHandler.DeleteCourt))

	// Announcement and event endpoints
	r.mux.HandleFunc("GET /api/announcements", r.announcementHandler.ListAnnouncements)
	r.mux.HandleFunc("POST /api/admin/announcements", r.auth.RequireAdmin(r.announcementHandler.CreateAnnouncement))
	r.mux.HandleFunc("PATCH /api/admin/announcements/{id}", r.auth.RequireAdmin(r.announcementHandler.UpdateAnnouncement))
	r.mux.HandleFunc("DELETE /api/admin/announcements/{id}", r.auth.RequireAdmin(r.announcementHandler.DeleteAnnouncement))
	r.mux.HandleFunc("GET /api/events", r.announcementHandler.ListEvents)
	r.mux.HandleFunc("POST /api/admin/events", r.auth.RequireAdmin(r.announcementHandler.CreateEvent))
	r.mux.HandleFunc("PATCH /api/admin/events/{id}", r.auth.RequireAdmin(r.announcementHandler.UpdateEvent))

	// Review endpoints
	r.mux.HandleFunc("GET /api/reviews", r.reviewHandler.ListReviews)
	r.mux.HandleFunc("POST /api/reviews", r.auth.Authenticated(r.reviewHandler.CreateReview))

	// Admin dashboard
	r.mux.HandleFunc("GET /api/admin/stats", r.auth.RequireAdmin(r.statsHandler.GetStats))

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
