package v1

import (
	"hireflow/internal/delivery/http/handler"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Handlers is everything the v1 API mounts. Nil handlers are skipped.
type Handlers struct {
	Auth          *handler.AuthHandler
	Screening     *handler.ScreeningHandler
	Invitation    *handler.InvitationHandler
	FirstRound    *handler.FirstRoundHandler
	SecondRound   *handler.SecondRoundHandler
	Review        *handler.ReviewHandler
	Notification  *handler.NotificationHandler
	Board         *handler.BoardHandler
	Candidate     *handler.CandidateHandler
	Notifications *ws.Handler
}

func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	// Candidate-facing routes are addressed by candidate id and carry no token.
	if h.FirstRound != nil {
		h.FirstRound.RegisterRoutes(r)
	}
	if h.SecondRound != nil {
		h.SecondRound.RegisterRoutes(r.Group("/second-round"))
	}

	if authMw == nil {
		return
	}

	// Registered ahead of the protected group, whose middleware would reject
	// the query-string token.
	if h.Notifications != nil {
		r.Get("/ws/notifications",
			middleware.TokenFromQuery("access_token"),
			authMw.Middleware(),
			h.Notifications.HandleNotificationsWS,
		)
	}

	protected := r.Group("", authMw.Middleware())

	if h.Screening != nil {
		h.Screening.RegisterRoutes(protected.Group("/screenings"))
	}
	if h.Invitation != nil {
		h.Invitation.RegisterRoutes(protected.Group("/invitations"))
	}
	if h.FirstRound != nil {
		h.FirstRound.RegisterAdminRoutes(protected)
	}
	if h.Review != nil {
		h.Review.RegisterRoutes(protected.Group("/candidates"))
	}
	if h.Candidate != nil {
		h.Candidate.RegisterRoutes(protected.Group("/candidates"))
	}
	if h.Notification != nil {
		h.Notification.RegisterRoutes(protected.Group("/notifications"))
	}
	if h.Board != nil {
		h.Board.RegisterRoutes(protected)
	}
}
