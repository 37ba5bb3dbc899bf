package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/pocketbook/internal/http/ledger"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/member"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/private"
)

func New(
	corsOrigins []string,
	membersV1 *member.Handler,
	familyV1 *ledger.Handler,
	privateV1 *ledger.Handler,
	gateV1 *private.Handler,
	tokens *private.Tokens,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/members", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			membersV1.Routes(r)
		})

		r.Route("/family", familyV1.Routes)

		r.Route("/private", func(r chi.Router) {
			gateV1.Routes(r)

			r.Group(func(r chi.Router) {
				r.Use(tokens.Middleware)
				privateV1.Routes(r)
			})
		})
	})

	return router
}
