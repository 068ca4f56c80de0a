package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns middleware with the API's open origin policy. The service
// serves read-only aggregates, so any dashboard origin may call it.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler
}
