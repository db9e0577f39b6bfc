package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS returns a middleware restricting cross-origin requests to the given
// origins. Browsers talk to this API from a separate frontend origin, so the
// allowed set must cover the frontend's dev and deployed hosts.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})
	return c.Handler
}
