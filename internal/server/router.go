package server

import (
	"net/http"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/routes"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/deps"
)

type Server struct {
	deps.ServerDeps
	allowedOrigins []string
}

func New(sd deps.ServerDeps, allowedOrigins []string) *Server {
	return &Server{ServerDeps: sd, allowedOrigins: allowedOrigins}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	sd := s.ServerDeps

	// Endpoints declared here for easy scanning
	mux.HandleFunc("GET /health", routes.Health(sd))

	mux.HandleFunc("GET /search", routes.Search(sd))
	mux.HandleFunc("GET /search/multi", routes.SearchMulti(sd))
	mux.HandleFunc("GET /trending", routes.Trending(sd))
	mux.HandleFunc("GET /discover", routes.Discover(sd))
	mux.HandleFunc("GET /genres", routes.Genres(sd))
	mux.HandleFunc("GET /keywords/search", routes.KeywordSearch(sd))
	mux.HandleFunc("POST /keywords/discover", routes.KeywordDiscover(sd))
	mux.HandleFunc("GET /collections/search", routes.CollectionSearch(sd))
	mux.HandleFunc("GET /collections/{id}", routes.CollectionDetails(sd))
	mux.HandleFunc("GET /media/{kind}/{id}", routes.MediaDetails(sd))
	mux.HandleFunc("GET /media/{kind}/{id}/videos", routes.MediaVideos(sd))
	mux.HandleFunc("GET /media/{kind}/{id}/similar", routes.MediaSimilar(sd))

	mux.HandleFunc("POST /auth/signup", routes.SignUp(sd))
	mux.HandleFunc("POST /auth/signin", routes.SignIn(sd))
	mux.HandleFunc("POST /auth/verify", routes.VerifyEmail(sd))
	mux.HandleFunc("DELETE /auth/account", routes.DeleteAccount(sd))

	mux.Handle("GET /bookmarks", s.requireAuth(routes.Bookmarks(sd)))
	mux.Handle("POST /bookmarks/toggle", s.requireAuth(routes.BookmarkToggle(sd)))
	mux.Handle("GET /profile", s.requireAuth(routes.Profile(sd)))
	mux.Handle("POST /profile/theme", s.requireAuth(routes.ThemeToggle(sd)))

	h := withCORS(s.allowedOrigins)(withSecurityHeaders(mux))
	return withCorrelationID(withLogging(h))
}
