package router // package router defines how HTTP routes are registered for the site

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
)

// Handlers bundles the resource handlers served by the site.
type Handlers struct {
	Venues  *handler.VenueHandler
	Artists *handler.ArtistHandler
	Shows   *handler.ShowHandler
}

// RegisterRoutes registers the health check and the home page.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and container health probes.
	e.GET("/healthz", handler.Health)
	e.GET("/", handler.Home)
}

// RegisterListings registers the venue, artist and show pages.  Edit
// submissions and deletes run behind the admin guard when adminSecret is
// set; browsing, searching and creating stay open.
func RegisterListings(e *echo.Echo, h Handlers, adminSecret string) {
	guard := middleware.AdminGuard(adminSecret)

	v := e.Group("/venues")
	v.GET("", h.Venues.List)
	v.POST("/search", h.Venues.Search)
	// "/create" is registered before "/:id" so the static segment wins.
	v.GET("/create", h.Venues.CreateForm)
	v.POST("/create", h.Venues.Create)
	v.GET("/:id", h.Venues.Show)
	v.GET("/:id/edit", h.Venues.EditForm)
	v.POST("/:id/edit", h.Venues.Edit, guard...)
	v.DELETE("/:id", h.Venues.Delete, guard...)

	a := e.Group("/artists")
	a.GET("", h.Artists.List)
	a.POST("/search", h.Artists.Search)
	a.GET("/create", h.Artists.CreateForm)
	a.POST("/create", h.Artists.Create)
	a.GET("/:id", h.Artists.Show)
	a.GET("/:id/edit", h.Artists.EditForm)
	a.POST("/:id/edit", h.Artists.Edit, guard...)
	a.DELETE("/:id", h.Artists.Delete, guard...)

	s := e.Group("/shows")
	s.GET("", h.Shows.List)
	s.GET("/create", h.Shows.CreateForm)
	s.POST("/create", h.Shows.Create)
}
