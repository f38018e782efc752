package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lostandfound/lostandfound/internal/database"
	"github.com/lostandfound/lostandfound/internal/ledger"
	"github.com/lostandfound/lostandfound/internal/model"
	"github.com/lostandfound/lostandfound/internal/server/middlewares"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// A Controller is an Iversion Of Control pattern used to init the server package.
type Controller struct {
	Version  string
	Database database.Client
	Ledger   *ledger.Ledger
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl Controller) *echo.Echo {
	if ctrl.Ledger == nil {
		ctrl.Ledger = ledger.New(ctrl.Database, ledger.FoundItemAward)
	}

	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	router := engine.Group("")
	router.Use(middlewares.CurrentUser(ctrl.Database, false))
	restricted := engine.Group("")
	restricted.Use(middlewares.CurrentUser(ctrl.Database, true))

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})
	router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	//
	// user handlers
	//
	user := &user{
		db: ctrl.Database,
	}
	router.POST("/users", user.Register)
	router.GET("/users/:id", user.Show)
	router.GET("/leaderboard", user.Leaderboard)
	restricted.PUT("/users/:id/notification_token", user.UpdateNotificationToken)

	//
	// item handlers
	//
	item := &item{
		db:     ctrl.Database,
		ledger: ctrl.Ledger,
	}
	router.GET("/items", item.List)
	router.GET("/items/:id", item.Show)
	restricted.POST("/items", item.Report)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentUser(c echo.Context) *model.User {
	user, ok := c.Get(middlewares.CurrentUserContextKey).(*model.User)
	if ok {
		return user
	}
	return nil
}
