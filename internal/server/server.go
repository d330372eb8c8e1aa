package server

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/anylist/internal/database"
	"github.com/mdouchement/anylist/internal/model"
	"github.com/mdouchement/anylist/internal/server/middlewares"
	"github.com/mdouchement/anylist/internal/server/service"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version        string
	Database       database.Client
	NoRegistration bool
	// JWT params
	SigningKey          []byte
	TokenExpirationTime time.Duration
}

const defaultPageSize = 10

// EchoEngine instantiates the web server.
func EchoEngine(ctrl Controller) *echo.Echo {
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
	restricted := router.Group("")
	restricted.Use(echojwt.JWT(ctrl.SigningKey))
	restricted.Use(middlewares.CurrentUser(ctrl.Database))

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// auth handlers
	//
	auth := &auth{
		users:           service.NewUser(ctrl.Database),
		db:              ctrl.Database,
		signingKey:      ctrl.SigningKey,
		tokenExpiration: ctrl.TokenExpirationTime,
	}
	if !ctrl.NoRegistration {
		router.POST("/signup", auth.Register)
	}
	router.POST("/login", auth.Login)
	restricted.GET("/revalidate", auth.Revalidate)

	//
	// user handlers
	//
	user := &user{
		users:     service.NewUser(ctrl.Database),
		relations: service.NewRelation(ctrl.Database),
	}
	restricted.GET("/users", user.FindAll)
	restricted.GET("/users/:id", user.FindOne)
	restricted.PATCH("/users/:id", user.Update)
	restricted.POST("/users/:id/block", user.Block)
	// derived fields, resolved on demand
	restricted.GET("/users/:id/items", user.Items)
	restricted.GET("/users/:id/items/count", user.ItemCount)
	restricted.GET("/users/:id/lists", user.Lists)
	restricted.GET("/users/:id/lists/count", user.ListCount)
	restricted.GET("/users/:id/last-updated-by", user.LastUpdatedBy)

	//
	// item handlers
	//
	item := &item{
		items: service.NewItem(ctrl.Database),
	}
	restricted.POST("/items", item.Create)
	restricted.GET("/items", item.FindAll)
	restricted.GET("/items/:id", item.FindOne)
	restricted.PATCH("/items/:id", item.Update)
	restricted.DELETE("/items/:id", item.Delete)

	//
	// list handlers
	//
	list := &list{
		lists: service.NewList(ctrl.Database),
	}
	restricted.POST("/lists", list.Create)
	restricted.GET("/lists", list.FindAll)
	restricted.GET("/lists/:id", list.FindOne)
	restricted.PATCH("/lists/:id", list.Update)
	restricted.DELETE("/lists/:id", list.Delete)

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
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

// filterFromQuery parses the pagination/search window from URL queries.
func filterFromQuery(c echo.Context) (database.Filter, error) {
	f := database.Filter{
		Limit:  defaultPageSize,
		Search: c.QueryParam("search"),
	}

	var err error
	if v := c.QueryParam("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil {
			return f, fmt.Errorf("invalid limit parameter")
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if f.Offset, err = strconv.Atoi(v); err != nil {
			return f, fmt.Errorf("invalid offset parameter")
		}
	}

	return f, f.Validate()
}
