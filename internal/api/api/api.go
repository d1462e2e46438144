package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"eventattend/cmd/middleware"
	"eventattend/internal/service"
)

type Routers struct {
	Service service.Service
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())

	apiGroup := app.Group("/v1")

	apiGroup.GET("/employees", r.Service.GetAllEmployees)
	apiGroup.POST("/employees", r.Service.CreateEmployee)
	apiGroup.GET("/employees/:id", r.Service.GetEmployee)
	apiGroup.PUT("/employees/:id", r.Service.UpdateEmployee)
	apiGroup.DELETE("/employees/:id", r.Service.DeleteEmployee)

	apiGroup.GET("/events", r.Service.GetAllEvents)
	apiGroup.POST("/events", r.Service.CreateEvent)
	apiGroup.GET("/events/:id", r.Service.GetEvent)
	apiGroup.PUT("/events/:id", r.Service.UpdateEvent)
	apiGroup.DELETE("/events/:id", r.Service.DeleteEvent)
	apiGroup.GET("/events/:id/employee-options", r.Service.GetEmployeeOptionsForEvent)

	apiGroup.GET("/attendances", r.Service.GetAllAttendances)
	apiGroup.POST("/attendances", r.Service.CreateAttendance)
	apiGroup.GET("/attendances/:id", r.Service.GetAttendance)
	apiGroup.DELETE("/attendances/:id", r.Service.DeleteAttendance)

	apiGroup.GET("/reports/most-social-employees", r.Service.GetMostSocialEmployees)
	apiGroup.GET("/reports/events-without-employees", r.Service.GetEventsWithNoEmployees)

	app.GET("/healthz", func(c *ginext.Context) {
		c.JSON(200, map[string]string{"status": "ok"})
	})

	return app
}
