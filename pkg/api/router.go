package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"newsletter-admin-go/pkg/api/handlers"
	"newsletter-admin-go/pkg/api/middleware"
	"newsletter-admin-go/pkg/services"
)

// AdminBasePath prefixes every admin API route.
const AdminBasePath = "/ghost/api/admin"

// Services bundles what the handlers call into.
type Services struct {
	Members  *services.MemberService
	Links    *services.LinkService
	Posts    *services.PostService
	Webhooks *services.WebhookService
	Users    *services.UserService
}

// NewRouter builds the HTTP handler. gatherer backs /metrics; nil uses the
// default prometheus registry.
func NewRouter(svc Services, logger *zap.Logger, gatherer prometheus.Gatherer) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(middleware.AccessLog(logger))
	router.Use(middleware.Recovery(logger))

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	admin := router.Group(AdminBasePath)
	{
		admin.POST("/users", handlers.CreateUser(svc.Users))

		authed := admin.Group("")
		authed.Use(middleware.RequireAuth(svc.Users))
		{
			authed.GET("/users/me", handlers.GetCurrentUser)

			authed.GET("/members", handlers.ListMembers(svc.Members))
			authed.POST("/members", handlers.CreateMember(svc.Members))
			authed.GET("/members/:id", handlers.GetMember(svc.Members))
			authed.DELETE("/members/:id", handlers.DeleteMember(svc.Members))

			authed.GET("/newsletters", handlers.ListNewsletters(svc.Posts))

			authed.GET("/posts", handlers.ListPosts(svc.Posts))
			authed.GET("/posts/:id/links", handlers.ListPostLinks(svc.Links))
			authed.PUT("/posts/:id/links/:link_id", handlers.UpdatePostLink(svc.Links))

			authed.GET("/webhooks", handlers.ListWebhooks(svc.Webhooks))
			authed.POST("/webhooks", handlers.CreateWebhook(svc.Webhooks))
			authed.DELETE("/webhooks/:id", handlers.DeleteWebhook(svc.Webhooks))
		}
	}

	return router
}
