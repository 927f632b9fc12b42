// Package router assembles the gin engine: middleware chain, public routes,
// and the authenticated, tenant-scoped API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"expensehub/internal/auth"
	_ "expensehub/internal/docs" // Import swagger docs
	"expensehub/internal/handlers"
	"expensehub/internal/metrics"
	"expensehub/internal/middleware"
	"expensehub/internal/services"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	Users      services.UserServicer
	Tenants    services.TenantServicer
	Resolver   services.TenantResolver
	Categories services.CategoryServicer
	Groups     services.GroupServicer
	Expenses   services.ExpenseServicer
	Stats      services.StatsServicer
	Audit      services.AuditServicer

	Tokens      *auth.TokenManager
	Metrics     *metrics.Metrics
	CORSOrigins []string
}

// NewDeps wires the gorm-backed services around db.
func NewDeps(db *gorm.DB, tokens *auth.TokenManager, m *metrics.Metrics, corsOrigins []string) Deps {
	members := services.NewMembershipService(db)
	return Deps{
		Users:       services.NewUserService(db, members),
		Tenants:     services.NewTenantService(db, members),
		Resolver:    services.NewTenantResolver(db, members),
		Categories:  services.NewCategoryService(db),
		Groups:      services.NewGroupService(db),
		Expenses:    services.NewExpenseService(db),
		Stats:       services.NewStatsService(db),
		Audit:       services.NewAuditService(db),
		Tokens:      tokens,
		Metrics:     m,
		CORSOrigins: corsOrigins,
	}
}

// New builds the HTTP engine.
func New(d Deps) *gin.Engine {
	authHandler := handlers.NewAuthHandler(d.Users, d.Tokens, d.Audit)
	tenantHandler := handlers.NewTenantHandler(d.Tenants, d.Audit)
	categoryHandler := handlers.NewCategoryHandler(d.Categories, d.Audit)
	groupHandler := handlers.NewGroupHandler(d.Groups, d.Audit)
	expenseHandler := handlers.NewExpenseHandler(d.Expenses, d.Audit)
	dashboardHandler := handlers.NewDashboardHandler(d.Stats)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	if d.Metrics != nil {
		router.Use(d.Metrics.Middleware())
	}
	router.Use(middleware.CORS(d.CORSOrigins))
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		router.GET("/metrics", d.Metrics.Handler())
	}

	v1 := router.Group("/api/v1")

	// Public routes
	authRoutes := v1.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(d.Tokens))

	protected.GET("/auth/me", authHandler.Me)

	tenants := protected.Group("/tenants")
	tenants.GET("", tenantHandler.ListTenants)
	tenants.POST("", tenantHandler.CreateTenant)
	tenants.POST("/join", tenantHandler.JoinTenant)
	tenants.GET("/:id/users", tenantHandler.ListMembers)
	tenants.DELETE("/:id", tenantHandler.DeleteTenant)

	// Everything below operates inside the tenant named by X-Tenant-ID.
	scoped := protected.Group("")
	scoped.Use(middleware.TenantContext(d.Resolver))

	categories := scoped.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	groups := scoped.Group("/groups")
	groups.GET("", groupHandler.ListGroups)
	groups.POST("", groupHandler.CreateGroup)
	groups.GET("/:id", groupHandler.GetGroup)
	groups.PUT("/:id", groupHandler.UpdateGroup)
	groups.DELETE("/:id", groupHandler.DeleteGroup)

	expenses := scoped.Group("/expenses")
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	scoped.GET("/dashboard/stats", dashboardHandler.GetStats)

	return router
}
