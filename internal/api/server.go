package api

import (
	"context"
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/simplepos/pos-api/docs"
	v1 "github.com/simplepos/pos-api/internal/api/handler/v1"
	"github.com/simplepos/pos-api/internal/api/middleware"
	"github.com/simplepos/pos-api/internal/config"
	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/pkg/idgen"
	"github.com/simplepos/pos-api/internal/repository"
	"github.com/simplepos/pos-api/internal/repository/dao"
	"github.com/simplepos/pos-api/internal/service"
)

// SessionStore revokes sessions on logout and answers whether a session
// has been revoked.
type SessionStore interface {
	v1.SessionRevoker
	middleware.RevocationChecker
}

type Server struct {
	Config    *config.AppConfig
	Router    *gin.Engine
	StockFeed *v1.StockFeed

	sessions SessionStore
	ids      *idgen.Generator
}

type handlers struct {
	auth       *v1.AuthHandler
	sale       *v1.SaleHandler
	stock      *v1.StockHandler
	item       *v1.ItemHandler
	category   *v1.CategoryHandler
	employee   *v1.EmployeeHandler
	report     *v1.ReportHandler
	loginLimit gin.HandlerFunc
}

func NewServer(conf *config.AppConfig, db *gorm.DB, sessions SessionStore, ids *idgen.Generator) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	binding.EnableDecoderDisallowUnknownFields = true
	engine := gin.New()

	s := &Server{
		Config:    conf,
		Router:    engine,
		StockFeed: v1.NewStockFeed(conf.API.AllowedCORSDomains),
		sessions:  sessions,
		ids:       ids,
	}

	s.MountMiddlewares()

	loginLimit, err := middleware.RateLimit(conf.API.LoginRate)
	if err != nil {
		return nil, fmt.Errorf("middleware.RateLimit -> %w", err)
	}

	s.MountHandlers(handlers{
		auth:       s.initAuthHandler(db),
		sale:       s.initSaleHandler(db),
		stock:      s.initStockHandler(db),
		item:       s.initItemHandler(db),
		category:   s.initCategoryHandler(db),
		employee:   s.initEmployeeHandler(db),
		report:     s.initReportHandler(db),
		loginLimit: loginLimit,
	})

	return s, nil
}

// Run starts the stock feed hub; it stops when ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	go s.StockFeed.Run(ctx)
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	repo := repository.NewEmployeeRepository(dao.NewEmployeeDAO(db))
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc, s.sessions)

	return handler
}

func (s *Server) initSaleHandler(db *gorm.DB) *v1.SaleHandler {
	ledger := repository.NewLedgerRepository(dao.NewLedgerDAO(db))
	svc := service.NewSaleService(ledger, s.ids, s.StockFeed)
	handler := v1.NewSaleHandler(svc)

	return handler
}

func (s *Server) initStockHandler(db *gorm.DB) *v1.StockHandler {
	ledger := repository.NewLedgerRepository(dao.NewLedgerDAO(db))
	svc := service.NewStockService(ledger, s.ids, s.StockFeed)
	handler := v1.NewStockHandler(svc)

	return handler
}

func (s *Server) initItemHandler(db *gorm.DB) *v1.ItemHandler {
	repo := repository.NewItemRepository(dao.NewItemDAO(db))
	categories := repository.NewCategoryRepository(dao.NewCategoryDAO(db))
	svc := service.NewItemService(repo, categories, s.ids, s.StockFeed)
	handler := v1.NewItemHandler(svc)

	return handler
}

func (s *Server) initCategoryHandler(db *gorm.DB) *v1.CategoryHandler {
	repo := repository.NewCategoryRepository(dao.NewCategoryDAO(db))
	svc := service.NewCategoryService(repo, s.ids)
	handler := v1.NewCategoryHandler(svc)

	return handler
}

func (s *Server) initEmployeeHandler(db *gorm.DB) *v1.EmployeeHandler {
	repo := repository.NewEmployeeRepository(dao.NewEmployeeDAO(db))
	svc := service.NewEmployeeService(repo, s.ids)
	handler := v1.NewEmployeeHandler(svc)

	return handler
}

func (s *Server) initReportHandler(db *gorm.DB) *v1.ReportHandler {
	repo := repository.NewReportRepository(dao.NewReportDAO(db))
	svc := service.NewReportService(repo)
	handler := v1.NewReportHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	verify := middleware.NewAuthenticator(s.Config.API.JWTSigningKey, s.sessions).VerifySession()
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", h.loginLimit, h.auth.HandleLogin)
	}

	session := s.Router.Group(basePath, verify)
	{
		session.POST("/auth/logout", h.auth.HandleLogout)
		session.GET("/auth/me", h.auth.HandleMe)

		session.POST("/transactions", h.sale.HandleCheckout)
		session.GET("/stock/feed", s.StockFeed.HandleStockFeed)

		session.GET("/items", h.item.HandleListItems)
		session.GET("/items/:itemID", h.item.HandleGetItem)
		session.GET("/categories", h.category.HandleListCategories)
	}

	admin := s.Router.Group(basePath, verify, adminOnly)
	{
		admin.POST("/stock/inbound", h.stock.HandleAddInbound)
		admin.DELETE("/stock/inbound/:receiptID", h.stock.HandleReverseInbound)

		admin.POST("/items", h.item.HandleCreateItem)
		admin.PUT("/items/:itemID", h.item.HandleUpdateItem)
		admin.DELETE("/items/:itemID", h.item.HandleDeleteItem)

		admin.POST("/categories", h.category.HandleCreateCategory)
		admin.PUT("/categories/:categoryID", h.category.HandleUpdateCategory)
		admin.DELETE("/categories/:categoryID", h.category.HandleDeleteCategory)

		admin.GET("/employees", h.employee.HandleListEmployees)
		admin.GET("/employees/:employeeID", h.employee.HandleGetEmployee)
		admin.POST("/employees", h.employee.HandleCreateEmployee)
		admin.PUT("/employees/:employeeID", h.employee.HandleUpdateEmployee)
		admin.DELETE("/employees/:employeeID", h.employee.HandleDeleteEmployee)

		admin.GET("/reports/inbound", h.report.HandleInboundHistory)
		admin.GET("/reports/outbound", h.report.HandleOutboundHistory)
		admin.GET("/reports/sales", h.report.HandleSalesHistory)
		admin.GET("/reports/summary", h.report.HandleSalesSummary)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Simple POS API"
	docs.SwaggerInfo.Description = "Point of sale and inventory API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
