package router

import (
	"github.com/gin-gonic/gin"

	"saccoledger/internal/app/handlers"
	"saccoledger/internal/app/middleware"
)

type Handlers struct {
	LoanManagement *handlers.LoanManagementHandler
	Members        *handlers.MemberHandler
	Reports        *handlers.ReportsHandler
}

func SetupRouter(h Handlers) *gin.Engine {
	server := gin.Default()
	server.Use(middleware.TraceID())

	healthCheckHandler := handlers.NewHealthCheckHandler()
	server.GET("/HealthCheck", healthCheckHandler.HealthCheck)

	server.POST("/functions/loan-management", h.LoanManagement.LoanManagement)
	server.POST("/functions/create-member", h.Members.CreateMember)
	server.POST("/functions/resolve-member", h.Members.ResolveMember)
	server.GET("/reports/ledger-summary", h.Reports.LedgerSummary)

	return server
}
