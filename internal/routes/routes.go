package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bank-reconciliation-backend/internal/config"
	handler "bank-reconciliation-backend/internal/handlers"
	"bank-reconciliation-backend/internal/repository"
	"bank-reconciliation-backend/internal/services/matching"
	service "bank-reconciliation-backend/internal/services/reconciliation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, engineCfg config.EngineConfig) {
	transactionRepo := repository.NewBankTransactionRepository(db)
	itemRepo := repository.NewMatchableItemRepository(db)

	opts := matching.Options{
		SuggestionThreshold: engineCfg.SuggestionThreshold,
		AutoAcceptThreshold: engineCfg.AutoAcceptThreshold,
		MaxSuggestions:      engineCfg.MaxSuggestions,
	}

	reconService := service.NewReconciliationService(transactionRepo, itemRepo, opts)
	reconHandler := handler.NewReconciliationHandler(reconService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Transaction-level routes
	tx := api.Group("/transactions")
	tx.GET("", reconHandler.ListTransactions)
	tx.GET("/:id/suggestions", reconHandler.GetSuggestions)
	tx.GET("/:id/matched-item", reconHandler.GetMatchedItem)
	tx.POST("/:id/match", reconHandler.MatchTransaction)
	tx.POST("/:id/unmatch", reconHandler.UnmatchTransaction)
	tx.POST("/:id/reconcile", reconHandler.ReconcileTransaction)
	tx.POST("/:id/dispute", reconHandler.DisputeTransaction)
	tx.POST("/:id/notes", reconHandler.AnnotateTransaction)

	// Batch reconciliation routes
	recon := api.Group("/reconciliation")
	recon.POST("/auto-match", reconHandler.AutoMatch)
	recon.POST("/reconcile-matched", reconHandler.ReconcileMatched)
	recon.GET("/stats", reconHandler.GetStats)
}
