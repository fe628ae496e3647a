package main

import (
	"log"
	"net/http"

	"fbs/src/middlewares"
	"fbs/src/models"
	"fbs/src/store"
	"fbs/src/types"

	"github.com/gin-gonic/gin"
)

func feedbackHandlers(g *gin.RouterGroup, st *store.Store) *gin.RouterGroup {
	g.
		POST("/feedback", func(ctx *gin.Context) {
			var body types.CreateFeedbackRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			fb, err := st.AddFeedback(ctx, models.Feedback{
				RequesterID:   ctx.GetString("requester"),
				RequesterName: body.Name,
				Text:          body.Text,
			})
			if err != nil {
				log.Printf("Could not save feedback: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": fb})
		})
	return g
}

func adminFeedbackHandlers(g *gin.RouterGroup, st *store.Store) *gin.RouterGroup {
	g.Use(middlewares.AdminMiddleware)
	g.
		GET("/feedback", func(ctx *gin.Context) {
			feedback := st.Feedback()
			ctx.JSON(http.StatusOK, gin.H{"data": feedback, "count": len(feedback)})
		})
	return g
}
