package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"fbs/src/common"
	"fbs/src/config"
	"fbs/src/middlewares"
	"fbs/src/models"
	"fbs/src/store"
	"fbs/src/types"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup, st *store.Store) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			start, err := time.Parse(config.TIME_PARSE_FORMAT, body.Start)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			end, err := time.Parse(config.TIME_PARSE_FORMAT, body.End)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			requester := ctx.GetString("requester")
			booking, err := st.CreateBooking(ctx, models.Booking{
				RequesterID: requester,
				Kind:        body.Kind,
				ResourceID:  body.ResourceID,
				Purpose:     body.Purpose,
				Responsible: body.Responsible,
				Reason:      body.Reason,
				Duration:    body.Duration,
				Start:       start,
				End:         end,
				Attachment:  body.Attachment,
				Qty:         body.Qty,
				Note:        body.Note,
			})
			if err != nil {
				log.Printf("Could not create booking: %s\n", err.Error())
				ctx.JSON(statusForStoreError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			var filters types.BookingsQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			requester := ctx.GetString("requester")
			if ctx.GetString("role") == "admin" && filters.Requester != "" {
				requester = filters.Requester
			}
			bookings := st.BookingsByRequester(requester)
			if filters.Status != "" {
				status := types.BookingStatus(filters.Status)
				if !status.Valid() {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": store.ErrUnknownStatus.Error()})
					return
				}
				filtered := bookings[:0]
				for _, b := range bookings {
					if b.Status == status {
						filtered = append(filtered, b)
					}
				}
				bookings = filtered
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			booking, ok := st.Booking(params.ID)
			if !ok {
				ctx.JSON(http.StatusNotFound, gin.H{"error": store.ErrNotFound.Error()})
				return
			}
			if booking.RequesterID != ctx.GetString("requester") && ctx.GetString("role") != "admin" {
				ctx.Status(http.StatusForbidden)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, ok := st.Booking(params.ID)
			if !ok {
				ctx.JSON(http.StatusNotFound, gin.H{"error": store.ErrNotFound.Error()})
				return
			}
			if booking.RequesterID != ctx.GetString("requester") && ctx.GetString("role") != "admin" {
				ctx.Status(http.StatusForbidden)
				return
			}
			// Only pending and review bookings can still be withdrawn.
			if booking.Status != types.BOOKING_PENDING && booking.Status != types.BOOKING_REVIEW {
				ctx.JSON(http.StatusConflict, gin.H{"error": "booking can no longer be cancelled"})
				return
			}
			if _, err := st.CancelBooking(ctx, params.ID); err != nil {
				log.Printf("Could not cancel booking %s: %s\n", params.ID, err.Error())
				ctx.JSON(statusForStoreError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func adminBookingHandlers(g *gin.RouterGroup, st *store.Store) *gin.RouterGroup {
	g.Use(middlewares.AdminMiddleware)
	g.
		GET("/bookings/queue", func(ctx *gin.Context) {
			bookings := st.BookingsByStatus(types.BOOKING_PENDING, types.BOOKING_REVIEW)
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/all", func(ctx *gin.Context) {
			bookings := st.Bookings()
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		PUT("/bookings/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateBookingStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, ok := st.Booking(params.ID)
			if !ok {
				ctx.JSON(http.StatusNotFound, gin.H{"error": store.ErrNotFound.Error()})
				return
			}
			if !transitionAllowed(booking.Status, body.Status) {
				ctx.JSON(http.StatusConflict, gin.H{"error": "status transition not allowed"})
				return
			}
			updated, err := st.UpdateBookingStatus(ctx, params.ID, body.Status)
			if err != nil {
				log.Printf("Could not update booking %s: %s\n", params.ID, err.Error())
				ctx.JSON(statusForStoreError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": updated})
		}).
		GET("/bookings/active/:kind/:id", func(ctx *gin.Context) {
			var params types.ResourceURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if !params.Kind.Valid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": store.ErrUnknownKind.Error()})
				return
			}
			active := common.ActiveBookings(st, params.Kind, params.ID, st.Now())
			ctx.JSON(http.StatusOK, gin.H{"data": active, "count": len(active)})
		})
	return g
}

func transitionAllowed(from, to types.BookingStatus) bool {
	for _, allowed := range types.AdminTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func statusForStoreError(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidWindow),
		errors.Is(err, store.ErrUnknownStatus),
		errors.Is(err, store.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrQuantityExceedsStock):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
