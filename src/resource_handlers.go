package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"fbs/src/common"
	"fbs/src/middlewares"
	"fbs/src/store"
	"fbs/src/types"

	"github.com/gin-gonic/gin"
)

func resourceHandlers(g *gin.RouterGroup, st *store.Store) *gin.RouterGroup {
	g.
		GET("/rooms", func(ctx *gin.Context) {
			var filters types.RoomsQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			now := st.Now()

			// With filters the listing becomes a recommendation: best-fit
			// rooms only, smallest sufficient capacity first.
			if filters.MinCapacity > 0 || filters.Facilities != "" {
				var facilities []string
				if filters.Facilities != "" {
					facilities = strings.Split(filters.Facilities, ",")
				}
				rooms := common.RecommendRooms(st, filters.MinCapacity, facilities, now)
				data := make([]types.APIResponseRoom, 0, len(rooms))
				for _, room := range rooms {
					data = append(data, roomView(st, room.ID, now))
				}
				ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
				return
			}

			rooms := st.Rooms()
			data := make([]types.APIResponseRoom, 0, len(rooms))
			for _, room := range rooms {
				data = append(data, roomView(st, room.ID, now))
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		GET("/rooms/:id/availability", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			now := st.Now()
			ctx.JSON(http.StatusOK, gin.H{
				"resource_id": params.ID,
				"kind":        types.KIND_ROOM,
				"available":   common.IsRoomAvailable(st, params.ID, now),
				"checked_at":  now,
			})
		}).
		GET("/items", func(ctx *gin.Context) {
			now := st.Now()
			items := st.Items()
			data := make([]types.APIResponseItem, 0, len(items))
			for _, item := range items {
				data = append(data, types.APIResponseItem{
					ID:         item.ID,
					Name:       item.Name,
					Category:   item.Category,
					Stock:      item.Stock,
					Blocked:    item.Blocked,
					Available:  common.IsItemAvailable(st, item.ID, now),
					QueueCount: common.QueueCount(st, types.KIND_ITEM, item.ID, now),
				})
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		GET("/items/:id/availability", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			now := st.Now()
			ctx.JSON(http.StatusOK, gin.H{
				"resource_id": params.ID,
				"kind":        types.KIND_ITEM,
				"available":   common.IsItemAvailable(st, params.ID, now),
				"free":        common.AvailableItemCount(st, params.ID, now),
				"checked_at":  now,
			})
		}).
		GET("/resources/:kind/:id/queue", func(ctx *gin.Context) {
			var params types.ResourceURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if !params.Kind.Valid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": store.ErrUnknownKind.Error()})
				return
			}
			now := st.Now()
			resp := types.APIResponseQueue{
				ResourceID: params.ID,
				Kind:       string(params.Kind),
				Count:      common.QueueCount(st, params.Kind, params.ID, now),
			}
			if wait, ok := common.EstimatedWait(st, params.Kind, params.ID, now); ok {
				resp.Wait = common.FormatWait(wait)
			}
			ctx.JSON(http.StatusOK, gin.H{"data": resp})
		})
	return g
}

func adminResourceHandlers(g *gin.RouterGroup, st *store.Store) *gin.RouterGroup {
	g.Use(middlewares.AdminMiddleware)
	g.
		PUT("/resources/:kind/:id/block", func(ctx *gin.Context) {
			var params types.ResourceURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			blocked, err := st.ToggleBlock(ctx, params.Kind, params.ID)
			if err != nil {
				log.Printf("Could not toggle block on %s/%s: %s\n", params.Kind, params.ID, err.Error())
				ctx.JSON(statusForStoreError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"resource_id": params.ID, "kind": params.Kind, "blocked": blocked})
		})
	return g
}

func roomView(st *store.Store, roomID string, now time.Time) types.APIResponseRoom {
	room, _ := st.Room(roomID)
	return types.APIResponseRoom{
		ID:         room.ID,
		Name:       room.Name,
		Capacity:   room.Capacity,
		Size:       room.Size,
		Facilities: room.Facilities,
		Blocked:    room.Blocked,
		Available:  common.IsRoomAvailable(st, room.ID, now),
		QueueCount: common.QueueCount(st, types.KIND_ROOM, room.ID, now),
	}
}
