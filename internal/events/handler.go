package events

import (
	"fmt"

	"github.com/Klue7/nova-erp-sub002/internal/auth"
	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DomainEventResponse struct {
	ID            uint    `json:"id"`
	CreatedAt     string  `json:"created_at"`
	AggregateType string  `json:"aggregate_type"`
	AggregateID   uint    `json:"aggregate_id"`
	EventType     string  `json:"event_type"`
	Payload       string  `json:"payload"`
	CorrelationID *string `json:"correlation_id"`
	ActorID       uint    `json:"actor_id"`
	ActorName     string  `json:"actor_name"`
}

// GET /api/events?aggregate_type=batch&aggregate_id=1&correlation_id=...
// The log is read-only by design; there is no undo surface.
func ListEventsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		dbq := database.DB.Model(&models.DomainEvent{}).Where("tenant_id = ?", actor.TenantID)

		if at := c.Query("aggregate_type"); at != "" {
			dbq = dbq.Where("aggregate_type = ?", at)
		}
		if aidStr := c.Query("aggregate_id"); aidStr != "" {
			var aid uint
			if _, err := fmt.Sscan(aidStr, &aid); err == nil && aid > 0 {
				dbq = dbq.Where("aggregate_id = ?", aid)
			}
		}
		if et := c.Query("event_type"); et != "" {
			dbq = dbq.Where("event_type = ?", et)
		}
		if corr := c.Query("correlation_id"); corr != "" {
			dbq = dbq.Where("correlation_id = ?", corr)
		}

		var events []models.DomainEvent
		if err := dbq.Order("created_at DESC, id DESC").Limit(500).Find(&events).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "events could not be listed")
		}

		resp := make([]DomainEventResponse, 0, len(events))
		for _, e := range events {
			resp = append(resp, DomainEventResponse{
				ID:            e.ID,
				CreatedAt:     e.CreatedAt.Format("2006-01-02 15:04:05"),
				AggregateType: e.AggregateType,
				AggregateID:   e.AggregateID,
				EventType:     e.EventType,
				Payload:       e.Payload,
				CorrelationID: e.CorrelationID,
				ActorID:       e.ActorID,
				ActorName:     e.ActorName,
			})
		}

		return c.JSON(resp)
	}
}
