package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/core/usecases"
)

// ListSpotsHandler returns the aggregated collection, filtered and paginated.
func ListSpotsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := usecases.SpotFilter{
			Country:   c.Query("country"),
			Region:    c.Query("region"),
			District:  c.Query("district"),
			Type:      domain.SpotType(c.Query("type")),
			HasPhotos: c.QueryBool("has_photos", false),
		}
		if filter.Type != "" && filter.Type != domain.TypeAllowed &&
			filter.Type != domain.TypeForbidden && filter.Type != domain.TypeUser {
			return errBadRequest(c, "type must be one of: allowed, forbidden, user")
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		spots, pg := paginate(deps.Spots.Filter(filter), offset, limit)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: spots, Pagination: pg})
	}
}

// NearbySpotsHandler returns spots within a radius of a point, closest first.
func NearbySpotsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lng := c.QueryFloat("lng", 0)
		radius := c.QueryFloat("radius", 1000)
		limit := c.QueryInt("limit", 50)

		if lat == 0 || lng == 0 {
			return errBadRequest(c, "lat and lng are required")
		}
		if radius <= 0 || radius > 10000 {
			return errBadRequest(c, "radius must be between 1 and 10000 meters")
		}

		spots := deps.Spots.Nearby(lat, lng, radius, limit)
		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(spots)
	}
}

// SearchSpotsHandler matches a query against spot names and addresses,
// including their Korean and English translations.
func SearchSpotsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}
		limit := c.QueryInt("limit", 20)
		if limit <= 0 || limit > 100 {
			limit = 20
		}

		return c.JSON(deps.Spots.Search(query, limit))
	}
}

// GetSpotHandler returns a single spot by ID.
func GetSpotHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "spot id is required")
		}
		spot, err := deps.Spots.GetByID(id)
		if err != nil {
			return errNotFound(c, "spot not found")
		}
		return c.JSON(spot)
	}
}

// StatisticsHandler returns summary counts over the current collection.
func StatisticsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(deps.Spots.Statistics())
	}
}

// StatusHandler reports the loader's state machine and dataset freshness.
func StatusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := deps.Loader.State()
		resp := fiber.Map{
			"state": state,
			"total": len(deps.Loader.Spots()),
		}
		if last := deps.Loader.LastUpdated(); !last.IsZero() {
			resp["last_updated"] = last.UTC().Format(time.RFC3339)
		}
		c.Set("Cache-Control", "no-cache")
		return c.JSON(resp)
	}
}

// RefreshHandler forces a full aggregation run, bypassing the cache. The run
// proceeds after the response; clients watch /v1/status or the WebSocket feed.
func RefreshHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := deps.Loader.State()
		if state.IsLoading {
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"status": "already running",
				"state":  state,
			})
		}

		go func() {
			_ = deps.Loader.Refresh(context.Background())
		}()

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"status": "refresh started",
		})
	}
}

// SubmitSpotHandler accepts a user-submitted spot for review.
func SubmitSpotHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req usecases.SubmitRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		req.SubmitterID = c.Get("X-User-ID")

		result, err := deps.Submissions.Submit(c.Context(), &req)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(result)
	}
}

// GetSubmissionHandler returns one submission by ID.
func GetSubmissionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "submission id is required")
		}
		sub, err := deps.Submissions.GetByID(c.Context(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(sub)
	}
}

// ListSubmissionsHandler lists submissions awaiting review.
func ListSubmissionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		offset := c.QueryInt("offset", 0)
		if offset < 0 {
			offset = 0
		}

		subs, err := deps.Submissions.ListPending(c.Context(), limit, offset)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{
			"data":  subs,
			"count": len(subs),
		})
	}
}

// ReviewSubmissionHandler approves or rejects a pending submission.
func ReviewSubmissionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "submission id is required")
		}

		var body struct {
			Status domain.SubmissionStatus `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		if err := deps.Submissions.Review(c.Context(), id, body.Status); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{
			"id":     id,
			"status": body.Status,
		})
	}
}

// SignUploadHandler issues a presigned URL for a direct photo upload.
func SignUploadHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Uploads == nil {
			return errUnavailable(c, "uploads not configured")
		}

		var body struct {
			ContentType string `json:"content_type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if body.ContentType == "" {
			return errBadRequest(c, "content_type is required")
		}

		target, err := deps.Uploads.SignUpload(c.Context(), body.ContentType)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(target)
	}
}
