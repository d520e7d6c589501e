package booking

import (
	"github.com/SNMDESERT/peak-finder/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the booking routes on the /user group.
func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/trips", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		list, err := svc.UserTrips(c.Context(), userID)
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	r.Post("/trips", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		var req BookRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		ut, err := svc.Book(c.Context(), userID, req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(ut)
	})

	r.Post("/trips/:id/complete", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		completion, err := svc.Complete(c.Context(), userID, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(completion)
	})

	r.Post("/trips/:id/cancel", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		ut, err := svc.Cancel(c.Context(), userID, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(ut)
	})

	r.Get("/stats", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		stats, err := svc.Stats(c.Context(), userID)
		if err != nil {
			return err
		}
		return c.JSON(stats)
	})
}
