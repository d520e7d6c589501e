package photo

import (
	"github.com/SNMDESERT/peak-finder/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the gallery under the trips group and deletion
// under /photos.
func RegisterRoutes(trips, photos fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	trips.Get("/:id/photos", func(c *fiber.Ctx) error {
		list, err := svc.List(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	trips.Post("/:id/photos", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		p, err := svc.Create(c.Context(), userID, c.Params("id"), req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	})

	photos.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.Context(), c.Params("id"), userID); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
