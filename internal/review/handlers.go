package review

import (
	"github.com/SNMDESERT/peak-finder/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		list, err := svc.List(c.Context(), c.QueryInt("limit", DefaultLimit))
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		rev, err := svc.Create(c.Context(), userID, req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(rev)
	})

	r.Post("/:id/helpful", authMiddleware, func(c *fiber.Ctx) error {
		helpful, err := svc.MarkHelpful(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": c.Params("id"), "helpful": helpful})
	})
}
