package invitation

import (
	"github.com/SNMDESERT/peak-finder/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts /invitations on r and the inviter's listing on
// the /user group. Looking up a code needs no session.
func RegisterRoutes(r, user fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		inv, err := svc.Create(c.Context(), userID, req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(inv)
	})

	r.Get("/:code", func(c *fiber.Ctx) error {
		inv, err := svc.Fetch(c.Context(), c.Params("code"))
		if err != nil {
			return err
		}
		return c.JSON(inv)
	})

	r.Post("/:code/accept", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		inv, err := svc.Accept(c.Context(), c.Params("code"), userID)
		if err != nil {
			return err
		}
		return c.JSON(inv)
	})

	user.Get("/invitations", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		list, err := svc.ListByInviter(c.Context(), userID)
		if err != nil {
			return err
		}
		return c.JSON(list)
	})
}
