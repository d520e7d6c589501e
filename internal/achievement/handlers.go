package achievement

import (
	"github.com/SNMDESERT/peak-finder/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the public catalog on r and the per-user routes
// on user.
func RegisterRoutes(r fiber.Router, user fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		list, err := svc.List(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		a, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(a)
	})

	user.Get("/achievements", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		list, err := svc.UserAchievements(c.Context(), userID)
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	user.Get("/achievements/progress", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		standings, err := svc.Standings(c.Context(), userID)
		if err != nil {
			return err
		}
		return c.JSON(standings)
	})

	user.Post("/achievements/evaluate", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		granted, err := svc.Reevaluate(c.Context(), userID)
		if err != nil {
			return err
		}
		if granted == nil {
			granted = []Achievement{}
		}
		return c.JSON(fiber.Map{"granted": granted})
	})
}
