package catalog

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(regions fiber.Router, trips fiber.Router, svc *Service) {
	regions.Get("/", func(c *fiber.Ctx) error {
		list, err := svc.Regions(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	regions.Get("/:id", func(c *fiber.Ctx) error {
		region, err := svc.Region(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(region)
	})

	regions.Get("/:id/trips", func(c *fiber.Ctx) error {
		region, err := svc.Region(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		list, err := svc.Trips(c.Context(), false, region.ID)
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	trips.Get("/", func(c *fiber.Ctx) error {
		list, err := svc.Trips(c.Context(), c.QueryBool("featured"), c.Query("regionId"))
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	trips.Get("/:id", func(c *fiber.Ctx) error {
		trip, err := svc.Trip(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(trip)
	})
}
