package handlers

import (
	"github.com/gofiber/fiber/v2"

	"evervital-bot/models"
)

// GetTests returns the full test catalog
func GetTests(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tests": models.Catalog,
	})
}

// GetTest returns a single catalog test by ID
func GetTest(c *fiber.Ctx) error {
	id := c.Params("testID")
	test, ok := models.TestByID(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Test not found",
		})
	}
	return c.JSON(test)
}
