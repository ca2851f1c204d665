package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// AdminBasePath is where the admin page is mounted.
const AdminBasePath = "/admin"

func queryValues(c *fiber.Ctx) url.Values {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return url.Values{}
	}
	return values
}
