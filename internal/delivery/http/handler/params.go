package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rutea-api/internal/pkg/errors"
)

// parseID reads the :id path parameter.
func parseID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.ErrMalformedRequest.WithMessage(fmt.Sprintf("Invalid id %q", raw))
	}
	return id, nil
}

// parseBody decodes a JSON body into out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errors.ErrMalformedRequest.WithMessage("Invalid request body")
	}
	return nil
}

// parsePatch decodes a JSON object body. An empty body or null is an empty patch.
func parsePatch(c *fiber.Ctx) (map[string]any, error) {
	if len(strings.TrimSpace(string(c.Body()))) == 0 {
		return map[string]any{}, nil
	}
	var payload map[string]any
	if err := c.App().Config().JSONDecoder(c.Body(), &payload); err != nil {
		return nil, errors.ErrMalformedRequest.WithMessage("Invalid request body")
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}

func malformedQuery(name string) error {
	return errors.ErrMalformedRequest.WithMessage(fmt.Sprintf("Invalid query parameter %s", name))
}

// Query helpers return nil for an absent or blank parameter.

func queryString(c *fiber.Ctx, name string) *string {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil
	}
	return &v
}

func queryBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := queryString(c, name)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, malformedQuery(name)
	}
	return &v, nil
}

func queryInt(c *fiber.Ctx, name string) (*int, error) {
	raw := queryString(c, name)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, malformedQuery(name)
	}
	return &v, nil
}

func queryInt64(c *fiber.Ctx, name string) (*int64, error) {
	raw := queryString(c, name)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return nil, malformedQuery(name)
	}
	return &v, nil
}

func queryFloat(c *fiber.Ctx, name string) (*float64, error) {
	raw := queryString(c, name)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil, malformedQuery(name)
	}
	return &v, nil
}
