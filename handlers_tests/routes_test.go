package handlers

import (
	"bytes"
	"net/http"
	"testing"

	"rental-webapp/router"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type Test struct {
	description  string
	method       string
	route        string
	bodyinput    []byte
	expectedCode int
}

func TestRoutes(t *testing.T) {
	tests := []Test{
		{
			description:  "health check",
			method:       "GET",
			route:        "/api/health",
			bodyinput:    nil,
			expectedCode: 200,
		},
		{
			description:  "create booking without token",
			method:       "POST",
			route:        "/api/bookings",
			bodyinput:    []byte("{\"listing_id\":\"507f1f77bcf86cd799439011\",\"check_in_date\":\"2025-03-10\",\"check_out_date\":\"2025-03-13\",\"number_of_guests\":2}"),
			expectedCode: 400,
		},
		{
			description:  "booking history without token",
			method:       "GET",
			route:        "/api/bookings",
			bodyinput:    nil,
			expectedCode: 400,
		},
		{
			description:  "create listing without token",
			method:       "POST",
			route:        "/api/listings",
			bodyinput:    []byte("{\"title\":\"Loft\",\"description\":\"Nice\",\"city\":\"Lagos\",\"price_per_night\":100}"),
			expectedCode: 400,
		},
		{
			description:  "register with malformed email",
			method:       "POST",
			route:        "/api/users/register",
			bodyinput:    []byte("{\"email\":\"not-an-email\",\"password\":\"secret1\",\"first_name\":\"Ada\"}"),
			expectedCode: 400,
		},
		{
			description:  "register with short password",
			method:       "POST",
			route:        "/api/users/register",
			bodyinput:    []byte("{\"email\":\"ada@example.com\",\"password\":\"abc\",\"first_name\":\"Ada\"}"),
			expectedCode: 400,
		},
		{
			description:  "search with malformed date",
			method:       "GET",
			route:        "/api/listings?check_in_date=not-a-date&check_out_date=2025-03-13",
			bodyinput:    nil,
			expectedCode: 400,
		},
		{
			description:  "search with inverted date range",
			method:       "GET",
			route:        "/api/listings?check_in_date=2025-03-13&check_out_date=2025-03-10",
			bodyinput:    nil,
			expectedCode: 400,
		}}

	app := fiber.New()
	router.SetupRoutes(app)

	for _, test := range tests {
		req, _ := http.NewRequest(
			test.method,
			test.route,
			bytes.NewBuffer(test.bodyinput))
		req.Header.Set("Content-Type", "application/json")

		res, err := app.Test(req, -1)
		if err != nil {
			assert.Failf(t, "request failed", "%v: %v", test.description, err)
			continue
		}

		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
	}
}
