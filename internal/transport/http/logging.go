package http

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tektai/tektai-backend/internal/domain"
)

const requestBodyLogKey = "http.request.body.summary"

const maxLoggedBody = 1024

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			userID := "anonymous"
			if user, ok := c.Get(contextUserKey).(*domain.User); ok && user != nil {
				userID = user.ID.String()
			}

			entry := map[string]any{
				"time":       v.StartTime.Format(time.RFC3339),
				"user_id":    userID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
			}
			if body := c.Get(requestBodyLogKey); body != nil {
				entry["request_body"] = body
			}
			if v.Error != nil {
				entry["error"] = v.Error.Error()
			}

			buf, err := json.Marshal(entry)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, _ []byte) {
		if summary := summarizeBody(reqBody); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
	}))
}

// summarizeBody produces a loggable view of a JSON request body with
// credential-bearing fields redacted. Non-JSON and oversized bodies are
// dropped rather than risk leaking a secret.
func summarizeBody(body []byte) any {
	if len(body) == 0 || len(body) > maxLoggedBody {
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil
	}
	for key := range data {
		if isSensitiveKey(key) {
			data[key] = "redacted"
		}
	}
	return data
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, needle := range []string{"password", "token", "secret", "captcha"} {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}
