package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bookline/api/internal/sanitize"
)

// Sanitize scrubs denylisted fragments from every string in the JSON
// request body and in query parameters before handlers see them. Bodies
// that are not JSON objects/arrays pass through untouched.
func Sanitize(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sanitizeQuery(c)

		if c.Request.Body != nil && isJSONRequest(c) {
			if err := sanitizeBody(c); err != nil {
				// A malformed body is the handler's problem; binding
				// will reject it with a proper 400.
				log.Debug().Err(err).Msg("request body not sanitized")
			}
		}

		c.Next()
	}
}

func isJSONRequest(c *gin.Context) bool {
	return strings.Contains(c.ContentType(), "application/json")
}

func sanitizeQuery(c *gin.Context) {
	query := c.Request.URL.Query()
	if len(query) == 0 {
		return
	}

	clean := make(url.Values, len(query))
	for key, values := range query {
		for _, v := range values {
			clean.Add(key, sanitize.String(v))
		}
	}
	c.Request.URL.RawQuery = clean.Encode()
}

func sanitizeBody(c *gin.Context) error {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}

	clean, err := json.Marshal(sanitize.Value(decoded))
	if err != nil {
		return err
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(clean))
	c.Request.ContentLength = int64(len(clean))
	return nil
}
