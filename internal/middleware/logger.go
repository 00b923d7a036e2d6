package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

var skipPaths = []string{"/health", "/metrics", "/ping"}

// Logger prints one line per request with method, path, status, latency
// and the authenticated user when present. Query strings are logged,
// bodies are not, they may carry credentials.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		for _, skip := range skipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method
		user := c.GetString("email")

		line := methodColor(method) + method + colorReset +
			" " + colorBlue + path + colorReset
		if query := c.Request.URL.RawQuery; query != "" {
			line += "?" + truncate(query, 100)
		}
		line += " " + statusColor(status) + statusLine(status) + colorReset +
			" " + latency.String()
		if user != "" {
			line += " user=" + user
		}

		log.Print(line)
	}
}

func statusLine(status int) string {
	var flag string
	switch {
	case status >= 200 && status < 300:
		flag = "OK"
	case status >= 300 && status < 400:
		flag = "REDIRECT"
	case status >= 400 && status < 500:
		flag = "CLIENT ERROR"
	default:
		flag = "SERVER ERROR"
	}
	return fmt.Sprintf("%s [%d]", flag, status)
}

func methodColor(method string) string {
	switch method {
	case "GET":
		return colorGreen
	case "POST":
		return colorBlue
	case "PUT", "PATCH":
		return colorYellow
	case "DELETE":
		return colorRed
	default:
		return colorWhite
	}
}

func statusColor(status int) string {
	switch {
	case status >= 200 && status < 300:
		return colorGreen
	case status >= 300 && status < 400:
		return colorCyan
	case status >= 400 && status < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
