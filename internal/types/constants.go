package types

import (
	"os"
	"strings"
)

// ContextUserKey is where the auth middleware stores the caller it resolved
// from the bearer secret key.
const ContextUserKey = "currentUser"

// AllowedOrigins lists the browser origins the API and the websocket feed
// accept. The local React dev and preview servers are always included;
// deployed client origins come from CLIENT_URL and the comma-separated
// ALLOWED_ORIGINS.
var AllowedOrigins = clientOrigins()

func clientOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://localhost:4173",
	}

	if url := os.Getenv("CLIENT_URL"); url != "" {
		origins = append(origins, url)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
