package provider

import (
	"log/slog"
	"os"
)

// ClientsFromEnv constructs the three provider clients from NEWS_API_KEY,
// GUARDIAN_API_KEY and NYT_API_KEY. A client whose key is not set comes back
// nil, with a warning, so callers can skip the provider entirely.
func ClientsFromEnv(logger *slog.Logger) (*NewsAPIClient, *GuardianClient, *NYTimesClient) {
	var (
		newsAPI  *NewsAPIClient
		guardian *GuardianClient
		nyt      *NYTimesClient
	)

	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		newsAPI = NewNewsAPIClient(Config{APIKey: key}, nil)
	} else {
		logger.Warn("NEWS_API_KEY not set, NewsAPI provider disabled")
	}

	if key := os.Getenv("GUARDIAN_API_KEY"); key != "" {
		guardian = NewGuardianClient(Config{APIKey: key}, nil)
	} else {
		logger.Warn("GUARDIAN_API_KEY not set, Guardian provider disabled")
	}

	if key := os.Getenv("NYT_API_KEY"); key != "" {
		nyt = NewNYTimesClient(Config{APIKey: key}, nil)
	} else {
		logger.Warn("NYT_API_KEY not set, New York Times provider disabled")
	}

	return newsAPI, guardian, nyt
}
