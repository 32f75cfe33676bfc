package models

// RateLimit is the response of GET /rate_limit.
type RateLimit struct {
	Resources map[string]RateBucket `json:"resources"`
	Rate      RateBucket            `json:"rate"`
}

// RateBucket is a quota window. Reset is a unix timestamp.
type RateBucket struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Used      int   `json:"used"`
	Reset     int64 `json:"reset"`
}
