package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for the skybook application.
// Pattern: skybook:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Semi-static data (changes occasionally)
const (
	TTL_FLIGHT_SEARCH = 5 * time.Minute // search result listings
	TTL_FLIGHT_ROUTE  = 5 * time.Minute // computed smart routes
)

// Real-time sensitive data
const (
	TTL_SEAT_SNAPSHOT = 30 * time.Second // per-flight seat maps; also
	// invalidated eagerly on every successful reservation
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "skybook"
)

// ================== FLIGHTS MODULE ==================

// FlightSnapshotKey is the cache key for one flight's full seat map.
func FlightSnapshotKey(flightID string) string {
	return fmt.Sprintf("%s:flights:snapshot:%s", CACHE_PREFIX, flightID)
}

// FlightSearchKey is the cache key for a search result listing.
func FlightSearchKey(source, destination, date string) string {
	return fmt.Sprintf("%s:flights:search:%s:%s:%s", CACHE_PREFIX, source, destination, date)
}

// FlightRouteKey is the cache key for a computed route between two airports.
func FlightRouteKey(source, destination string) string {
	return fmt.Sprintf("%s:flights:route:%s:%s", CACHE_PREFIX, source, destination)
}

// FlightCachePattern matches every cached entry touching one flight, used
// for eager invalidation after a reservation.
func FlightCachePattern(flightID string) string {
	return fmt.Sprintf("%s:flights:snapshot:%s*", CACHE_PREFIX, flightID)
}

// SearchCachePattern matches all cached search and route listings.
func SearchCachePattern() string {
	return fmt.Sprintf("%s:flights:search:*", CACHE_PREFIX)
}
