// Package tmdb provides a client for The Movie Database TV search API.
package tmdb

import "strconv"

// TVShow is one TV search result.
type TVShow struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name"`
	FirstAirDate string  `json:"first_air_date"` // "2008-01-20"
	Overview     string  `json:"overview"`
	Popularity   float64 `json:"popularity"`
}

// Year extracts the year from FirstAirDate.
func (s *TVShow) Year() int {
	if len(s.FirstAirDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(s.FirstAirDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// searchResponse is the /3/search/tv envelope.
type searchResponse struct {
	Page         int      `json:"page"`
	Results      []TVShow `json:"results"`
	TotalResults int      `json:"total_results"`
}
