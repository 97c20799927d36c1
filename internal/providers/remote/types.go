package remote

import "jeopardy-stats-service/internal/domain/games"

type gamesResponse struct {
	Data []games.RawGame `json:"data"`
	Meta metaResponse    `json:"meta"`
}

type metaResponse struct {
	TotalPages int `json:"total_pages"`
}
