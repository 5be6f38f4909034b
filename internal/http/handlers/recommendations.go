package handlers

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mauv0809/courtside/internal/match"
)

// RecommendationsHandler ranks open matches for the caller. Query parameters:
// sport, min_price, max_price, times (comma separated) and limit.
func RecommendationsHandler(svc *match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		c, err := criteriaFromQuery(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		limit, err := limitFromQuery(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		recs, err := svc.Recommend(r.Context(), UserIDFromContext(r), c, limit)
		if err != nil {
			writeError(w, err, "Failed to get recommendations")
			return
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

// SimilarMatchesHandler lists matches like {matchID}, up to ?limit=.
func SimilarMatchesHandler(svc *match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := limitFromQuery(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		recs, err := svc.Similar(r.Context(), r.PathValue("matchID"), limit)
		if err != nil {
			writeError(w, err, "Failed to get similar matches")
			return
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

func criteriaFromQuery(q url.Values) (match.Criteria, error) {
	c := match.Criteria{Sport: strings.TrimSpace(q.Get("sport"))}

	minRaw, maxRaw := q.Get("min_price"), q.Get("max_price")
	if minRaw != "" || maxRaw != "" {
		r := &match.PriceRange{Min: 0, Max: math.MaxInt64}
		if minRaw != "" {
			v, err := strconv.ParseInt(minRaw, 10, 64)
			if err != nil {
				return c, errors.New("min_price must be an integer")
			}
			r.Min = v
		}
		if maxRaw != "" {
			v, err := strconv.ParseInt(maxRaw, 10, 64)
			if err != nil {
				return c, errors.New("max_price must be an integer")
			}
			r.Max = v
		}
		c.PriceRange = r
	}

	if raw := q.Get("times"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				c.PreferredTimes = append(c.PreferredTimes, match.TimeOfDay(strings.ToLower(t)))
			}
		}
	}
	return c, nil
}

func limitFromQuery(q url.Values) (int, error) {
	raw := q.Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("limit must be a non-negative integer")
	}
	return n, nil
}
