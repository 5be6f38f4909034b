package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	date        string
	startTime   string
	sport       string
	description string
	captainName string
	duration    float64
	maxPlayers  int
	query       string
	displayName string
	address     string
	lat         float64
	lng         float64
	radiusKm    float64
	enabled     bool
	minPrice    int64
	maxPrice    int64
	times       string
	limit       int
)

func init() {
	slotsCmd.Flags().StringVar(&date, "date", "", "Calendar date (YYYY-MM-DD)")
	_ = slotsCmd.MarkFlagRequired("date")

	quoteCmd.Flags().Float64Var(&duration, "duration", 1, "Duration in hours, in 0.5 steps")
	quoteCmd.Flags().IntVar(&maxPlayers, "max-players", 4, "Number of players sharing the cost")

	createCmd.Flags().StringVar(&date, "date", "", "Calendar date (YYYY-MM-DD)")
	createCmd.Flags().StringVar(&startTime, "time", "", "Start time (HH:MM)")
	createCmd.Flags().Float64Var(&duration, "duration", 1, "Duration in hours, in 0.5 steps")
	createCmd.Flags().IntVar(&maxPlayers, "max-players", 4, "Maximum number of players")
	createCmd.Flags().StringVar(&sport, "sport", "", "Sport, defaults to the court's")
	createCmd.Flags().StringVar(&description, "description", "", "Free text shown to other players")
	createCmd.Flags().StringVar(&captainName, "name", "", "Captain display name")
	_ = createCmd.MarkFlagRequired("date")
	_ = createCmd.MarkFlagRequired("time")

	matchesCmd.Flags().StringVar(&query, "q", "", "Search term over court, description and address")
	matchesCmd.Flags().StringVar(&sport, "sport", "", "Only matches of this sport")

	profileCmd.Flags().StringVar(&displayName, "name", "", "Display name")
	profileCmd.Flags().StringVar(&address, "address", "", "Home address")
	profileCmd.Flags().Float64Var(&lat, "lat", 0, "Home latitude")
	profileCmd.Flags().Float64Var(&lng, "lng", 0, "Home longitude")
	profileCmd.Flags().Float64Var(&radiusKm, "radius", 0, "Notify about new matches within this many km, 0 for never")
	profileCmd.Flags().BoolVar(&enabled, "enabled", true, "Receive match notifications")
	profileCmd.MarkFlagsRequiredTogether("lat", "lng")

	recommendationsCmd.Flags().StringVar(&sport, "sport", "", "Preferred sport")
	recommendationsCmd.Flags().Int64Var(&minPrice, "min-price", 0, "Lowest price per player")
	recommendationsCmd.Flags().Int64Var(&maxPrice, "max-price", 0, "Highest price per player")
	recommendationsCmd.Flags().StringVar(&times, "times", "", "Preferred times of day, e.g. morning,evening")
	recommendationsCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")

	similarCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(courtsCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(myMatchesCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(recommendationsCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var courtsCmd = &cobra.Command{
	Use:   "courts",
	Short: "List the courts in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/courts")
	},
}

var slotsCmd = &cobra.Command{
	Use:   "slots <court-id>",
	Short: "List free start times on a court",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/courts/" + url.PathEscape(args[0]) + "/slots?date=" + url.QueryEscape(date))
	},
}

var quoteCmd = &cobra.Command{
	Use:   "quote <court-id>",
	Short: "Price a match before creating it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(fmt.Sprintf("/courts/%s/quote?duration=%g&max_players=%d", url.PathEscape(args[0]), duration, maxPlayers))
	},
}

var createCmd = &cobra.Command{
	Use:   "create <court-id>",
	Short: "Create a match with --user as captain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/matches", map[string]any{
			"court_id":       args[0],
			"sport":          sport,
			"date":           date,
			"time":           startTime,
			"duration_hours": duration,
			"max_players":    maxPlayers,
			"captain_name":   captainName,
			"description":    description,
		})
	},
}

func matchAction(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <match-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return performRequest(http.MethodPost, "/matches/"+url.PathEscape(args[0])+"/"+action, nil)
		},
	}
}

var (
	joinCmd   = matchAction("join", "Join a match as --user")
	leaveCmd  = matchAction("leave", "Leave a match as --user")
	cancelCmd = matchAction("cancel", "Cancel a match; --user must be the captain")
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List open upcoming matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if query != "" {
			params.Set("q", query)
		}
		if sport != "" {
			params.Set("sport", sport)
		}
		endpoint := "/matches"
		if len(params) > 0 {
			endpoint += "?" + params.Encode()
		}
		return performGetRequest(endpoint)
	},
}

var myMatchesCmd = &cobra.Command{
	Use:   "my-matches",
	Short: "List the matches --user plays in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/me/matches")
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List the notifications of --user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/me/notifications")
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Set the location and notification preferences of --user",
	RunE: func(cmd *cobra.Command, args []string) error {
		location := map[string]any{"address": address}
		if cmd.Flags().Changed("lat") {
			location["lat"] = lat
			location["lng"] = lng
		}
		body := map[string]any{
			"display_name":          displayName,
			"location":              location,
			"notifications_enabled": enabled,
		}
		if cmd.Flags().Changed("radius") {
			body["notification_radius_km"] = radiusKm
		}
		return performRequest(http.MethodPut, "/me/profile", body)
	},
}

var recommendationsCmd = &cobra.Command{
	Use:   "recommendations",
	Short: "Rank open matches for --user",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if sport != "" {
			params.Set("sport", sport)
		}
		if cmd.Flags().Changed("min-price") {
			params.Set("min_price", strconv.FormatInt(minPrice, 10))
		}
		if cmd.Flags().Changed("max-price") {
			params.Set("max_price", strconv.FormatInt(maxPrice, 10))
		}
		if times != "" {
			params.Set("times", times)
		}
		if limit > 0 {
			params.Set("limit", strconv.Itoa(limit))
		}
		endpoint := "/me/recommendations"
		if len(params) > 0 {
			endpoint += "?" + params.Encode()
		}
		return performGetRequest(endpoint)
	},
}

var similarCmd = &cobra.Command{
	Use:   "similar <match-id>",
	Short: "List matches like the given one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/matches/" + url.PathEscape(args[0]) + "/similar"
		if limit > 0 {
			endpoint += "?limit=" + strconv.Itoa(limit)
		}
		return performGetRequest(endpoint)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, nil)
}

func performRequest(method, endpoint string, body any) error {
	u, err := url.Parse(host + endpoint)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if dryRun {
		q := u.Query()
		q.Set("dry_run", "true")
		u.RawQuery = q.Encode()
	}
	fmt.Printf("Making %s request to %s\n", method, u)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
