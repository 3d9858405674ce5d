package http

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/lunchmenu"
)

// DefaultUSDABaseURL is the FoodData Central API root.
const DefaultUSDABaseURL = "https://api.nal.usda.gov/fdc/v1"

var _ lunchmenu.CalorieService = (*USDAClient)(nil)

// USDAClient estimates dish calories from the first FoodData Central search hit.
type USDAClient struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

// NewUSDAClient creates a client for the public FoodData Central API.
func NewUSDAClient(apiKey string) *USDAClient {
	return &USDAClient{
		BaseURL: DefaultUSDABaseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type foodSearchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			UnitName     string  `json:"unitName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// Calories implements lunchmenu.CalorieService.
func (c *USDAClient) Calories(ctx context.Context, dish string) (int, error) {
	if strings.TrimSpace(dish) == "" {
		return 0, lunchmenu.Errorf(lunchmenu.EINVALID, "dish name required")
	}

	q := url.Values{}
	q.Set("query", dish)
	q.Set("pageSize", "1")
	q.Set("api_key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/foods/search?"+q.Encode(), nil)
	if err != nil {
		return 0, lunchmenu.Errorf(lunchmenu.EINVALID, "invalid USDA URL: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, lunchmenu.Errorf(lunchmenu.EFETCH, "USDA request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, lunchmenu.Errorf(lunchmenu.EFETCH, "USDA HTTP %d", resp.StatusCode)
	}

	var body foodSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, lunchmenu.Errorf(lunchmenu.EFETCH, "decode USDA response: %v", err)
	}

	if len(body.Foods) == 0 {
		return 0, lunchmenu.Errorf(lunchmenu.ENOTFOUND, "no food matches %q", dish)
	}
	for _, n := range body.Foods[0].FoodNutrients {
		if n.NutrientName == "Energy" && (n.UnitName == "" || strings.EqualFold(n.UnitName, "KCAL")) {
			return int(math.Round(n.Value)), nil
		}
	}
	return 0, lunchmenu.Errorf(lunchmenu.ENOTFOUND, "no energy value for %q", dish)
}
