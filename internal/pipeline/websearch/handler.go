// internal/pipeline/websearch/handler.go
package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"product-advisor/internal/common/errors"
	"product-advisor/internal/common/logger"
	"product-advisor/internal/models"
)

const TaskType = "web-search"

// Handler queries an external text-search endpoint when internal retrieval
// came back empty. Results are grounding context only: on any failure the
// caller receives an empty slice plus the error, never synthetic content.
type Handler struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

type searchResponse struct {
	Results []struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		Href  string `json:"href"`
	} `json:"results"`
}

// Execute runs the search and returns up to MaxResults snippets with a
// non-empty body, in provider order.
func (h *Handler) Execute(ctx context.Context, query string) ([]models.WebSnippet, error) {
	u, err := url.Parse(h.config.BaseURL)
	if err != nil {
		return nil, errors.NewWebSearchFailedError(err)
	}
	params := url.Values{}
	params.Add("q", query)
	params.Add("max_results", strconv.Itoa(h.config.MaxResults))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.NewWebSearchFailedError(err)
	}
	if h.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.config.APIKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errors.NewWebSearchFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewWebSearchFailedError(
			&url.Error{Op: "search", URL: u.String(), Err: errStatus(resp.StatusCode)})
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.NewWebSearchFailedError(err)
	}

	var snippets []models.WebSnippet
	for _, r := range out.Results {
		if r.Body == "" {
			continue
		}
		snippets = append(snippets, models.WebSnippet{Title: r.Title, Body: r.Body, URL: r.Href})
		if len(snippets) >= h.config.MaxResults {
			break
		}
	}

	h.logger.Info("Web search completed", map[string]interface{}{
		"query":    query,
		"snippets": len(snippets),
	})
	return snippets, nil
}

type errStatus int

func (e errStatus) Error() string { return "search endpoint returned " + strconv.Itoa(int(e)) }

var vietnamesePattern = regexp.MustCompile(`(?i)[áàạảãăắằặẳẵâấầậẩẫéèẹẻẽêếềệểễíìịỉĩóòọỏõôốồộổỗơớờợởỡúùụủũưứừựửữýỳỵỷỹđ]`)

// FilterVietnamese keeps only snippets whose formatted text contains
// Vietnamese letters. Foreign-language results add noise the generation
// model then parrots back.
func FilterVietnamese(snippets []models.WebSnippet) []models.WebSnippet {
	var out []models.WebSnippet
	for _, s := range snippets {
		if vietnamesePattern.MatchString(s.Format()) {
			out = append(out, s)
		}
	}
	return out
}
