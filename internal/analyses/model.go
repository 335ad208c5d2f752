package analyses

import "time"

// Analysis is a persisted AI description of a photo. Each photo has at
// most one analysis; re-running with a different context overwrites it
// in place.
type Analysis struct {
	ID                string
	PhotoID           string
	UserContext       string
	LocationInfo      string
	HistoricalContext string
	FullResponse      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// View is the API shape of an analysis.
type View struct {
	ID                string    `json:"id"`
	PhotoID           string    `json:"photoId"`
	LocationInfo      string    `json:"locationInfo"`
	HistoricalContext string    `json:"historicalContext"`
	UserContext       string    `json:"userContext,omitempty"`
	FullResponse      string    `json:"fullResponse"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// BatchItem is the per-photo outcome of a batch run.
type BatchItem struct {
	PhotoID  string `json:"photoId"`
	Success  bool   `json:"success"`
	Analysis *View  `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BatchResult aggregates a batch run.
type BatchResult struct {
	Results   []BatchItem `json:"results"`
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

func toView(a Analysis) View {
	return View{
		ID:                a.ID,
		PhotoID:           a.PhotoID,
		LocationInfo:      a.LocationInfo,
		HistoricalContext: a.HistoricalContext,
		UserContext:       a.UserContext,
		FullResponse:      a.FullResponse,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
