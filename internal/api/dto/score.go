package dto

type DonationInput struct {
	IsVeg         bool  `json:"is_veg"`
	QuantityMeals int   `json:"quantity_meals"`
	Location      Point `json:"location"`
}

type RequestInput struct {
	PrefersVeg bool  `json:"prefers_veg"`
	NeedMeals  int   `json:"need_meals"`
	Location   Point `json:"location"`
}

// ScoreRequest scores either an ad hoc pair (Donation and Request) or a stored
// pair (DonationID and RequestID). The two forms cannot be mixed.
type ScoreRequest struct {
	Donation   *DonationInput `json:"donation"`
	Request    *RequestInput  `json:"request"`
	DonationID *int           `json:"donation_id"`
	RequestID  *int           `json:"request_id"`
}

type ScoreResponse struct {
	Score       float64             `json:"score"`
	Explanation ExplanationResponse `json:"explanation"`
	Reason      string              `json:"reason"`
}

type SuggestionResponse struct {
	RequestID int `json:"request_id"`
	ScoreResponse
}

type SuggestionsResponse struct {
	DonationID  int                  `json:"donation_id"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}
