package dto

import "tarifario/internal/domain/pricing"

type NightPrice struct {
	Date       string `json:"date"`
	PriceCents int64  `json:"price_cents"`
	RuleID     string `json:"rule_id,omitempty"`
	RuleName   string `json:"rule_name"`
}

type StayQuote struct {
	UnitID               string       `json:"unit_id"`
	CheckIn              string       `json:"check_in"`
	CheckOut             string       `json:"check_out"`
	Currency             string       `json:"currency"`
	Nights               []NightPrice `json:"nights"`
	NightCount           int          `json:"night_count"`
	TotalCents           int64        `json:"total_cents"`
	AveragePerNightCents int64        `json:"average_per_night_cents"`
	UnmatchedNights      int          `json:"unmatched_nights"`
}

func NewStayQuote(unitID string, quote pricing.StayQuote) StayQuote {
	out := StayQuote{
		UnitID:               unitID,
		CheckIn:              quote.Range.CheckIn.Format(DateLayout),
		CheckOut:             quote.Range.CheckOut.Format(DateLayout),
		Currency:             quote.Total.Currency,
		Nights:               make([]NightPrice, 0, len(quote.Nights)),
		NightCount:           quote.NightCount,
		TotalCents:           quote.Total.Amount,
		AveragePerNightCents: quote.AveragePerNight.Amount,
		UnmatchedNights:      quote.UnmatchedNights,
	}
	for _, night := range quote.Nights {
		out.Nights = append(out.Nights, NightPrice{
			Date:       night.Date.Format(DateLayout),
			PriceCents: night.Price.Amount,
			RuleID:     string(night.RuleID),
			RuleName:   night.RuleName,
		})
	}
	return out
}
