package pricing

import (
	"errors"
	"time"

	"tarifario/internal/domain/shared/daterange"
	"tarifario/internal/domain/shared/money"
)

// ErrInvalidDateRange rejects stays where checkout is not after checkin.
var ErrInvalidDateRange = errors.New("pricing: checkout must be after checkin")

// NoRuleName labels nights no active rule covers. The calculator prices them
// at zero instead of failing: partial rule coverage is an expected transient
// state while a unit is being configured, and operators use this sentinel to
// spot the gaps.
const NoRuleName = "Sem regra"

// NightPrice is the outcome for a single stayed night.
type NightPrice struct {
	Date     time.Time
	Price    money.Money
	RuleID   RuleID
	RuleName string
}

// Matched reports whether some rule covered the night.
func (n NightPrice) Matched() bool {
	return n.RuleID != ""
}

// StayQuote is the full result of pricing one stay.
type StayQuote struct {
	Range           daterange.StayRange
	Nights          []NightPrice
	NightCount      int
	Total           money.Money
	AveragePerNight money.Money
	UnmatchedNights int
}

// CalculateStay prices every night between checkIn (inclusive) and checkOut
// (exclusive) against the unit's rule set. The rules slice may arrive in any
// order and may contain inactive entries; it is filtered and sorted once and
// never mutated, so every night of one calculation sees the same snapshot.
// Rule prices must share the unit currency.
func CalculateStay(currency string, rules []*Rule, checkIn, checkOut time.Time) (StayQuote, error) {
	stay, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return StayQuote{}, ErrInvalidDateRange
	}

	sorted := SortRules(ActiveRules(rules))

	quote := StayQuote{
		Range:  stay,
		Nights: make([]NightPrice, 0, stay.Nights()),
		Total:  money.Zero(currency),
	}

	var walkErr error
	stay.EachNight(func(night time.Time) {
		if walkErr != nil {
			return
		}
		entry := NightPrice{
			Date:     night,
			Price:    money.Zero(currency),
			RuleName: NoRuleName,
		}
		if rule, ok := SelectRule(sorted, night); ok {
			entry.Price = rule.BasePrice
			entry.RuleID = rule.ID
			entry.RuleName = rule.Name
		} else {
			quote.UnmatchedNights++
		}
		total, err := quote.Total.Add(entry.Price)
		if err != nil {
			walkErr = err
			return
		}
		quote.Total = total
		quote.Nights = append(quote.Nights, entry)
	})
	if walkErr != nil {
		return StayQuote{}, walkErr
	}

	quote.NightCount = len(quote.Nights)
	average, err := quote.Total.Divide(int64(quote.NightCount))
	if err != nil {
		return StayQuote{}, err
	}
	quote.AveragePerNight = average
	return quote, nil
}
