package calculator

import (
	"sort"
	"time"

	"github.com/shalinipalla005/Walletwise/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultStatsDays is the statistics window when the caller passes zero.
const DefaultStatsDays = 30

// Counterparty is one line of an owes/owed-by breakdown.
type Counterparty struct {
	UserID int64
	Name   string
	Amount decimal.Decimal
}

// BalanceSummary is the "who owes whom" view for one user.
type BalanceSummary struct {
	TotalPaid       decimal.Decimal // Sum of expenses the user paid, settled or not
	TotalShare      decimal.Decimal // Sum of all of the user's shares
	TotalOwes       decimal.Decimal // Unsettled shares the user owes to other payers
	TotalOwedToUser decimal.Decimal // Unsettled shares others owe on expenses the user paid
	NetBalance      decimal.Decimal // TotalOwedToUser - TotalOwes

	OwesTo []Counterparty // Grouped by creditor (payer)
	OwedBy []Counterparty // Grouped by debtor
}

// CategoryStat is one category of ExpenseStatistics.
type CategoryStat struct {
	Category string
	Count    int
	Amount   decimal.Decimal
}

// ExpenseStatistics summarizes the expenses involving a user within a window.
type ExpenseStatistics struct {
	PeriodDays int
	Count      int
	Total      decimal.Decimal
	Categories []CategoryStat
}

// QuickStats is the dashboard summary for a user.
type QuickStats struct {
	RecentExpenses        int
	PendingToPay          decimal.Decimal
	PendingToReceive      decimal.Decimal
	NetBalance            decimal.Decimal
	TotalLifetimeExpenses int
	TotalLifetimePaid     decimal.Decimal
}

// CalculateBalanceSummary computes balances for userID across expenses.
// Expenses must carry all of their shares; expenses not involving the user
// are ignored.
//
// Algorithm:
// - Payer contributed the full amount of every expense they paid
// - Every share of the user adds to their footprint
// - Only unsettled shares between different users create a debt edge
func CalculateBalanceSummary(userID int64, expenses []*models.GroupExpense) BalanceSummary {
	summary := BalanceSummary{
		TotalPaid:       decimal.Zero,
		TotalShare:      decimal.Zero,
		TotalOwes:       decimal.Zero,
		TotalOwedToUser: decimal.Zero,
	}

	// creditors[payerID] / debtors[userID] accumulate the breakdown
	creditors := make(map[int64]*Counterparty)
	debtors := make(map[int64]*Counterparty)

	for _, e := range expenses {
		if !e.Involves(userID) {
			continue
		}
		if e.PayerID == userID {
			summary.TotalPaid = summary.TotalPaid.Add(e.Amount)
		}

		for _, share := range e.Shares {
			if share.UserID == userID {
				summary.TotalShare = summary.TotalShare.Add(share.Amount)
			}
			if share.IsSettled || share.UserID == e.PayerID {
				continue
			}

			switch {
			case share.UserID == userID:
				// User owes the payer
				accumulate(creditors, e.PayerID, e.PayerName, share.Amount)
				summary.TotalOwes = summary.TotalOwes.Add(share.Amount)
			case e.PayerID == userID:
				// Someone owes the user
				accumulate(debtors, share.UserID, share.UserName, share.Amount)
				summary.TotalOwedToUser = summary.TotalOwedToUser.Add(share.Amount)
			}
		}
	}

	summary.NetBalance = summary.TotalOwedToUser.Sub(summary.TotalOwes)
	summary.OwesTo = sortedCounterparties(creditors)
	summary.OwedBy = sortedCounterparties(debtors)
	return summary
}

// CalculateStatistics summarizes expenses involving userID dated on or after since.
// Each expense is counted once in Count and Total. A category's amount is the
// full expense amount when the user paid, otherwise the user's share.
func CalculateStatistics(userID int64, expenses []*models.GroupExpense, since time.Time, days int) ExpenseStatistics {
	stats := ExpenseStatistics{PeriodDays: days, Total: decimal.Zero}
	byCategory := make(map[string]*CategoryStat)

	for _, e := range expenses {
		if !e.Involves(userID) || e.Date.Before(since) {
			continue
		}
		stats.Count++
		stats.Total = stats.Total.Add(e.Amount)

		amount := decimal.Zero
		if e.PayerID == userID {
			amount = e.Amount
		} else if share, ok := e.ShareFor(userID); ok {
			amount = share.Amount
		}

		cat, exists := byCategory[e.Category]
		if !exists {
			cat = &CategoryStat{Category: e.Category, Amount: decimal.Zero}
			byCategory[e.Category] = cat
		}
		cat.Count++
		cat.Amount = cat.Amount.Add(amount)
	}

	stats.Categories = make([]CategoryStat, 0, len(byCategory))
	for _, c := range byCategory {
		stats.Categories = append(stats.Categories, *c)
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		a, b := stats.Categories[i], stats.Categories[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})
	return stats
}

// CalculateQuickStats builds the dashboard numbers from the full expense history.
func CalculateQuickStats(userID int64, expenses []*models.GroupExpense, recentSince time.Time) QuickStats {
	summary := CalculateBalanceSummary(userID, expenses)
	qs := QuickStats{
		PendingToPay:      summary.TotalOwes,
		PendingToReceive:  summary.TotalOwedToUser,
		NetBalance:        summary.NetBalance,
		TotalLifetimePaid: summary.TotalPaid,
	}
	for _, e := range expenses {
		if !e.Involves(userID) {
			continue
		}
		qs.TotalLifetimeExpenses++
		if !e.Date.Before(recentSince) {
			qs.RecentExpenses++
		}
	}
	return qs
}

// WindowStart returns the first calendar day of a window of days ending at now.
func WindowStart(now time.Time, days int) time.Time {
	if days <= 0 {
		days = DefaultStatsDays
	}
	return CivilDate(now).AddDate(0, 0, -days)
}

func accumulate(into map[int64]*Counterparty, userID int64, name string, amount decimal.Decimal) {
	if _, exists := into[userID]; !exists {
		into[userID] = &Counterparty{UserID: userID, Name: name, Amount: decimal.Zero}
	}
	into[userID].Amount = into[userID].Amount.Add(amount)
}

// sortedCounterparties orders by amount descending, then user id, so output is stable.
func sortedCounterparties(m map[int64]*Counterparty) []Counterparty {
	out := make([]Counterparty, 0, len(m))
	for _, c := range m {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
