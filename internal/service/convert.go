package service

import (
	"github.com/shalinipalla005/Walletwise/internal/calculator"
	"github.com/shalinipalla005/Walletwise/internal/models"
)

func toGroupExpense(e *models.GroupExpense) GroupExpense {
	out := GroupExpense{
		ID:          e.ID,
		Title:       e.Title,
		Amount:      e.Amount,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		Category:    e.Category,
		Date:        e.Date.Format(models.DateLayout),
		Description: e.Description,
		Currency:    e.Currency,
		IsSettled:   e.IsSettled,
		SettledAt:   e.SettledAt,
		CreatedAt:   e.CreatedAt,
		Shares:      make([]ExpenseShare, 0, len(e.Shares)),
	}
	for _, s := range e.Shares {
		out.Shares = append(out.Shares, ExpenseShare{
			ID:                  s.ID,
			UserID:              s.UserID,
			UserName:            s.UserName,
			Amount:              s.Amount,
			IsSettled:           s.IsSettled,
			SettledAt:           s.SettledAt,
			SettlementMethod:    s.SettlementMethod,
			SettlementReference: s.SettlementReference,
		})
	}
	return out
}

func toUnsettledShare(u models.UnsettledShare) UnsettledShare {
	return UnsettledShare{
		ExpenseID:   u.ExpenseID,
		Title:       u.Title,
		TotalAmount: u.TotalAmount,
		Currency:    u.Currency,
		PayerID:     u.PayerID,
		PayerName:   u.PayerName,
		ShareID:     u.ShareID,
		ShareAmount: u.ShareAmount,
		Date:        u.Date.Format(models.DateLayout),
	}
}

func toCounterparties(in []calculator.Counterparty) []Counterparty {
	out := make([]Counterparty, 0, len(in))
	for _, c := range in {
		out = append(out, Counterparty{UserID: c.UserID, Name: c.Name, Amount: c.Amount})
	}
	return out
}

func toSettlement(s models.Settlement) Settlement {
	return Settlement{
		ID:         s.ID,
		ExpenseID:  s.ExpenseID,
		ShareID:    s.ShareID,
		FromUserID: s.FromUserID,
		ToUserID:   s.ToUserID,
		Amount:     s.Amount,
		Currency:   s.Currency,
		Method:     s.Method,
		Reference:  s.Reference,
		SettledAt:  s.SettledAt,
	}
}

func toTransaction(t *models.Transaction) Transaction {
	return Transaction{
		ID:            t.ID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Category:      t.Category,
		Date:          t.Date.Format(models.DateLayout),
		Description:   t.Description,
		PaymentMethod: t.PaymentMethod,
		Tags:          t.Tags,
	}
}

func fromTransaction(userID int64, t Transaction) (*models.Transaction, error) {
	date, err := parseDate("date", t.Date)
	if err != nil {
		return nil, err
	}
	return &models.Transaction{
		ID:            t.ID,
		UserID:        userID,
		Amount:        t.Amount,
		Type:          models.TransactionType(t.Type),
		Category:      t.Category,
		Date:          date,
		Description:   t.Description,
		PaymentMethod: t.PaymentMethod,
		Tags:          t.Tags,
	}, nil
}

func toUser(u *models.User) User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email}
}
