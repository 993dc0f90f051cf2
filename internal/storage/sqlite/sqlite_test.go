package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shalinipalla005/Walletwise/internal/models"
	"github.com/shalinipalla005/Walletwise/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createUser(t *testing.T, store *SQLiteStore, name, email string) *models.User {
	t.Helper()
	user := models.NewUser(name, email)
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	alice := createUser(t, store, "Alice", "alice@example.com")
	bob := createUser(t, store, "Bob", "bob@example.com")
	carol := createUser(t, store, "Carol", "carol@example.com")

	dinner := models.NewGroupExpense{
		Title:    "Dinner",
		Amount:   d("90.00"),
		PayerID:  alice.ID,
		Category: "Food",
		Date:     day("2024-06-01"),
		Shares: []models.ShareInput{
			{UserID: alice.ID, Amount: d("30.00")},
			{UserID: bob.ID, Amount: d("30.00")},
			{UserID: carol.ID, Amount: d("30.00")},
		},
	}

	t.Run("CreateGroupExpense stores expense and shares", func(t *testing.T) {
		id, err := store.CreateGroupExpense(ctx, dinner)
		require.NoError(t, err)
		require.NotZero(t, id)

		got, err := store.GetGroupExpense(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Dinner", got.Title)
		assert.True(t, got.Amount.Equal(d("90")))
		assert.Equal(t, "Alice", got.PayerName)
		assert.Equal(t, "INR", got.Currency)
		assert.Equal(t, day("2024-06-01"), got.Date)
		assert.False(t, got.IsSettled)
		require.Len(t, got.Shares, 3)

		own, ok := got.ShareFor(alice.ID)
		require.True(t, ok)
		assert.True(t, own.IsSettled, "payer's own share starts settled")
		assert.Equal(t, models.PayerSettlementMethod, own.SettlementMethod)

		bobShare, ok := got.ShareFor(bob.ID)
		require.True(t, ok)
		assert.False(t, bobShare.IsSettled)
		assert.Equal(t, "Bob", bobShare.UserName)
	})

	t.Run("CreateGroupExpense rejects unreconciled shares without writing", func(t *testing.T) {
		before, err := store.ListGroupExpenses(ctx, alice.ID, storage.ExpenseFilter{IncludeSettled: true})
		require.NoError(t, err)

		bad := dinner
		bad.Shares = []models.ShareInput{
			{UserID: alice.ID, Amount: d("60")},
			{UserID: bob.ID, Amount: d("39")},
		}
		bad.Amount = d("100")
		_, err = store.CreateGroupExpense(ctx, bad)
		require.Error(t, err)
		assert.True(t, models.IsValidation(err))

		after, err := store.ListGroupExpenses(ctx, alice.ID, storage.ExpenseFilter{IncludeSettled: true})
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("CreateGroupExpense rolls back when a share references an unknown user", func(t *testing.T) {
		before, err := store.ListGroupExpenses(ctx, alice.ID, storage.ExpenseFilter{IncludeSettled: true})
		require.NoError(t, err)

		bad := dinner
		bad.Shares = []models.ShareInput{
			{UserID: alice.ID, Amount: d("45")},
			{UserID: 9999, Amount: d("45")},
		}
		_, err = store.CreateGroupExpense(ctx, bad)
		require.Error(t, err)
		assert.True(t, models.IsValidation(err))

		after, err := store.ListGroupExpenses(ctx, alice.ID, storage.ExpenseFilter{IncludeSettled: true})
		require.NoError(t, err)
		assert.Len(t, after, len(before), "expense row inserted before the failing share is gone")
	})

	t.Run("expense paid only for the payer is settled immediately", func(t *testing.T) {
		solo := models.NewGroupExpense{
			Title:   "Coffee",
			Amount:  d("5"),
			PayerID: bob.ID,
			Date:    day("2024-06-02"),
			Shares:  []models.ShareInput{{UserID: bob.ID, Amount: d("5")}},
		}
		id, err := store.CreateGroupExpense(ctx, solo)
		require.NoError(t, err)

		got, err := store.GetGroupExpense(ctx, id)
		require.NoError(t, err)
		assert.True(t, got.IsSettled)
		assert.NotNil(t, got.SettledAt)
	})

	t.Run("GetGroupExpense missing returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetGroupExpense(ctx, 424242)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestSettleShare(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	alice := createUser(t, store, "Alice", "alice@example.com")
	bob := createUser(t, store, "Bob", "bob@example.com")
	carol := createUser(t, store, "Carol", "carol@example.com")

	id, err := store.CreateGroupExpense(ctx, models.NewGroupExpense{
		Title:    "Cab",
		Amount:   d("60"),
		PayerID:  alice.ID,
		Date:     day("2024-06-03"),
		Currency: "usd",
		Shares: []models.ShareInput{
			{UserID: alice.ID, Amount: d("20")},
			{UserID: bob.ID, Amount: d("20")},
			{UserID: carol.ID, Amount: d("20")},
		},
	})
	require.NoError(t, err)

	expense, err := store.GetGroupExpense(ctx, id)
	require.NoError(t, err)
	bobShare, _ := expense.ShareFor(bob.ID)
	carolShare, _ := expense.ShareFor(carol.ID)

	t.Run("only the share owner can settle", func(t *testing.T) {
		_, err := store.SettleShare(ctx, storage.SettleRequest{ShareID: bobShare.ID, UserID: carol.ID})
		assert.ErrorIs(t, err, storage.ErrForbidden)
	})

	t.Run("missing share", func(t *testing.T) {
		_, err := store.SettleShare(ctx, storage.SettleRequest{ShareID: 999, UserID: bob.ID})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("first settle leaves expense open", func(t *testing.T) {
		res, err := store.SettleShare(ctx, storage.SettleRequest{
			ShareID: bobShare.ID, UserID: bob.ID, Method: "upi", Reference: "ref-1",
		})
		require.NoError(t, err)
		assert.False(t, res.ExpenseSettled)
		assert.True(t, res.Share.IsSettled)
		assert.Equal(t, "upi", res.Share.SettlementMethod)
		assert.Equal(t, alice.ID, res.Settlement.ToUserID)
		assert.Equal(t, bob.ID, res.Settlement.FromUserID)
		assert.Equal(t, "USD", res.Settlement.Currency)
		assert.True(t, res.Settlement.Amount.Equal(d("20")))

		got, err := store.GetGroupExpense(ctx, id)
		require.NoError(t, err)
		assert.False(t, got.IsSettled)
	})

	t.Run("settling twice is rejected", func(t *testing.T) {
		_, err := store.SettleShare(ctx, storage.SettleRequest{ShareID: bobShare.ID, UserID: bob.ID})
		assert.ErrorIs(t, err, storage.ErrAlreadySettled)
	})

	t.Run("last settle cascades to the expense", func(t *testing.T) {
		res, err := store.SettleShare(ctx, storage.SettleRequest{ShareID: carolShare.ID, UserID: carol.ID})
		require.NoError(t, err)
		assert.True(t, res.ExpenseSettled)

		got, err := store.GetGroupExpense(ctx, id)
		require.NoError(t, err)
		assert.True(t, got.IsSettled)
		require.NotNil(t, got.SettledAt)
		for _, sh := range got.Shares {
			assert.True(t, sh.IsSettled, "share %d", sh.ID)
		}
	})

	t.Run("settlement history is visible to both sides", func(t *testing.T) {
		forAlice, err := store.ListSettlements(ctx, alice.ID, 0)
		require.NoError(t, err)
		assert.Len(t, forAlice, 2)

		forBob, err := store.ListSettlements(ctx, bob.ID, 10)
		require.NoError(t, err)
		require.Len(t, forBob, 1)
		assert.Equal(t, "ref-1", forBob[0].Reference)
	})

	t.Run("settled expenses are hidden unless requested", func(t *testing.T) {
		open, err := store.ListGroupExpenses(ctx, bob.ID, storage.ExpenseFilter{})
		require.NoError(t, err)
		assert.Empty(t, open)

		all, err := store.ListGroupExpenses(ctx, bob.ID, storage.ExpenseFilter{IncludeSettled: true})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestSettleShareConcurrent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	alice := createUser(t, store, "Alice", "alice@example.com")
	bob := createUser(t, store, "Bob", "bob@example.com")

	id, err := store.CreateGroupExpense(ctx, models.NewGroupExpense{
		Title:   "Tickets",
		Amount:  d("40"),
		PayerID: alice.ID,
		Date:    day("2024-06-04"),
		Shares: []models.ShareInput{
			{UserID: alice.ID, Amount: d("20")},
			{UserID: bob.ID, Amount: d("20")},
		},
	})
	require.NoError(t, err)
	share, err := store.FindUnsettledShare(ctx, id, bob.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.SettleShare(ctx, storage.SettleRequest{ShareID: share.ID, UserID: bob.ID})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, storage.ErrAlreadySettled)
	}
	assert.Equal(t, 1, succeeded)

	settlements, err := store.ListSettlements(ctx, bob.ID, 0)
	require.NoError(t, err)
	assert.Len(t, settlements, 1)
}

func TestDeleteGroupExpense(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	alice := createUser(t, store, "Alice", "alice@example.com")
	bob := createUser(t, store, "Bob", "bob@example.com")

	id, err := store.CreateGroupExpense(ctx, models.NewGroupExpense{
		Title:   "Groceries",
		Amount:  d("50"),
		PayerID: alice.ID,
		Date:    day("2024-06-05"),
		Shares: []models.ShareInput{
			{UserID: alice.ID, Amount: d("25")},
			{UserID: bob.ID, Amount: d("25")},
		},
	})
	require.NoError(t, err)

	err = store.DeleteGroupExpense(ctx, id, bob.ID)
	assert.ErrorIs(t, err, storage.ErrForbidden)

	_, err = store.GetGroupExpense(ctx, id)
	require.NoError(t, err, "expense survives a forbidden delete")

	require.NoError(t, store.DeleteGroupExpense(ctx, id, alice.ID))

	_, err = store.GetGroupExpense(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = store.DeleteGroupExpense(ctx, id, alice.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	unsettled, err := store.ListUnsettledForUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, unsettled, "shares go with the expense")
}

func TestDeleteGroupExpenseKeepsSettlements(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	alice := createUser(t, store, "Alice", "alice@example.com")
	bob := createUser(t, store, "Bob", "bob@example.com")
	carol := createUser(t, store, "Carol", "carol@example.com")

	id, err := store.CreateGroupExpense(ctx, models.NewGroupExpense{
		Title:   "Taxi",
		Amount:  d("30"),
		PayerID: alice.ID,
		Date:    day("2024-06-06"),
		Shares: []models.ShareInput{
			{UserID: alice.ID, Amount: d("10")},
			{UserID: bob.ID, Amount: d("10")},
			{UserID: carol.ID, Amount: d("10")},
		},
	})
	require.NoError(t, err)

	share, err := store.FindUnsettledShare(ctx, id, bob.ID)
	require.NoError(t, err)
	_, err = store.SettleShare(ctx, storage.SettleRequest{ShareID: share.ID, UserID: bob.ID, Method: "cash"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteGroupExpense(ctx, id, alice.ID))

	_, err = store.GetGroupExpense(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	for _, user := range []int64{alice.ID, bob.ID} {
		settlements, err := store.ListSettlements(ctx, user, 0)
		require.NoError(t, err)
		require.Len(t, settlements, 1)
		assert.Zero(t, settlements[0].ExpenseID, "settlement is detached from the deleted expense")
		assert.Equal(t, bob.ID, settlements[0].FromUserID)
		assert.Equal(t, alice.ID, settlements[0].ToUserID)
		assert.True(t, settlements[0].Amount.Equal(d("10")))
		assert.Equal(t, "cash", settlements[0].Method)
	}
}

func TestListQueries(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	alice := createUser(t, store, "Alice", "alice@example.com")
	bob := createUser(t, store, "Bob", "bob@example.com")

	mk := func(title, date string, payer, other int64) int64 {
		id, err := store.CreateGroupExpense(ctx, models.NewGroupExpense{
			Title:   title,
			Amount:  d("10"),
			PayerID: payer,
			Date:    day(date),
			Shares: []models.ShareInput{
				{UserID: payer, Amount: d("5")},
				{UserID: other, Amount: d("5")},
			},
		})
		require.NoError(t, err)
		return id
	}

	older := mk("Older", "2024-05-01", alice.ID, bob.ID)
	newer := mk("Newer", "2024-06-01", alice.ID, bob.ID)
	mk("Bob paid", "2024-06-10", bob.ID, alice.ID)

	t.Run("unsettled excludes shares where the user paid", func(t *testing.T) {
		got, err := store.ListUnsettledForUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newer, got[0].ExpenseID)
		assert.Equal(t, older, got[1].ExpenseID)
		assert.Equal(t, "Alice", got[0].PayerName)
		assert.True(t, got[0].ShareAmount.Equal(d("5")))
	})

	t.Run("list applies limit and since", func(t *testing.T) {
		got, err := store.ListGroupExpenses(ctx, alice.ID, storage.ExpenseFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Bob paid", got[0].Title)
		assert.Equal(t, "Newer", got[1].Title)

		got, err = store.ListGroupExpenses(ctx, alice.ID, storage.ExpenseFilter{Since: day("2024-05-15")})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		for _, e := range got {
			assert.Len(t, e.Shares, 2)
		}
	})

	t.Run("FindUnsettledShare", func(t *testing.T) {
		share, err := store.FindUnsettledShare(ctx, older, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, share.UserID)

		_, err = store.FindUnsettledShare(ctx, older, alice.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound, "payer share is already settled")
	})
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	carol := createUser(t, store, "Carol", "carol@example.com")
	alice := createUser(t, store, "Alice", "Alice@Example.com")
	bob := createUser(t, store, "Bob", "bob@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("Other", "alice@example.com"))
		assert.ErrorIs(t, err, storage.ErrDuplicate)
	})

	t.Run("lookup", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)

		got, err = store.GetUserByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bob", got.Name)

		_, err = store.GetUserByID(ctx, 777)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		users, err := store.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, []string{"Alice", "Bob", "Carol"}, []string{users[0].Name, users[1].Name, users[2].Name})
	})

	t.Run("referenced users cannot be deleted", func(t *testing.T) {
		_, err := store.CreateGroupExpense(ctx, models.NewGroupExpense{
			Title:   "Lunch",
			Amount:  d("20"),
			PayerID: alice.ID,
			Date:    day("2024-06-06"),
			Shares: []models.ShareInput{
				{UserID: alice.ID, Amount: d("10")},
				{UserID: bob.ID, Amount: d("10")},
			},
		})
		require.NoError(t, err)

		assert.ErrorIs(t, store.DeleteUser(ctx, bob.ID), storage.ErrUserReferenced)
		assert.ErrorIs(t, store.DeleteUser(ctx, alice.ID), storage.ErrUserReferenced)
	})

	t.Run("delete cascades personal data", func(t *testing.T) {
		require.NoError(t, store.SetBudget(ctx, models.Budget{UserID: carol.ID, YearMonth: "2024-06", Amount: d("100")}))
		require.NoError(t, store.AddTransaction(ctx, &models.Transaction{
			UserID: carol.ID, Amount: d("5"), Type: models.TransactionExpense, Date: day("2024-06-01"),
		}))

		require.NoError(t, store.DeleteUser(ctx, carol.ID))
		assert.ErrorIs(t, store.DeleteUser(ctx, carol.ID), storage.ErrNotFound)

		_, ok, err := store.GetBudget(ctx, carol.ID, "2024-06", "")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestFinance(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := createUser(t, store, "Alice", "alice@example.com")
	bob := createUser(t, store, "Bob", "bob@example.com")

	t.Run("budgets upsert", func(t *testing.T) {
		require.NoError(t, store.SetBudget(ctx, models.Budget{UserID: alice.ID, YearMonth: "2024-06", Amount: d("1000")}))
		require.NoError(t, store.SetBudget(ctx, models.Budget{UserID: alice.ID, YearMonth: "2024-06", Amount: d("1200")}))
		require.NoError(t, store.SetBudget(ctx, models.Budget{UserID: alice.ID, YearMonth: "2024-06", Category: "Food", Amount: d("300")}))

		amount, ok, err := store.GetBudget(ctx, alice.ID, "2024-06", "")
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, amount.Equal(d("1200")))

		budgets, err := store.ListBudgets(ctx, alice.ID, "2024-06")
		require.NoError(t, err)
		require.Len(t, budgets, 2)
		assert.Equal(t, "", budgets[0].Category)
		assert.Equal(t, "Food", budgets[1].Category)

		_, ok, err = store.GetBudget(ctx, alice.ID, "2024-07", "")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("transactions", func(t *testing.T) {
		salary := &models.Transaction{UserID: alice.ID, Amount: d("5000"), Type: models.TransactionIncome, Category: "Salary", Date: day("2024-06-01")}
		rent := &models.Transaction{UserID: alice.ID, Amount: d("1500"), Type: models.TransactionExpense, Category: "Rent", Date: day("2024-06-02")}
		misc := &models.Transaction{UserID: alice.ID, Amount: d("12.50"), Type: models.TransactionExpense, Date: day("2024-05-20")}
		for _, txn := range []*models.Transaction{salary, rent, misc} {
			require.NoError(t, store.AddTransaction(ctx, txn))
			require.NotZero(t, txn.ID)
		}

		all, err := store.ListTransactions(ctx, alice.ID, models.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, rent.ID, all[0].ID)
		assert.Equal(t, misc.ID, all[2].ID)

		june, err := store.ListTransactions(ctx, alice.ID, models.TransactionFilter{
			From: day("2024-06-01"), To: day("2024-06-30"), Type: models.TransactionExpense,
		})
		require.NoError(t, err)
		require.Len(t, june, 1)
		assert.Equal(t, rent.ID, june[0].ID)

		rent.Amount = d("1600")
		require.NoError(t, store.UpdateTransaction(ctx, rent))
		byCategory, err := store.ListTransactions(ctx, alice.ID, models.TransactionFilter{Category: "Rent"})
		require.NoError(t, err)
		require.Len(t, byCategory, 1)
		assert.True(t, byCategory[0].Amount.Equal(d("1600")))

		categories, err := store.DistinctCategories(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Rent", "Salary", "Uncategorized"}, categories)

		assert.ErrorIs(t, store.DeleteTransaction(ctx, salary.ID, bob.ID), storage.ErrNotFound)
		require.NoError(t, store.DeleteTransaction(ctx, salary.ID, alice.ID))
		assert.ErrorIs(t, store.DeleteTransaction(ctx, salary.ID, alice.ID), storage.ErrNotFound)
	})
}

func TestPing(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Ping(context.Background()))
}
