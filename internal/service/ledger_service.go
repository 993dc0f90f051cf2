package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/shalinipalla005/Walletwise/internal/ledger"
	"github.com/shalinipalla005/Walletwise/internal/models"
)

// LedgerServiceName is the fully-qualified name of the RPC service for the group-expense ledger.
const LedgerServiceName = "walletwise.v1.LedgerService"

// Procedure paths of the LedgerService RPCs.
const (
	LedgerServiceCreateGroupExpenseProcedure = "/" + LedgerServiceName + "/CreateGroupExpense"
	LedgerServiceGetGroupExpenseProcedure    = "/" + LedgerServiceName + "/GetGroupExpense"
	LedgerServiceDeleteGroupExpenseProcedure = "/" + LedgerServiceName + "/DeleteGroupExpense"
	LedgerServiceSettleShareProcedure        = "/" + LedgerServiceName + "/SettleShare"
	LedgerServiceSettleManyProcedure         = "/" + LedgerServiceName + "/SettleMany"
	LedgerServiceListGroupExpensesProcedure  = "/" + LedgerServiceName + "/ListGroupExpenses"
	LedgerServiceListUnsettledProcedure      = "/" + LedgerServiceName + "/ListUnsettled"
	LedgerServiceBalanceSummaryProcedure     = "/" + LedgerServiceName + "/BalanceSummary"
	LedgerServiceExpenseStatisticsProcedure  = "/" + LedgerServiceName + "/ExpenseStatistics"
	LedgerServiceQuickStatsProcedure         = "/" + LedgerServiceName + "/QuickStats"
	LedgerServiceListSettlementsProcedure    = "/" + LedgerServiceName + "/ListSettlements"
)

// LedgerService implements the Connect LedgerService. The acting user is
// always the authenticated caller.
type LedgerService struct {
	ledger *ledger.Ledger
}

// NewLedgerService creates a new LedgerService over l.
func NewLedgerService(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

// NewLedgerServiceHandler builds an HTTP handler serving every LedgerService
// procedure. It returns the path prefix to mount it on.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceCreateGroupExpenseProcedure, connect.NewUnaryHandler(LedgerServiceCreateGroupExpenseProcedure, svc.CreateGroupExpense, opts...))
	mux.Handle(LedgerServiceGetGroupExpenseProcedure, connect.NewUnaryHandler(LedgerServiceGetGroupExpenseProcedure, svc.GetGroupExpense, opts...))
	mux.Handle(LedgerServiceDeleteGroupExpenseProcedure, connect.NewUnaryHandler(LedgerServiceDeleteGroupExpenseProcedure, svc.DeleteGroupExpense, opts...))
	mux.Handle(LedgerServiceSettleShareProcedure, connect.NewUnaryHandler(LedgerServiceSettleShareProcedure, svc.SettleShare, opts...))
	mux.Handle(LedgerServiceSettleManyProcedure, connect.NewUnaryHandler(LedgerServiceSettleManyProcedure, svc.SettleMany, opts...))
	mux.Handle(LedgerServiceListGroupExpensesProcedure, connect.NewUnaryHandler(LedgerServiceListGroupExpensesProcedure, svc.ListGroupExpenses, opts...))
	mux.Handle(LedgerServiceListUnsettledProcedure, connect.NewUnaryHandler(LedgerServiceListUnsettledProcedure, svc.ListUnsettled, opts...))
	mux.Handle(LedgerServiceBalanceSummaryProcedure, connect.NewUnaryHandler(LedgerServiceBalanceSummaryProcedure, svc.BalanceSummary, opts...))
	mux.Handle(LedgerServiceExpenseStatisticsProcedure, connect.NewUnaryHandler(LedgerServiceExpenseStatisticsProcedure, svc.ExpenseStatistics, opts...))
	mux.Handle(LedgerServiceQuickStatsProcedure, connect.NewUnaryHandler(LedgerServiceQuickStatsProcedure, svc.QuickStats, opts...))
	mux.Handle(LedgerServiceListSettlementsProcedure, connect.NewUnaryHandler(LedgerServiceListSettlementsProcedure, svc.ListSettlements, opts...))
	return "/" + LedgerServiceName + "/", mux
}

// CreateGroupExpense records an expense paid by the caller.
func (s *LedgerService) CreateGroupExpense(ctx context.Context, req *connect.Request[CreateGroupExpenseRequest]) (*connect.Response[CreateGroupExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	date, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, toConnectError(err)
	}

	in := models.NewGroupExpense{
		Title:       req.Msg.Title,
		Amount:      req.Msg.Amount,
		PayerID:     userID,
		Category:    req.Msg.Category,
		Date:        date,
		Description: req.Msg.Description,
		Currency:    req.Msg.Currency,
	}

	var id int64
	switch {
	case len(req.Msg.SplitEquallyWith) > 0 && len(req.Msg.Shares) > 0:
		return nil, toConnectError(models.NewValidationError("shares", "give either shares or split_equally_with, not both"))
	case len(req.Msg.SplitEquallyWith) > 0:
		id, err = s.ledger.CreateEqualSplitExpense(ctx, in, req.Msg.SplitEquallyWith)
	default:
		for _, sh := range req.Msg.Shares {
			in.Shares = append(in.Shares, models.ShareInput{UserID: sh.UserID, Amount: sh.Amount})
		}
		id, err = s.ledger.CreateGroupExpense(ctx, in)
	}
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&CreateGroupExpenseResponse{ExpenseID: id}), nil
}

// GetGroupExpense returns one expense the caller is involved in.
func (s *LedgerService) GetGroupExpense(ctx context.Context, req *connect.Request[GetGroupExpenseRequest]) (*connect.Response[GetGroupExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := s.ledger.GetGroupExpense(ctx, userID, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&GetGroupExpenseResponse{Expense: toGroupExpense(expense)}), nil
}

// DeleteGroupExpense deletes an expense the caller paid for. Deleted is false
// when the expense is missing or belongs to another payer.
func (s *LedgerService) DeleteGroupExpense(ctx context.Context, req *connect.Request[DeleteGroupExpenseRequest]) (*connect.Response[DeleteGroupExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	deleted, err := s.ledger.DeleteGroupExpense(ctx, req.Msg.ExpenseID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&DeleteGroupExpenseResponse{Deleted: deleted}), nil
}

// SettleShare settles one of the caller's shares.
func (s *LedgerService) SettleShare(ctx context.Context, req *connect.Request[SettleShareRequest]) (*connect.Response[SettleShareResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	settled, err := s.ledger.SettleShare(ctx, req.Msg.ShareID, userID, req.Msg.Method, req.Msg.Reference)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&SettleShareResponse{Settled: settled}), nil
}

// SettleMany settles the caller's share on each listed expense.
func (s *LedgerService) SettleMany(ctx context.Context, req *connect.Request[SettleManyRequest]) (*connect.Response[SettleManyResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.ledger.SettleMany(ctx, userID, req.Msg.ExpenseIDs, req.Msg.Method, req.Msg.Reference)
	if err != nil {
		slog.ErrorContext(ctx, "SettleMany aborted",
			"user_id", userID,
			"settled_before_failure", result.SettledCount,
			"error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&SettleManyResponse{
		SettledCount:  result.SettledCount,
		FailedCount:   result.FailedCount,
		SettledAmount: result.SettledAmount,
	}), nil
}

// ListGroupExpenses lists expenses involving the caller, newest first.
func (s *LedgerService) ListGroupExpenses(ctx context.Context, req *connect.Request[ListGroupExpensesRequest]) (*connect.Response[ListGroupExpensesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.ledger.ListGroupExpenses(ctx, userID, req.Msg.Limit, req.Msg.IncludeSettled)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]GroupExpense, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toGroupExpense(e))
	}
	return connect.NewResponse(&ListGroupExpensesResponse{Expenses: out}), nil
}

// ListUnsettled lists what the caller still owes.
func (s *LedgerService) ListUnsettled(ctx context.Context, req *connect.Request[ListUnsettledRequest]) (*connect.Response[ListUnsettledResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	shares, err := s.ledger.ListUnsettledForUser(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]UnsettledShare, 0, len(shares))
	for _, u := range shares {
		out = append(out, toUnsettledShare(u))
	}
	return connect.NewResponse(&ListUnsettledResponse{Shares: out}), nil
}

// BalanceSummary returns the caller's balances.
func (s *LedgerService) BalanceSummary(ctx context.Context, req *connect.Request[BalanceSummaryRequest]) (*connect.Response[BalanceSummaryResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.ledger.BalanceSummary(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&BalanceSummaryResponse{
		TotalPaid:       summary.TotalPaid,
		TotalShare:      summary.TotalShare,
		TotalOwes:       summary.TotalOwes,
		TotalOwedToUser: summary.TotalOwedToUser,
		NetBalance:      summary.NetBalance,
		OwesTo:          toCounterparties(summary.OwesTo),
		OwedBy:          toCounterparties(summary.OwedBy),
	}), nil
}

// ExpenseStatistics returns the caller's windowed expense statistics.
func (s *LedgerService) ExpenseStatistics(ctx context.Context, req *connect.Request[ExpenseStatisticsRequest]) (*connect.Response[ExpenseStatisticsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.ledger.ExpenseStatistics(ctx, userID, req.Msg.Days)
	if err != nil {
		return nil, toConnectError(err)
	}

	categories := make([]CategoryStat, 0, len(stats.Categories))
	for _, c := range stats.Categories {
		categories = append(categories, CategoryStat{Category: c.Category, Count: c.Count, Amount: c.Amount})
	}
	return connect.NewResponse(&ExpenseStatisticsResponse{
		PeriodDays: stats.PeriodDays,
		Count:      stats.Count,
		Total:      stats.Total,
		Categories: categories,
	}), nil
}

// QuickStats returns the caller's dashboard figures.
func (s *LedgerService) QuickStats(ctx context.Context, req *connect.Request[QuickStatsRequest]) (*connect.Response[QuickStatsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	qs, err := s.ledger.QuickStats(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&QuickStatsResponse{
		RecentExpenses:        qs.RecentExpenses,
		PendingToPay:          qs.PendingToPay,
		PendingToReceive:      qs.PendingToReceive,
		NetBalance:            qs.NetBalance,
		TotalLifetimeExpenses: qs.TotalLifetimeExpenses,
		TotalLifetimePaid:     qs.TotalLifetimePaid,
	}), nil
}

// ListSettlements returns the caller's settlement history.
func (s *LedgerService) ListSettlements(ctx context.Context, req *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	settlements, err := s.ledger.ListSettlements(ctx, userID, req.Msg.Limit)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]Settlement, 0, len(settlements))
	for _, st := range settlements {
		out = append(out, toSettlement(st))
	}
	return connect.NewResponse(&ListSettlementsResponse{Settlements: out}), nil
}
