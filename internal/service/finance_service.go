package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/shalinipalla005/Walletwise/internal/ledger"
	"github.com/shalinipalla005/Walletwise/internal/models"
)

// FinanceServiceName is the fully-qualified name of the RPC service for budgets and personal transactions.
const FinanceServiceName = "walletwise.v1.FinanceService"

// Procedure paths of the FinanceService RPCs.
const (
	FinanceServiceSetBudgetProcedure         = "/" + FinanceServiceName + "/SetBudget"
	FinanceServiceGetBudgetProcedure         = "/" + FinanceServiceName + "/GetBudget"
	FinanceServiceListBudgetsProcedure       = "/" + FinanceServiceName + "/ListBudgets"
	FinanceServiceAddTransactionProcedure    = "/" + FinanceServiceName + "/AddTransaction"
	FinanceServiceUpdateTransactionProcedure = "/" + FinanceServiceName + "/UpdateTransaction"
	FinanceServiceDeleteTransactionProcedure = "/" + FinanceServiceName + "/DeleteTransaction"
	FinanceServiceListTransactionsProcedure  = "/" + FinanceServiceName + "/ListTransactions"
	FinanceServiceListCategoriesProcedure    = "/" + FinanceServiceName + "/ListCategories"
)

// FinanceService implements the Connect FinanceService for personal budgets
// and transactions.
type FinanceService struct {
	ledger *ledger.Ledger
}

// NewFinanceService creates a new FinanceService over l.
func NewFinanceService(l *ledger.Ledger) *FinanceService {
	return &FinanceService{ledger: l}
}

// NewFinanceServiceHandler builds an HTTP handler serving every FinanceService procedure.
func NewFinanceServiceHandler(svc *FinanceService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(FinanceServiceSetBudgetProcedure, connect.NewUnaryHandler(FinanceServiceSetBudgetProcedure, svc.SetBudget, opts...))
	mux.Handle(FinanceServiceGetBudgetProcedure, connect.NewUnaryHandler(FinanceServiceGetBudgetProcedure, svc.GetBudget, opts...))
	mux.Handle(FinanceServiceListBudgetsProcedure, connect.NewUnaryHandler(FinanceServiceListBudgetsProcedure, svc.ListBudgets, opts...))
	mux.Handle(FinanceServiceAddTransactionProcedure, connect.NewUnaryHandler(FinanceServiceAddTransactionProcedure, svc.AddTransaction, opts...))
	mux.Handle(FinanceServiceUpdateTransactionProcedure, connect.NewUnaryHandler(FinanceServiceUpdateTransactionProcedure, svc.UpdateTransaction, opts...))
	mux.Handle(FinanceServiceDeleteTransactionProcedure, connect.NewUnaryHandler(FinanceServiceDeleteTransactionProcedure, svc.DeleteTransaction, opts...))
	mux.Handle(FinanceServiceListTransactionsProcedure, connect.NewUnaryHandler(FinanceServiceListTransactionsProcedure, svc.ListTransactions, opts...))
	mux.Handle(FinanceServiceListCategoriesProcedure, connect.NewUnaryHandler(FinanceServiceListCategoriesProcedure, svc.ListCategories, opts...))
	return "/" + FinanceServiceName + "/", mux
}

func (s *FinanceService) SetBudget(ctx context.Context, req *connect.Request[SetBudgetRequest]) (*connect.Response[SetBudgetResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	err = s.ledger.SetBudget(ctx, models.Budget{
		UserID:    userID,
		YearMonth: req.Msg.Budget.YearMonth,
		Category:  req.Msg.Budget.Category,
		Amount:    req.Msg.Budget.Amount,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&SetBudgetResponse{}), nil
}

func (s *FinanceService) GetBudget(ctx context.Context, req *connect.Request[GetBudgetRequest]) (*connect.Response[GetBudgetResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	amount, ok, err := s.ledger.GetBudget(ctx, userID, req.Msg.YearMonth, req.Msg.Category)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&GetBudgetResponse{Amount: amount, IsSet: ok}), nil
}

func (s *FinanceService) ListBudgets(ctx context.Context, req *connect.Request[ListBudgetsRequest]) (*connect.Response[ListBudgetsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	budgets, err := s.ledger.ListBudgets(ctx, userID, req.Msg.YearMonth)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]Budget, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, Budget{YearMonth: b.YearMonth, Category: b.Category, Amount: b.Amount})
	}
	return connect.NewResponse(&ListBudgetsResponse{Budgets: out}), nil
}

func (s *FinanceService) AddTransaction(ctx context.Context, req *connect.Request[AddTransactionRequest]) (*connect.Response[AddTransactionResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := fromTransaction(userID, req.Msg.Transaction)
	if err != nil {
		return nil, toConnectError(err)
	}
	txn.ID = 0
	if err := s.ledger.AddTransaction(ctx, txn); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&AddTransactionResponse{TransactionID: txn.ID}), nil
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, req *connect.Request[UpdateTransactionRequest]) (*connect.Response[UpdateTransactionResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := fromTransaction(userID, req.Msg.Transaction)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.ledger.UpdateTransaction(ctx, txn); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&UpdateTransactionResponse{}), nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, req *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.DeleteTransaction(ctx, req.Msg.TransactionID, userID); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&DeleteTransactionResponse{}), nil
}

func (s *FinanceService) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	from, err := parseDate("from", req.Msg.From)
	if err != nil {
		return nil, toConnectError(err)
	}
	to, err := parseDate("to", req.Msg.To)
	if err != nil {
		return nil, toConnectError(err)
	}

	txns, err := s.ledger.ListTransactions(ctx, userID, models.TransactionFilter{
		From:     from,
		To:       to,
		Category: req.Msg.Category,
		Type:     models.TransactionType(req.Msg.Type),
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransaction(t))
	}
	return connect.NewResponse(&ListTransactionsResponse{Transactions: out}), nil
}

func (s *FinanceService) ListCategories(ctx context.Context, req *connect.Request[ListCategoriesRequest]) (*connect.Response[ListCategoriesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.ledger.DistinctCategories(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if categories == nil {
		categories = []string{}
	}

	return connect.NewResponse(&ListCategoriesResponse{Categories: categories}), nil
}
