package service

import (
	"context"

	"connectrpc.com/connect"
)

// LedgerServiceClient calls the LedgerService procedures.
type LedgerServiceClient struct {
	createGroupExpense *connect.Client[CreateGroupExpenseRequest, CreateGroupExpenseResponse]
	getGroupExpense    *connect.Client[GetGroupExpenseRequest, GetGroupExpenseResponse]
	deleteGroupExpense *connect.Client[DeleteGroupExpenseRequest, DeleteGroupExpenseResponse]
	settleShare        *connect.Client[SettleShareRequest, SettleShareResponse]
	settleMany         *connect.Client[SettleManyRequest, SettleManyResponse]
	listGroupExpenses  *connect.Client[ListGroupExpensesRequest, ListGroupExpensesResponse]
	listUnsettled      *connect.Client[ListUnsettledRequest, ListUnsettledResponse]
	balanceSummary     *connect.Client[BalanceSummaryRequest, BalanceSummaryResponse]
	expenseStatistics  *connect.Client[ExpenseStatisticsRequest, ExpenseStatisticsResponse]
	quickStats         *connect.Client[QuickStatsRequest, QuickStatsResponse]
	listSettlements    *connect.Client[ListSettlementsRequest, ListSettlementsResponse]
}

// NewLedgerServiceClient creates a client for the LedgerService at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	opts = clientOptions(opts)
	return &LedgerServiceClient{
		createGroupExpense: connect.NewClient[CreateGroupExpenseRequest, CreateGroupExpenseResponse](httpClient, baseURL+LedgerServiceCreateGroupExpenseProcedure, opts...),
		getGroupExpense:    connect.NewClient[GetGroupExpenseRequest, GetGroupExpenseResponse](httpClient, baseURL+LedgerServiceGetGroupExpenseProcedure, opts...),
		deleteGroupExpense: connect.NewClient[DeleteGroupExpenseRequest, DeleteGroupExpenseResponse](httpClient, baseURL+LedgerServiceDeleteGroupExpenseProcedure, opts...),
		settleShare:        connect.NewClient[SettleShareRequest, SettleShareResponse](httpClient, baseURL+LedgerServiceSettleShareProcedure, opts...),
		settleMany:         connect.NewClient[SettleManyRequest, SettleManyResponse](httpClient, baseURL+LedgerServiceSettleManyProcedure, opts...),
		listGroupExpenses:  connect.NewClient[ListGroupExpensesRequest, ListGroupExpensesResponse](httpClient, baseURL+LedgerServiceListGroupExpensesProcedure, opts...),
		listUnsettled:      connect.NewClient[ListUnsettledRequest, ListUnsettledResponse](httpClient, baseURL+LedgerServiceListUnsettledProcedure, opts...),
		balanceSummary:     connect.NewClient[BalanceSummaryRequest, BalanceSummaryResponse](httpClient, baseURL+LedgerServiceBalanceSummaryProcedure, opts...),
		expenseStatistics:  connect.NewClient[ExpenseStatisticsRequest, ExpenseStatisticsResponse](httpClient, baseURL+LedgerServiceExpenseStatisticsProcedure, opts...),
		quickStats:         connect.NewClient[QuickStatsRequest, QuickStatsResponse](httpClient, baseURL+LedgerServiceQuickStatsProcedure, opts...),
		listSettlements:    connect.NewClient[ListSettlementsRequest, ListSettlementsResponse](httpClient, baseURL+LedgerServiceListSettlementsProcedure, opts...),
	}
}

func (c *LedgerServiceClient) CreateGroupExpense(ctx context.Context, req *connect.Request[CreateGroupExpenseRequest]) (*connect.Response[CreateGroupExpenseResponse], error) {
	return c.createGroupExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetGroupExpense(ctx context.Context, req *connect.Request[GetGroupExpenseRequest]) (*connect.Response[GetGroupExpenseResponse], error) {
	return c.getGroupExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteGroupExpense(ctx context.Context, req *connect.Request[DeleteGroupExpenseRequest]) (*connect.Response[DeleteGroupExpenseResponse], error) {
	return c.deleteGroupExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SettleShare(ctx context.Context, req *connect.Request[SettleShareRequest]) (*connect.Response[SettleShareResponse], error) {
	return c.settleShare.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SettleMany(ctx context.Context, req *connect.Request[SettleManyRequest]) (*connect.Response[SettleManyResponse], error) {
	return c.settleMany.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListGroupExpenses(ctx context.Context, req *connect.Request[ListGroupExpensesRequest]) (*connect.Response[ListGroupExpensesResponse], error) {
	return c.listGroupExpenses.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListUnsettled(ctx context.Context, req *connect.Request[ListUnsettledRequest]) (*connect.Response[ListUnsettledResponse], error) {
	return c.listUnsettled.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) BalanceSummary(ctx context.Context, req *connect.Request[BalanceSummaryRequest]) (*connect.Response[BalanceSummaryResponse], error) {
	return c.balanceSummary.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ExpenseStatistics(ctx context.Context, req *connect.Request[ExpenseStatisticsRequest]) (*connect.Response[ExpenseStatisticsResponse], error) {
	return c.expenseStatistics.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) QuickStats(ctx context.Context, req *connect.Request[QuickStatsRequest]) (*connect.Response[QuickStatsResponse], error) {
	return c.quickStats.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListSettlements(ctx context.Context, req *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

// FinanceServiceClient calls the FinanceService procedures.
type FinanceServiceClient struct {
	setBudget         *connect.Client[SetBudgetRequest, SetBudgetResponse]
	getBudget         *connect.Client[GetBudgetRequest, GetBudgetResponse]
	listBudgets       *connect.Client[ListBudgetsRequest, ListBudgetsResponse]
	addTransaction    *connect.Client[AddTransactionRequest, AddTransactionResponse]
	updateTransaction *connect.Client[UpdateTransactionRequest, UpdateTransactionResponse]
	deleteTransaction *connect.Client[DeleteTransactionRequest, DeleteTransactionResponse]
	listTransactions  *connect.Client[ListTransactionsRequest, ListTransactionsResponse]
	listCategories    *connect.Client[ListCategoriesRequest, ListCategoriesResponse]
}

// NewFinanceServiceClient creates a client for the FinanceService at baseURL.
func NewFinanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *FinanceServiceClient {
	opts = clientOptions(opts)
	return &FinanceServiceClient{
		setBudget:         connect.NewClient[SetBudgetRequest, SetBudgetResponse](httpClient, baseURL+FinanceServiceSetBudgetProcedure, opts...),
		getBudget:         connect.NewClient[GetBudgetRequest, GetBudgetResponse](httpClient, baseURL+FinanceServiceGetBudgetProcedure, opts...),
		listBudgets:       connect.NewClient[ListBudgetsRequest, ListBudgetsResponse](httpClient, baseURL+FinanceServiceListBudgetsProcedure, opts...),
		addTransaction:    connect.NewClient[AddTransactionRequest, AddTransactionResponse](httpClient, baseURL+FinanceServiceAddTransactionProcedure, opts...),
		updateTransaction: connect.NewClient[UpdateTransactionRequest, UpdateTransactionResponse](httpClient, baseURL+FinanceServiceUpdateTransactionProcedure, opts...),
		deleteTransaction: connect.NewClient[DeleteTransactionRequest, DeleteTransactionResponse](httpClient, baseURL+FinanceServiceDeleteTransactionProcedure, opts...),
		listTransactions:  connect.NewClient[ListTransactionsRequest, ListTransactionsResponse](httpClient, baseURL+FinanceServiceListTransactionsProcedure, opts...),
		listCategories:    connect.NewClient[ListCategoriesRequest, ListCategoriesResponse](httpClient, baseURL+FinanceServiceListCategoriesProcedure, opts...),
	}
}

func (c *FinanceServiceClient) SetBudget(ctx context.Context, req *connect.Request[SetBudgetRequest]) (*connect.Response[SetBudgetResponse], error) {
	return c.setBudget.CallUnary(ctx, req)
}

func (c *FinanceServiceClient) GetBudget(ctx context.Context, req *connect.Request[GetBudgetRequest]) (*connect.Response[GetBudgetResponse], error) {
	return c.getBudget.CallUnary(ctx, req)
}

func (c *FinanceServiceClient) ListBudgets(ctx context.Context, req *connect.Request[ListBudgetsRequest]) (*connect.Response[ListBudgetsResponse], error) {
	return c.listBudgets.CallUnary(ctx, req)
}

func (c *FinanceServiceClient) AddTransaction(ctx context.Context, req *connect.Request[AddTransactionRequest]) (*connect.Response[AddTransactionResponse], error) {
	return c.addTransaction.CallUnary(ctx, req)
}

func (c *FinanceServiceClient) UpdateTransaction(ctx context.Context, req *connect.Request[UpdateTransactionRequest]) (*connect.Response[UpdateTransactionResponse], error) {
	return c.updateTransaction.CallUnary(ctx, req)
}

func (c *FinanceServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}

func (c *FinanceServiceClient) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *FinanceServiceClient) ListCategories(ctx context.Context, req *connect.Request[ListCategoriesRequest]) (*connect.Response[ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

// UserServiceClient calls the UserService procedures.
type UserServiceClient struct {
	listUsers      *connect.Client[ListUsersRequest, ListUsersResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
}

// NewUserServiceClient creates a client for the UserService at baseURL.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *UserServiceClient {
	opts = clientOptions(opts)
	return &UserServiceClient{
		listUsers:      connect.NewClient[ListUsersRequest, ListUsersResponse](httpClient, baseURL+UserServiceListUsersProcedure, opts...),
		getCurrentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+UserServiceGetCurrentUserProcedure, opts...),
	}
}

func (c *UserServiceClient) ListUsers(ctx context.Context, req *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *UserServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}
