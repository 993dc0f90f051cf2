package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/shalinipalla005/Walletwise/internal/ledger"
)

// Register mounts the ledger, finance and user services on mux.
func Register(mux *http.ServeMux, l *ledger.Ledger, opts ...connect.HandlerOption) {
	mux.Handle(NewLedgerServiceHandler(NewLedgerService(l), opts...))
	mux.Handle(NewFinanceServiceHandler(NewFinanceService(l), opts...))
	mux.Handle(NewUserServiceHandler(NewUserService(l), opts...))
}
