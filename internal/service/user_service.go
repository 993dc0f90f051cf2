package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/shalinipalla005/Walletwise/internal/ledger"
)

// UserServiceName is the fully-qualified name of the RPC service for user lookups.
const UserServiceName = "walletwise.v1.UserService"

// Procedure paths of the UserService RPCs.
const (
	UserServiceListUsersProcedure      = "/" + UserServiceName + "/ListUsers"
	UserServiceGetCurrentUserProcedure = "/" + UserServiceName + "/GetCurrentUser"
)

// UserService exposes the people an expense can be shared with.
type UserService struct {
	ledger *ledger.Ledger
}

// NewUserService creates a new UserService over l.
func NewUserService(l *ledger.Ledger) *UserService {
	return &UserService{ledger: l}
}

// NewUserServiceHandler builds an HTTP handler serving every UserService procedure.
func NewUserServiceHandler(svc *UserService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(UserServiceListUsersProcedure, connect.NewUnaryHandler(UserServiceListUsersProcedure, svc.ListUsers, opts...))
	mux.Handle(UserServiceGetCurrentUserProcedure, connect.NewUnaryHandler(UserServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...))
	return "/" + UserServiceName + "/", mux
}

// ListUsers lists every registered user, ordered by name.
func (s *UserService) ListUsers(ctx context.Context, req *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}

	users, err := s.ledger.ListUsers(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}
	return connect.NewResponse(&ListUsersResponse{Users: out}), nil
}

// GetCurrentUser returns the authenticated caller.
func (s *UserService) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.ledger.GetUser(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&GetCurrentUserResponse{User: toUser(user)}), nil
}
