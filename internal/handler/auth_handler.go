package handler

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mindwell-api/internal/auth"
	"mindwell-api/internal/model"
	"mindwell-api/internal/store"
	wirev1 "mindwell-api/internal/wire/v1"
)

func (h *Handler) Register(ctx context.Context, req *wirev1.RegisterRequest) (*wirev1.RegisterResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "all fields required")
	}
	if len(req.Password) < 8 {
		return nil, status.Error(codes.InvalidArgument, "password too short")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, h.rpcError("register", err)
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
	}

	if err := h.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// dup email, but don't reveal that
			return nil, status.Error(codes.AlreadyExists, "registration failed")
		}
		return nil, h.rpcError("register", err)
	}

	tok, err := auth.MakeToken(u.ID, h.secret)
	if err != nil {
		return nil, h.rpcError("register", err)
	}

	return &wirev1.RegisterResponse{UserID: u.ID, Token: tok}, nil
}

func (h *Handler) Login(ctx context.Context, req *wirev1.LoginRequest) (*wirev1.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password required")
	}

	u, err := h.store.UserByEmail(ctx, req.Email)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}

	tok, err := auth.MakeToken(u.ID, h.secret)
	if err != nil {
		return nil, h.rpcError("login", err)
	}

	return &wirev1.LoginResponse{Token: tok, UserID: u.ID, Name: u.Name}, nil
}
