package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dmitrijs2005/gophguard/internal/common"
	"github.com/dmitrijs2005/gophguard/internal/profilerpc"
	"github.com/dmitrijs2005/gophguard/internal/server/models"
)

func toWire(p *models.Profile) profilerpc.Profile {
	return profilerpc.Profile{
		UserID:      p.UserID,
		Email:       p.Email,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		PhoneNumber: p.PhoneNumber,
	}
}

func fromWire(p profilerpc.Profile) *models.Profile {
	return &models.Profile{
		UserID:      p.UserID,
		Email:       p.Email,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		PhoneNumber: p.PhoneNumber,
	}
}

func (s *GRPCServer) FindByEmail(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	email, err := profilerpc.ParseFindByEmailRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	p, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return profilerpc.FindByEmailResponse(nil), nil
		}
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}

	w := toWire(p)
	return profilerpc.FindByEmailResponse(&w), nil
}

func (s *GRPCServer) Insert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := profilerpc.ProfileField(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	p, err := s.profiles.Insert(ctx, fromWire(in))
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, status.Error(codes.AlreadyExists, err.Error())
		}
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}

	subject, _ := SubjectFromContext(ctx)
	s.logger.Info(ctx, "Profile stored", "user_id", p.UserID, "subject", subject)
	return profilerpc.InsertResponse(toWire(p)), nil
}

func (s *GRPCServer) Delete(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	table, userID, err := profilerpc.ParseDeleteRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	n, err := s.profiles.Delete(ctx, table, userID)
	if err != nil {
		if errors.Is(err, common.ErrorIncorrectRequest) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "Rows deleted", "table", table, "user_id", userID, "count", n)
	return profilerpc.DeleteResponse(n), nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := s.profiles.Ping(ctx); err != nil {
		s.logger.Warn(ctx, "database ping failed", "error", err)
		return nil, status.Error(codes.Unavailable, "database unavailable")
	}
	return profilerpc.PingResponse(profilerpc.StatusOK), nil
}
