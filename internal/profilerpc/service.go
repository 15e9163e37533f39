// Package profilerpc declares the gRPC contract between the gophguard client
// and the profile store. Messages are google.protobuf.Struct values, so the
// service needs no generated code; the field names used in each message are
// listed next to the method constants.
package profilerpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "gophguard.profiles.ProfileStore"

// Full method names.
//
//	FindByEmail  {email}                 -> {found, profile}
//	Insert       {profile}               -> {profile}
//	Delete       {table, user_id}        -> {deleted}
//	Ping         {}                      -> {status}
const (
	FindByEmailMethod = "/" + ServiceName + "/FindByEmail"
	InsertMethod      = "/" + ServiceName + "/Insert"
	DeleteMethod      = "/" + ServiceName + "/Delete"
	PingMethod        = "/" + ServiceName + "/Ping"
)

// Tables accepted by Delete.
const (
	TableProfiles = "profiles"
	TableUserData = "user_data"
)

const StatusOK = "OK"

// ProfileStoreServer is implemented by the profile store.
type ProfileStoreServer interface {
	FindByEmail(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Insert(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Delete(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ProfileStoreClient is the client side of ProfileStoreServer.
type ProfileStoreClient interface {
	FindByEmail(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Insert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Delete(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type profileStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewProfileStoreClient(cc grpc.ClientConnInterface) ProfileStoreClient {
	return &profileStoreClient{cc: cc}
}

func (c *profileStoreClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *profileStoreClient) FindByEmail(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, FindByEmailMethod, in, opts)
}

func (c *profileStoreClient) Insert(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, InsertMethod, in, opts)
}

func (c *profileStoreClient) Delete(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DeleteMethod, in, opts)
}

func (c *profileStoreClient) Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PingMethod, in, opts)
}

type call func(ProfileStoreServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, fn call) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return fn(srv.(ProfileStoreServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return fn(srv.(ProfileStoreServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProfileStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FindByEmail", Handler: unaryHandler(FindByEmailMethod, ProfileStoreServer.FindByEmail)},
		{MethodName: "Insert", Handler: unaryHandler(InsertMethod, ProfileStoreServer.Insert)},
		{MethodName: "Delete", Handler: unaryHandler(DeleteMethod, ProfileStoreServer.Delete)},
		{MethodName: "Ping", Handler: unaryHandler(PingMethod, ProfileStoreServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "profilerpc",
}

func RegisterProfileStoreServer(s grpc.ServiceRegistrar, srv ProfileStoreServer) {
	s.RegisterService(&ServiceDesc, srv)
}
