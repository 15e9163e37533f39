package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophguard/internal/auth"
	"github.com/dmitrijs2005/gophguard/internal/common"
	"github.com/dmitrijs2005/gophguard/internal/profilerpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceTokenTTL = time.Minute

// GRPCClient implements Repository against the profile store service.
type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      profilerpc.ProfileStoreClient
	secret      []byte
	subject     string
}

var _ Repository = (*GRPCClient)(nil)

func withServiceToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.ServiceTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// serviceTokenInterceptor mints a fresh short-lived token for every call.
func (c *GRPCClient) serviceTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	token, err := auth.GenerateToken(c.subject, common.ProfileStoreIssuer, c.secret, serviceTokenTTL)
	if err != nil {
		return fmt.Errorf("sign service token: %w", err)
	}
	return invoker(withServiceToken(ctx, token), method, req, reply, cc, opts...)
}

// NewGRPCClient connects lazily to endpointURL. subject identifies this
// device in service tokens. Extra dial options are appended after the
// defaults (insecure transport, token interceptor).
func NewGRPCClient(endpointURL string, secret []byte, subject string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, secret: secret, subject: subject}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.serviceTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = profilerpc.NewProfileStoreClient(conn)
	return c, nil
}

func toWire(p *UserProfile) profilerpc.Profile {
	return profilerpc.Profile{
		UserID:      p.ID,
		Email:       p.Email,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		PhoneNumber: p.PhoneNumber,
	}
}

func fromWire(p profilerpc.Profile) *UserProfile {
	return &UserProfile{
		ID:          p.UserID,
		Email:       p.Email,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		PhoneNumber: p.PhoneNumber,
	}
}

func (c *GRPCClient) FindByEmail(ctx context.Context, email string) (*UserProfile, error) {
	resp, err := c.client.FindByEmail(ctx, profilerpc.FindByEmailRequest(email))
	if err != nil {
		return nil, mapError("find", err)
	}

	p, err := profilerpc.ParseFindByEmailResponse(resp)
	if err != nil {
		return nil, &RemoteError{Kind: KindOther, Op: "find", Err: err}
	}
	if p == nil {
		return nil, nil
	}
	return fromWire(*p), nil
}

func (c *GRPCClient) Insert(ctx context.Context, p *UserProfile) (*UserProfile, error) {
	resp, err := c.client.Insert(ctx, profilerpc.InsertRequest(toWire(p)))
	if err != nil {
		return nil, mapError("insert", err)
	}

	stored, err := profilerpc.ProfileField(resp)
	if err != nil {
		return nil, &RemoteError{Kind: KindOther, Op: "insert", Err: err}
	}
	return fromWire(stored), nil
}

func (c *GRPCClient) delete(ctx context.Context, table, userID string) error {
	if _, err := c.client.Delete(ctx, profilerpc.DeleteRequest(table, userID)); err != nil {
		return mapError("delete "+table, err)
	}
	return nil
}

func (c *GRPCClient) DeleteUserData(ctx context.Context, userID string) error {
	return c.delete(ctx, profilerpc.TableUserData, userID)
}

func (c *GRPCClient) DeleteProfile(ctx context.Context, userID string) error {
	return c.delete(ctx, profilerpc.TableProfiles, userID)
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := c.client.Ping(ctx, &structpb.Struct{})
	if err != nil {
		return mapError("ping", err)
	}
	if profilerpc.PingStatus(resp) != profilerpc.StatusOK {
		return &RemoteError{Kind: KindOther, Op: "ping", Err: ErrUnavailable}
	}
	return nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.AlreadyExists:
		return &RemoteError{Kind: KindUniqueViolation, Op: op, Err: errors.New(st.Message())}
	case codes.Unavailable, codes.DeadlineExceeded:
		return &RemoteError{Kind: KindOther, Op: op, Err: ErrUnavailable}
	case codes.Unauthenticated, codes.PermissionDenied:
		return &RemoteError{Kind: KindOther, Op: op, Err: ErrUnauthorized}
	default:
		return &RemoteError{Kind: KindOther, Op: op, Err: fmt.Errorf("rpc error: %w", err)}
	}
}
