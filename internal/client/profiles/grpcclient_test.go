package profiles

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophguard/internal/auth"
	"github.com/dmitrijs2005/gophguard/internal/common"
	"github.com/dmitrijs2005/gophguard/internal/profilerpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

var testSecret = []byte("shared-secret")

// fakeStore is an in-memory ProfileStoreServer.
type fakeStore struct {
	mu       sync.Mutex
	byEmail  map[string]profilerpc.Profile
	deleted  []string
	subjects []string

	failWith error
	pingStat string
}

func newFakeStore() *fakeStore {
	return &fakeStore{byEmail: map[string]profilerpc.Profile{}, pingStat: profilerpc.StatusOK}
}

func (f *fakeStore) FindByEmail(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byEmail[in.GetFields()["email"].GetStringValue()]
	if !ok {
		return profilerpc.FindByEmailResponse(nil), nil
	}
	return profilerpc.FindByEmailResponse(&p), nil
}

func (f *fakeStore) Insert(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, err := profilerpc.ProfileField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[p.Email]; ok {
		return nil, status.Error(codes.AlreadyExists, "duplicate key value violates unique constraint")
	}
	f.byEmail[p.Email] = p
	return profilerpc.InsertRequest(p), nil
}

func (f *fakeStore) Delete(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	table, id, err := profilerpc.ParseDeleteRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, table+":"+id)
	return profilerpc.DeleteResponse(1), nil
}

func (f *fakeStore) Ping(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return profilerpc.PingResponse(f.pingStat), nil
}

func (f *fakeStore) tokenCheck(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	vals := md.Get(common.ServiceTokenHeaderName)
	if len(vals) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	claims, err := auth.ParseToken(vals[0], testSecret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}
	f.mu.Lock()
	f.subjects = append(f.subjects, claims.Subject)
	f.mu.Unlock()
	return handler(ctx, req)
}

func startClient(t *testing.T, store *fakeStore, secret []byte) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(store.tokenCheck))
	profilerpc.RegisterProfileStoreServer(srv, store)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet", secret, "device-1",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGRPCClient_InsertFindDelete(t *testing.T) {
	store := newFakeStore()
	c := startClient(t, store, testSecret)
	ctx := context.Background()

	got, err := c.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	in := &UserProfile{ID: "u1", Email: "a@b.com", FirstName: "Ann", LastName: "Lee"}
	stored, err := c.Insert(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, in, stored)

	got, err = c.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, in, got)

	require.NoError(t, c.DeleteUserData(ctx, "u1"))
	require.NoError(t, c.DeleteProfile(ctx, "u1"))
	assert.Equal(t, []string{"user_data:u1", "profiles:u1"}, store.deleted)

	assert.NotEmpty(t, store.subjects)
	for _, s := range store.subjects {
		assert.Equal(t, "device-1", s)
	}
}

func TestGRPCClient_DuplicateInsertIsUniqueViolation(t *testing.T) {
	store := newFakeStore()
	c := startClient(t, store, testSecret)
	ctx := context.Background()

	_, err := c.Insert(ctx, &UserProfile{ID: "u1", Email: "a@b.com"})
	require.NoError(t, err)

	_, err = c.Insert(ctx, &UserProfile{ID: "u2", Email: "a@b.com"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "insert", re.Op)
}

func TestGRPCClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"unavailable", status.Error(codes.Unavailable, "down"), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), ErrUnavailable},
		{"permission", status.Error(codes.PermissionDenied, "no"), ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.failWith = tt.err
			c := startClient(t, store, testSecret)

			_, err := c.FindByEmail(context.Background(), "a@b.com")
			require.ErrorIs(t, err, tt.target)
			assert.False(t, IsUniqueViolation(err))
		})
	}
}

func TestGRPCClient_OtherErrorsKeepStatus(t *testing.T) {
	store := newFakeStore()
	store.failWith = status.Error(codes.Internal, "boom")
	c := startClient(t, store, testSecret)

	err := c.DeleteProfile(context.Background(), "u1")
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindOther, re.Kind)
	assert.Equal(t, codes.Internal, status.Code(errors.Unwrap(re.Err)))
}

func TestGRPCClient_WrongSecretIsUnauthorized(t *testing.T) {
	c := startClient(t, newFakeStore(), []byte("other-secret"))

	_, err := c.FindByEmail(context.Background(), "a@b.com")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGRPCClient_Ping(t *testing.T) {
	store := newFakeStore()
	c := startClient(t, store, testSecret)
	require.NoError(t, c.Ping(context.Background()))

	store.pingStat = "DEGRADED"
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestRemoteError_Message(t *testing.T) {
	err := &RemoteError{Kind: KindUniqueViolation, Op: "insert", Err: errors.New("dup")}
	assert.Equal(t, "profile store insert (unique_violation): dup", err.Error())
}
