package identity

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
)

const serviceName = "ecom.identity.v1.Identity"

const (
	authenticateMethod = "/" + serviceName + "/Authenticate"
	verifyMethod       = "/" + serviceName + "/Verify"
)

// IdentityServer is the gRPC surface of the gate. Messages are protobuf
// well-known types so no generated code is needed.
type IdentityServer interface {
	Authenticate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Verify(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

var identityServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*IdentityServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Authenticate", Handler: authenticateHandler},
		{MethodName: "Verify", Handler: verifyHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "identity/v1/identity.proto",
}

func RegisterIdentityServer(s grpc.ServiceRegistrar, srv IdentityServer) {
	s.RegisterService(&identityServiceDesc, srv)
}

func authenticateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdentityServer).Authenticate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: authenticateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IdentityServer).Authenticate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func verifyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdentityServer).Verify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: verifyMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IdentityServer).Verify(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Service implements IdentityServer on top of an Authenticator and a Verifier.
type Service struct {
	auth     Authenticator
	verifier Verifier
}

func NewService(auth Authenticator, verifier Verifier) *Service {
	return &Service{auth: auth, verifier: verifier}
}

func (s *Service) Authenticate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	email := fields["email"].GetStringValue()
	password := fields["password"].GetStringValue()
	if email == "" || password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password are required")
	}
	tok, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := structpb.NewStruct(map[string]any{
		"access_token": tok.AccessToken,
		"token_type":   tok.TokenType,
		"expires_at":   tok.ExpiresAt.UTC().Format(time.RFC3339),
		"user_id":      tok.UserID,
		"role":         string(tok.Role),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode token: %v", err)
	}
	return out, nil
}

func (s *Service) Verify(_ context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	claims, err := s.verifier.Verify(in.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := structpb.NewStruct(map[string]any{
		"user_id":    claims.UserID,
		"role":       string(claims.Role),
		"expires_at": claims.ExpiresAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode claims: %v", err)
	}
	return out, nil
}

func toStatus(err error) error {
	msg := apperr.Message(err)
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return status.Error(codes.InvalidArgument, msg)
	case apperr.KindNotFound:
		return status.Error(codes.NotFound, msg)
	case apperr.KindUnauthorized:
		return status.Error(codes.Unauthenticated, msg)
	case apperr.KindForbidden:
		return status.Error(codes.PermissionDenied, msg)
	case apperr.KindConflict:
		return status.Error(codes.AlreadyExists, msg)
	case apperr.KindInvalidTransition:
		return status.Error(codes.FailedPrecondition, msg)
	default:
		log.Printf("[grpc] internal error: %v", err)
		return status.Error(codes.Internal, msg)
	}
}

func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return apperr.Wrap(apperr.KindInternal, err, "identity service")
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return apperr.Validation("%s", st.Message())
	case codes.NotFound:
		return apperr.NotFound("%s", st.Message())
	case codes.Unauthenticated:
		return apperr.Unauthorized("%s", st.Message())
	case codes.PermissionDenied:
		return apperr.Forbidden("%s", st.Message())
	case codes.AlreadyExists:
		return apperr.Conflict("%s", st.Message())
	default:
		return apperr.Wrap(apperr.KindInternal, err, "identity service")
	}
}

// UnaryLogger logs every RPC the way the HTTP logger logs requests.
func UnaryLogger() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Printf("[grpc] %s code=%s dur=%s", info.FullMethod, status.Code(err), time.Since(start))
		return resp, err
	}
}

// Client talks to a remote identity service. It satisfies Verifier, so
// cmd/api can check bearer tokens against the identity service instead of
// holding the signing secret itself.
type Client struct {
	cc      grpc.ClientConnInterface
	timeout time.Duration
}

const defaultCallTimeout = 3 * time.Second

var _ Verifier = (*Client)(nil)

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc, timeout: defaultCallTimeout}
}

// Dial opens a non-blocking connection to addr.
func Dial(addr string) (*Client, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return NewClient(conn), conn, nil
}

func (c *Client) Authenticate(ctx context.Context, email, password string) (Token, error) {
	in, err := structpb.NewStruct(map[string]any{"email": email, "password": password})
	if err != nil {
		return Token{}, apperr.Wrap(apperr.KindInternal, err, "encode credentials")
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, authenticateMethod, in, out); err != nil {
		return Token{}, fromStatus(err)
	}
	f := out.GetFields()
	exp, err := parseExpiry(f)
	if err != nil {
		return Token{}, err
	}
	return Token{
		AccessToken: f["access_token"].GetStringValue(),
		TokenType:   f["token_type"].GetStringValue(),
		ExpiresAt:   exp,
		UserID:      f["user_id"].GetStringValue(),
		Role:        Role(f["role"].GetStringValue()),
	}, nil
}

// Verify implements Verifier with a bounded call to the identity service.
func (c *Client) Verify(raw string) (Claims, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.VerifyContext(ctx, raw)
}

func (c *Client) VerifyContext(ctx context.Context, raw string) (Claims, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, verifyMethod, wrapperspb.String(raw), out); err != nil {
		return Claims{}, fromStatus(err)
	}
	f := out.GetFields()
	exp, err := parseExpiry(f)
	if err != nil {
		return Claims{}, err
	}
	return Claims{
		UserID:    f["user_id"].GetStringValue(),
		Role:      Role(f["role"].GetStringValue()),
		ExpiresAt: exp,
	}, nil
}

func parseExpiry(f map[string]*structpb.Value) (time.Time, error) {
	exp, err := time.Parse(time.RFC3339, f["expires_at"].GetStringValue())
	if err != nil {
		return time.Time{}, apperr.Wrap(apperr.KindInternal, err, "identity service sent a bad expires_at")
	}
	return exp, nil
}
