// Package policyrpc serves and consumes decision policies over gRPC, so a
// policy can run in another process or another language. The service has
// one unary method whose request and response are google.protobuf.Struct
// messages built by the codec in this package.
package policyrpc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/decred/slog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vctt94/pokerenv/pkg/poker"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "pokerenv.PolicyService"

	// DecideMethod is the full method name of the Decide call.
	DecideMethod = "/" + ServiceName + "/Decide"

	// DefaultTimeout bounds a single remote decision.
	DefaultTimeout = 30 * time.Second
)

// PolicyServer is the server API of the policy service.
type PolicyServer interface {
	Decide(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func decideHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PolicyServer).Decide(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DecideMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PolicyServer).Decide(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc describes the policy service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PolicyServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Decide",
			Handler:    decideHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pokerenv/policy.proto",
}

// RegisterPolicyServer registers srv on s.
func RegisterPolicyServer(s grpc.ServiceRegistrar, srv PolicyServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Server exposes a poker.Policy over gRPC. Calls are serialized because
// policies are not required to be safe for concurrent use.
type Server struct {
	mu     sync.Mutex
	policy poker.Policy
	log    slog.Logger
	served int
}

// NewServer wraps policy.
func NewServer(policy poker.Policy, log slog.Logger) *Server {
	if log == nil {
		log = slog.Disabled
	}
	return &Server{policy: policy, log: log}
}

// Decide implements PolicyServer.
func (s *Server) Decide(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	obs, legal, err := DecodeRequest(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "bad request: %v", err)
	}
	if len(legal) == 0 {
		return nil, status.Error(codes.InvalidArgument, "no legal actions offered")
	}

	s.mu.Lock()
	action, err := s.policy.Decide(obs, legal)
	s.served++
	s.mu.Unlock()
	if err != nil {
		s.log.Warnf("Policy failed for %s: %v", obs.Name, err)
		return nil, status.Errorf(codes.Internal, "policy: %v", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	s.log.Debugf("%s %s: %s", obs.Name, obs.Phase, action)
	resp, err := EncodeAction(action)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode action: %v", err)
	}
	return resp, nil
}

// Served returns the number of decisions made so far.
func (s *Server) Served() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.served
}

// Client is a poker.Policy backed by a remote policy service.
type Client struct {
	conn    *grpc.ClientConn
	owned   bool
	timeout time.Duration
	log     slog.Logger
	name    string
}

// Dial connects to a policy service at addr without transport security.
func Dial(addr string, timeout time.Duration, log slog.Logger, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to policy at %s: %w", addr, err)
	}
	c := NewClient(conn, timeout, log)
	c.owned = true
	return c, nil
}

// NewClient uses an existing connection. Close leaves conn open.
func NewClient(conn *grpc.ClientConn, timeout time.Duration, log slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Disabled
	}
	return &Client{conn: conn, timeout: timeout, log: log}
}

// AssignName implements poker.NameAssigner.
func (c *Client) AssignName(name string) { c.name = name }

// Decide implements poker.Policy.
func (c *Client) Decide(obs poker.Observation, legal []poker.LegalAction) (poker.Action, error) {
	req, err := EncodeRequest(obs, legal)
	if err != nil {
		return poker.Action{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	resp := new(structpb.Struct)
	start := time.Now()
	if err := c.conn.Invoke(ctx, DecideMethod, req, resp); err != nil {
		return poker.Action{}, fmt.Errorf("remote decide for %s: %w", obs.Name, err)
	}
	c.log.Tracef("Remote decision for %s took %v", obs.Name, time.Since(start))
	return DecodeAction(resp)
}

// Close releases the connection if the client created it.
func (c *Client) Close() error {
	if !c.owned {
		return nil
	}
	return c.conn.Close()
}
