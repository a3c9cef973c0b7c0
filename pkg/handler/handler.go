package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service and method names. Requests and responses are google.protobuf.Struct.
const (
	ServiceName = "achievement.v1.AchievementService"

	MethodOnActivity        = "/" + ServiceName + "/OnActivity"
	MethodGetNextChallenges = "/" + ServiceName + "/GetNextChallenges"
)

// AchievementServiceServer is the server API for the achievement service.
type AchievementServiceServer interface {
	OnActivity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetNextChallenges(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// AchievementServiceDesc describes the service for grpc.Server registration.
var AchievementServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AchievementServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "OnActivity",
			Handler:    onActivityHandler,
		},
		{
			MethodName: "GetNextChallenges",
			Handler:    getNextChallengesHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "achievement/v1/achievement.proto",
}

// RegisterAchievementServiceServer registers srv on the gRPC server.
func RegisterAchievementServiceServer(s grpc.ServiceRegistrar, srv AchievementServiceServer) {
	s.RegisterService(&AchievementServiceDesc, srv)
}

func onActivityHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AchievementServiceServer).OnActivity(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: MethodOnActivity,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AchievementServiceServer).OnActivity(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getNextChallengesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AchievementServiceServer).GetNextChallenges(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: MethodGetNextChallenges,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AchievementServiceServer).GetNextChallenges(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// AchievementServiceClient is the client API for the achievement service.
type AchievementServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAchievementServiceClient creates a client on the connection.
func NewAchievementServiceClient(cc grpc.ClientConnInterface) *AchievementServiceClient {
	return &AchievementServiceClient{cc: cc}
}

// OnActivity calls the OnActivity method.
func (c *AchievementServiceClient) OnActivity(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodOnActivity, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetNextChallenges calls the GetNextChallenges method.
func (c *AchievementServiceClient) GetNextChallenges(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodGetNextChallenges, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
