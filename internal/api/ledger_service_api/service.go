package ledger_service_api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	serviceName = "gym.ledger.v1.LedgerService"

	methodListAvailableSessions = "/" + serviceName + "/ListAvailableSessions"
	methodBookSession           = "/" + serviceName + "/BookSession"
	methodCancelBooking         = "/" + serviceName + "/CancelBooking"
)

type LedgerServiceServer interface {
	ListAvailableSessions(ctx context.Context, req *ListAvailableSessionsRequest) (*ListAvailableSessionsResponse, error)
	BookSession(ctx context.Context, req *BookSessionRequest) (*Booking, error)
	CancelBooking(ctx context.Context, req *CancelBookingRequest) (*Booking, error)
}

func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&ledgerServiceDesc, srv)
}

var ledgerServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListAvailableSessions", Handler: listAvailableSessionsHandler},
		{MethodName: "BookSession", Handler: bookSessionHandler},
		{MethodName: "CancelBooking", Handler: cancelBookingHandler},
	},
	Metadata: protoFile,
}

func listAvailableSessionsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := dynamicpb.NewMessage(listAvailableSessionsRequestDesc)
	if err := dec(in); err != nil {
		return nil, err
	}
	call := func(ctx context.Context, _ any) (any, error) {
		resp, err := srv.(LedgerServiceServer).ListAvailableSessions(ctx, &ListAvailableSessionsRequest{})
		if err != nil {
			return nil, err
		}
		return resp.toProto(), nil
	}
	if interceptor == nil {
		return call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodListAvailableSessions}
	return interceptor(ctx, in, info, call)
}

func bookSessionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := dynamicpb.NewMessage(bookSessionRequestDesc)
	if err := dec(in); err != nil {
		return nil, err
	}
	call := func(ctx context.Context, req any) (any, error) {
		resp, err := srv.(LedgerServiceServer).BookSession(ctx, bookSessionRequestFromProto(req.(*dynamicpb.Message)))
		if err != nil {
			return nil, err
		}
		return resp.toProto(), nil
	}
	if interceptor == nil {
		return call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodBookSession}
	return interceptor(ctx, in, info, call)
}

func cancelBookingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := dynamicpb.NewMessage(cancelBookingRequestDesc)
	if err := dec(in); err != nil {
		return nil, err
	}
	call := func(ctx context.Context, req any) (any, error) {
		resp, err := srv.(LedgerServiceServer).CancelBooking(ctx, cancelBookingRequestFromProto(req.(*dynamicpb.Message)))
		if err != nil {
			return nil, err
		}
		return resp.toProto(), nil
	}
	if interceptor == nil {
		return call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodCancelBooking}
	return interceptor(ctx, in, info, call)
}

// LedgerServiceClient calls LedgerService over the standard protobuf codec.
type LedgerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerServiceClient(cc grpc.ClientConnInterface) *LedgerServiceClient {
	return &LedgerServiceClient{cc: cc}
}

func (c *LedgerServiceClient) ListAvailableSessions(ctx context.Context, in *ListAvailableSessionsRequest, opts ...grpc.CallOption) (*ListAvailableSessionsResponse, error) {
	out := dynamicpb.NewMessage(listAvailableSessionsResponseDesc)
	if err := c.cc.Invoke(ctx, methodListAvailableSessions, in.toProto(), out, opts...); err != nil {
		return nil, err
	}
	return listAvailableSessionsResponseFromProto(out), nil
}

func (c *LedgerServiceClient) BookSession(ctx context.Context, in *BookSessionRequest, opts ...grpc.CallOption) (*Booking, error) {
	out := dynamicpb.NewMessage(bookingDesc)
	if err := c.cc.Invoke(ctx, methodBookSession, in.toProto(), out, opts...); err != nil {
		return nil, err
	}
	return bookingFromProto(out), nil
}

func (c *LedgerServiceClient) CancelBooking(ctx context.Context, in *CancelBookingRequest, opts ...grpc.CallOption) (*Booking, error) {
	out := dynamicpb.NewMessage(bookingDesc)
	if err := c.cc.Invoke(ctx, methodCancelBooking, in.toProto(), out, opts...); err != nil {
		return nil, err
	}
	return bookingFromProto(out), nil
}
