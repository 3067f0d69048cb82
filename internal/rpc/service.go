// Package rpc registers the service against a grpc server without generated
// stubs. Requests travel as raw protobuf bytes through a passthrough codec and
// are decoded by the hand-maintained wire package, which keeps the committed
// proto file the single schema of record.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"mindwell-api/internal/handler"
	wirev1 "mindwell-api/internal/wire/v1"
)

const ServiceName = "mindwell.v1.MindwellService"

// RawMessage wraps undecoded protobuf bytes.
type RawMessage struct{ Data []byte }

// RawCodec passes bytes through untouched. Both the server and the gRPC-Web
// bridge force it so neither side needs generated message types.
type RawCodec struct{}

func (RawCodec) Marshal(v any) ([]byte, error) {
	return v.(*RawMessage).Data, nil
}

func (RawCodec) Unmarshal(data []byte, v any) error {
	m := v.(*RawMessage)
	m.Data = append([]byte(nil), data...)
	return nil
}

func (RawCodec) Name() string { return "raw" }

func init() {
	encoding.RegisterCodec(RawCodec{})
}

// MindwellServer is the full method surface; *handler.Handler implements it.
type MindwellServer interface {
	Register(context.Context, *wirev1.RegisterRequest) (*wirev1.RegisterResponse, error)
	Login(context.Context, *wirev1.LoginRequest) (*wirev1.LoginResponse, error)
	ListTherapists(context.Context, *wirev1.ListTherapistsRequest) (*wirev1.ListTherapistsResponse, error)
	ConnectTherapist(context.Context, *wirev1.ConnectTherapistRequest) (*wirev1.ConnectTherapistResponse, error)
	AvailableSlots(context.Context, *wirev1.AvailableSlotsRequest) (*wirev1.AvailableSlotsResponse, error)
	BookAppointment(context.Context, *wirev1.BookAppointmentRequest) (*wirev1.BookAppointmentResponse, error)
	RescheduleAppointment(context.Context, *wirev1.RescheduleAppointmentRequest) (*wirev1.RescheduleAppointmentResponse, error)
	CancelAppointment(context.Context, *wirev1.CancelAppointmentRequest) (*wirev1.CancelAppointmentResponse, error)
	CompleteAppointment(context.Context, *wirev1.CompleteAppointmentRequest) (*wirev1.CompleteAppointmentResponse, error)
	UpdateAppointmentNotes(context.Context, *wirev1.UpdateAppointmentNotesRequest) (*wirev1.UpdateAppointmentNotesResponse, error)
	ListAppointments(context.Context, *wirev1.ListAppointmentsRequest) (*wirev1.ListAppointmentsResponse, error)
	CheckOverlap(context.Context, *wirev1.CheckOverlapRequest) (*wirev1.CheckOverlapResponse, error)
	LogMood(context.Context, *wirev1.LogMoodRequest) (*wirev1.LogMoodResponse, error)
	DeleteMood(context.Context, *wirev1.DeleteMoodRequest) (*wirev1.DeleteMoodResponse, error)
	MoodHistory(context.Context, *wirev1.MoodHistoryRequest) (*wirev1.MoodHistoryResponse, error)
	MoodAnalytics(context.Context, *wirev1.MoodAnalyticsRequest) (*wirev1.MoodAnalyticsResponse, error)
}

var _ MindwellServer = (*handler.Handler)(nil)

func Register(s grpc.ServiceRegistrar, h *handler.Handler) {
	s.RegisterService(&serviceDesc, h)
}

// method builds one MethodDesc: decode the raw frame into the typed request,
// run the interceptor chain, re-encode the typed response.
func method(name string, newReq func() wirev1.Message, call func(MindwellServer, context.Context, wirev1.Message) (wirev1.Message, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			raw := &RawMessage{}
			if err := dec(raw); err != nil {
				return nil, err
			}
			req := newReq()
			if err := req.Unmarshal(raw.Data); err != nil {
				return nil, status.Error(codes.InvalidArgument, "malformed request")
			}

			handle := func(ctx context.Context, in any) (any, error) {
				resp, err := call(srv.(MindwellServer), ctx, in.(wirev1.Message))
				if err != nil {
					return nil, err
				}
				return &RawMessage{Data: resp.Marshal()}, nil
			}
			if interceptor == nil {
				return handle(ctx, req)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			return interceptor(ctx, req, info, handle)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MindwellServer)(nil),
	Methods: []grpc.MethodDesc{
		method("Register",
			func() wirev1.Message { return &wirev1.RegisterRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.Register(ctx, m.(*wirev1.RegisterRequest))
			}),
		method("Login",
			func() wirev1.Message { return &wirev1.LoginRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.Login(ctx, m.(*wirev1.LoginRequest))
			}),
		method("ListTherapists",
			func() wirev1.Message { return &wirev1.ListTherapistsRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.ListTherapists(ctx, m.(*wirev1.ListTherapistsRequest))
			}),
		method("ConnectTherapist",
			func() wirev1.Message { return &wirev1.ConnectTherapistRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.ConnectTherapist(ctx, m.(*wirev1.ConnectTherapistRequest))
			}),
		method("AvailableSlots",
			func() wirev1.Message { return &wirev1.AvailableSlotsRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.AvailableSlots(ctx, m.(*wirev1.AvailableSlotsRequest))
			}),
		method("BookAppointment",
			func() wirev1.Message { return &wirev1.BookAppointmentRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.BookAppointment(ctx, m.(*wirev1.BookAppointmentRequest))
			}),
		method("RescheduleAppointment",
			func() wirev1.Message { return &wirev1.RescheduleAppointmentRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.RescheduleAppointment(ctx, m.(*wirev1.RescheduleAppointmentRequest))
			}),
		method("CancelAppointment",
			func() wirev1.Message { return &wirev1.CancelAppointmentRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.CancelAppointment(ctx, m.(*wirev1.CancelAppointmentRequest))
			}),
		method("CompleteAppointment",
			func() wirev1.Message { return &wirev1.CompleteAppointmentRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.CompleteAppointment(ctx, m.(*wirev1.CompleteAppointmentRequest))
			}),
		method("UpdateAppointmentNotes",
			func() wirev1.Message { return &wirev1.UpdateAppointmentNotesRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.UpdateAppointmentNotes(ctx, m.(*wirev1.UpdateAppointmentNotesRequest))
			}),
		method("ListAppointments",
			func() wirev1.Message { return &wirev1.ListAppointmentsRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.ListAppointments(ctx, m.(*wirev1.ListAppointmentsRequest))
			}),
		method("CheckOverlap",
			func() wirev1.Message { return &wirev1.CheckOverlapRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.CheckOverlap(ctx, m.(*wirev1.CheckOverlapRequest))
			}),
		method("LogMood",
			func() wirev1.Message { return &wirev1.LogMoodRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.LogMood(ctx, m.(*wirev1.LogMoodRequest))
			}),
		method("DeleteMood",
			func() wirev1.Message { return &wirev1.DeleteMoodRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.DeleteMood(ctx, m.(*wirev1.DeleteMoodRequest))
			}),
		method("MoodHistory",
			func() wirev1.Message { return &wirev1.MoodHistoryRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.MoodHistory(ctx, m.(*wirev1.MoodHistoryRequest))
			}),
		method("MoodAnalytics",
			func() wirev1.Message { return &wirev1.MoodAnalyticsRequest{} },
			func(s MindwellServer, ctx context.Context, m wirev1.Message) (wirev1.Message, error) {
				return s.MoodAnalytics(ctx, m.(*wirev1.MoodAnalyticsRequest))
			}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/mindwell.proto",
}
