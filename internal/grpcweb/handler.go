// Package grpcweb bridges browser gRPC-Web traffic (HTTP/1.1) onto the native
// gRPC server.
package grpcweb

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"mindwell-api/internal/auth"
	"mindwell-api/internal/handler"
	"mindwell-api/internal/metrics"
	"mindwell-api/internal/middleware"
	"mindwell-api/internal/rpc"
	wirev1 "mindwell-api/internal/wire/v1"
)

type route struct {
	open   bool
	handle func(ctx context.Context, payload []byte) (wirev1.Message, error)
}

// Bridge translates gRPC-Web frames into calls on the service. When a direct
// handler is attached, every known method bypasses the network hop; anything
// else is forwarded to the gRPC server over TCP with the raw codec.
type Bridge struct {
	conn    *grpc.ClientConn
	direct  *handler.Handler
	secret  string
	log     *zap.Logger
	metrics *metrics.RPC
	routes  map[string]route
}

func New(addr string, direct *handler.Handler, secret string, log *zap.Logger, m *metrics.RPC) (*Bridge, error) {
	conn, err := grpc.NewClient(
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("grpcweb dial: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	b := &Bridge{conn: conn, direct: direct, secret: secret, log: log, metrics: m}
	if direct != nil {
		b.routes = directRoutes(direct)
	}
	return b, nil
}

func (b *Bridge) Close() { b.conn.Close() }

// Handler returns the http.Handler for the bridge, CORS included.
func (b *Bridge) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, X-Grpc-Web, X-User-Agent, Authorization, x-grpc-web")
		w.Header().Set("Access-Control-Expose-Headers",
			"Grpc-Status, Grpc-Message, Grpc-Status-Details-Bin, grpc-status, grpc-message")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "application/grpc-web") {
			http.Error(w, "not grpc-web", http.StatusUnsupportedMediaType)
			return
		}

		b.forward(w, r)
	})
}

func (b *Bridge) forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		b.finish(w, r.URL.Path, codes.Internal, "read body failed")
		return
	}
	if len(body) < 5 {
		b.finish(w, r.URL.Path, codes.InvalidArgument, "body too short")
		return
	}

	// grpc-web frame: 1-byte flag + 4-byte big-endian length + protobuf
	msgLen := binary.BigEndian.Uint32(body[1:5])
	if int(msgLen)+5 > len(body) {
		b.finish(w, r.URL.Path, codes.InvalidArgument, "incomplete frame")
		return
	}
	payload := body[5 : 5+msgLen]

	name := r.URL.Path[strings.LastIndexByte(r.URL.Path, '/')+1:]

	if rt, ok := b.routes[name]; ok {
		ctx := r.Context()
		if !rt.open {
			ctx, err = b.manualAuth(ctx, r.Header.Get("Authorization"))
			if err != nil {
				st, _ := status.FromError(err)
				b.finish(w, name, st.Code(), st.Message())
				return
			}
		}
		resp, err := rt.handle(ctx, payload)
		if err != nil {
			st, _ := status.FromError(err)
			b.finish(w, name, st.Code(), st.Message())
			return
		}
		b.observe(name, codes.OK)
		writeSuccess(w, resp.Marshal())
		return
	}

	// forward metadata
	md := metadata.MD{}
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	}
	ctx := metadata.NewOutgoingContext(r.Context(), md)

	resp := &rpc.RawMessage{}
	err = b.conn.Invoke(ctx, r.URL.Path, &rpc.RawMessage{Data: payload}, resp, grpc.ForceCodec(rpc.RawCodec{}))
	if err != nil {
		st, _ := status.FromError(err)
		b.finish(w, name, st.Code(), st.Message())
		return
	}

	b.observe(name, codes.OK)
	writeSuccess(w, resp.Data)
}

func (b *Bridge) finish(w http.ResponseWriter, method string, code codes.Code, msg string) {
	b.log.Warn("grpc-web call failed",
		zap.String("method", method),
		zap.String("code", code.String()),
		zap.String("message", msg),
	)
	b.observe(method, code)
	writeError(w, code, msg)
}

func (b *Bridge) observe(method string, code codes.Code) {
	if b.metrics != nil {
		b.metrics.Observe(method, code.String())
	}
}

func (b *Bridge) manualAuth(ctx context.Context, authHeader string) (context.Context, error) {
	if authHeader == "" {
		return nil, status.Error(codes.Unauthenticated, "no token")
	}
	raw := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := auth.ParseToken(raw, b.secret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "bad token")
	}
	return context.WithValue(ctx, middleware.UserIDKey, claims.UserID), nil
}

func writeError(w http.ResponseWriter, code codes.Code, msg string) {
	w.Header().Set("Content-Type", "application/grpc-web+proto")
	w.WriteHeader(http.StatusOK)
	trailer := fmt.Sprintf("grpc-status:%d\r\ngrpc-message:%s\r\n", code, msg)
	tf := make([]byte, 5+len(trailer))
	tf[0] = 0x80
	binary.BigEndian.PutUint32(tf[1:5], uint32(len(trailer)))
	copy(tf[5:], trailer)
	w.Write(tf)
}

func writeSuccess(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/grpc-web+proto")
	w.WriteHeader(http.StatusOK)
	// data frame
	df := make([]byte, 5+len(data))
	df[0] = 0x00
	binary.BigEndian.PutUint32(df[1:5], uint32(len(data)))
	copy(df[5:], data)
	w.Write(df)
	// trailer frame
	trailer := "grpc-status:0\r\n"
	tf := make([]byte, 5+len(trailer))
	tf[0] = 0x80
	binary.BigEndian.PutUint32(tf[1:5], uint32(len(trailer)))
	copy(tf[5:], trailer)
	w.Write(tf)
}

func directRoutes(h *handler.Handler) map[string]route {
	return map[string]route{
		"Register": {open: true, handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.RegisterRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.Register(ctx, req)
		}},
		"Login": {open: true, handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.LoginRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.Login(ctx, req)
		}},
		"ListTherapists": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.ListTherapistsRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.ListTherapists(ctx, req)
		}},
		"ConnectTherapist": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.ConnectTherapistRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.ConnectTherapist(ctx, req)
		}},
		"AvailableSlots": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.AvailableSlotsRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.AvailableSlots(ctx, req)
		}},
		"BookAppointment": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.BookAppointmentRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.BookAppointment(ctx, req)
		}},
		"RescheduleAppointment": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.RescheduleAppointmentRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.RescheduleAppointment(ctx, req)
		}},
		"CancelAppointment": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.CancelAppointmentRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.CancelAppointment(ctx, req)
		}},
		"CompleteAppointment": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.CompleteAppointmentRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.CompleteAppointment(ctx, req)
		}},
		"UpdateAppointmentNotes": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.UpdateAppointmentNotesRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.UpdateAppointmentNotes(ctx, req)
		}},
		"ListAppointments": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.ListAppointmentsRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.ListAppointments(ctx, req)
		}},
		"CheckOverlap": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.CheckOverlapRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.CheckOverlap(ctx, req)
		}},
		"LogMood": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.LogMoodRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.LogMood(ctx, req)
		}},
		"DeleteMood": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.DeleteMoodRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.DeleteMood(ctx, req)
		}},
		"MoodHistory": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.MoodHistoryRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.MoodHistory(ctx, req)
		}},
		"MoodAnalytics": {handle: func(ctx context.Context, p []byte) (wirev1.Message, error) {
			req := &wirev1.MoodAnalyticsRequest{}
			if err := req.Unmarshal(p); err != nil {
				return nil, status.Error(codes.InvalidArgument, "parse error")
			}
			return h.MoodAnalytics(ctx, req)
		}},
	}
}
