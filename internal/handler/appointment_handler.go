package handler

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mindwell-api/internal/model"
	wirev1 "mindwell-api/internal/wire/v1"
)

func (h *Handler) ListTherapists(ctx context.Context, req *wirev1.ListTherapistsRequest) (*wirev1.ListTherapistsResponse, error) {
	therapists, err := h.store.ListTherapists(ctx)
	if err != nil {
		return nil, h.rpcError("list therapists", err)
	}

	out := make([]*wirev1.Therapist, len(therapists))
	for i, t := range therapists {
		out[i] = &wirev1.Therapist{
			ID:          t.ID,
			Name:        t.Name,
			Specialty:   t.Specialty,
			Bio:         t.Bio,
			WorkingDays: t.WorkingDays,
		}
	}
	return &wirev1.ListTherapistsResponse{Therapists: out}, nil
}

func (h *Handler) ConnectTherapist(ctx context.Context, req *wirev1.ConnectTherapistRequest) (*wirev1.ConnectTherapistResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.TherapistID == "" {
		return nil, status.Error(codes.InvalidArgument, "therapist id required")
	}
	if _, err := h.store.Therapist(ctx, req.TherapistID); err != nil {
		return nil, h.rpcError("connect therapist", err)
	}
	if err := h.store.Connect(ctx, userID, req.TherapistID); err != nil {
		return nil, h.rpcError("connect therapist", err)
	}
	return &wirev1.ConnectTherapistResponse{}, nil
}

func (h *Handler) AvailableSlots(ctx context.Context, req *wirev1.AvailableSlotsRequest) (*wirev1.AvailableSlotsResponse, error) {
	if _, err := uid(ctx); err != nil {
		return nil, err
	}
	if req.TherapistID == "" || req.Date == "" {
		return nil, status.Error(codes.InvalidArgument, "therapist id and date required")
	}
	duration := int(req.DurationMinutes)
	if duration <= 0 {
		duration = 50
	}

	slots, err := h.booking.AvailableSlots(ctx, req.TherapistID, req.Date, duration)
	if err != nil {
		return nil, h.rpcError("available slots", err)
	}
	return &wirev1.AvailableSlotsResponse{Slots: slots}, nil
}

func (h *Handler) BookAppointment(ctx context.Context, req *wirev1.BookAppointmentRequest) (*wirev1.BookAppointmentResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.TherapistID == "" || req.Date == "" || req.Time == "" {
		return nil, status.Error(codes.InvalidArgument, "therapist id, date and time required")
	}

	a, err := h.booking.Book(ctx, userID, req.TherapistID, req.Date, req.Time, int(req.DurationMinutes), req.Notes)
	if err != nil {
		return nil, h.rpcError("book", err)
	}
	return &wirev1.BookAppointmentResponse{Appointment: toWireAppointment(a)}, nil
}

func (h *Handler) RescheduleAppointment(ctx context.Context, req *wirev1.RescheduleAppointmentRequest) (*wirev1.RescheduleAppointmentResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == "" || req.NewDate == "" || req.NewTime == "" {
		return nil, status.Error(codes.InvalidArgument, "id, date and time required")
	}

	a, err := h.booking.Reschedule(ctx, userID, req.ID, req.NewDate, req.NewTime)
	if err != nil {
		return nil, h.rpcError("reschedule", err)
	}
	return &wirev1.RescheduleAppointmentResponse{Appointment: toWireAppointment(a)}, nil
}

func (h *Handler) CancelAppointment(ctx context.Context, req *wirev1.CancelAppointmentRequest) (*wirev1.CancelAppointmentResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}

	a, err := h.booking.Cancel(ctx, userID, req.ID)
	if err != nil {
		return nil, h.rpcError("cancel", err)
	}
	return &wirev1.CancelAppointmentResponse{Appointment: toWireAppointment(a)}, nil
}

func (h *Handler) CompleteAppointment(ctx context.Context, req *wirev1.CompleteAppointmentRequest) (*wirev1.CompleteAppointmentResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}

	a, err := h.booking.Complete(ctx, userID, req.ID)
	if err != nil {
		return nil, h.rpcError("complete", err)
	}
	return &wirev1.CompleteAppointmentResponse{Appointment: toWireAppointment(a)}, nil
}

func (h *Handler) UpdateAppointmentNotes(ctx context.Context, req *wirev1.UpdateAppointmentNotesRequest) (*wirev1.UpdateAppointmentNotesResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}

	a, err := h.booking.UpdateNotes(ctx, userID, req.ID, req.Notes)
	if err != nil {
		return nil, h.rpcError("update notes", err)
	}
	return &wirev1.UpdateAppointmentNotesResponse{Appointment: toWireAppointment(a)}, nil
}

func (h *Handler) ListAppointments(ctx context.Context, req *wirev1.ListAppointmentsRequest) (*wirev1.ListAppointmentsResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}

	p, err := h.booking.Partitioned(ctx, userID)
	if err != nil {
		return nil, h.rpcError("list appointments", err)
	}
	return &wirev1.ListAppointmentsResponse{
		Upcoming:  toWireAppointments(p.Upcoming),
		Past:      toWireAppointments(p.Past),
		Cancelled: toWireAppointments(p.Cancelled),
	}, nil
}

// CheckOverlap never errors toward the caller: an internal failure reports a
// conflict, so a double-booking can't sneak past a flaky store read.
func (h *Handler) CheckOverlap(ctx context.Context, req *wirev1.CheckOverlapRequest) (*wirev1.CheckOverlapResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}

	conflict, err := h.booking.SelfOverlap(ctx, userID, req.Date, req.Time, int(req.DurationMinutes))
	if err != nil {
		h.log.Warn("overlap check failed, reporting conflict", zap.Error(err))
	}
	return &wirev1.CheckOverlapResponse{Conflict: conflict}, nil
}

func toWireAppointment(a *model.Appointment) *wirev1.Appointment {
	return &wirev1.Appointment{
		ID:              a.ID,
		UserID:          a.UserID,
		TherapistID:     a.TherapistID,
		Date:            a.Date,
		Time:            a.Time,
		DurationMinutes: int32(a.DurationMinutes),
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		CancelledAt:     a.CancelledAt,
		CompletedAt:     a.CompletedAt,
		RescheduledAt:   a.RescheduledAt,
	}
}

func toWireAppointments(appts []model.Appointment) []*wirev1.Appointment {
	out := make([]*wirev1.Appointment, len(appts))
	for i := range appts {
		out[i] = toWireAppointment(&appts[i])
	}
	return out
}
