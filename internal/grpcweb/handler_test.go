package grpcweb

import (
	"bytes"
	"context"
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindwell-api/internal/auth"
	"mindwell-api/internal/booking"
	"mindwell-api/internal/handler"
	"mindwell-api/internal/model"
	"mindwell-api/internal/mood"
	"mindwell-api/internal/store"
	wirev1 "mindwell-api/internal/wire/v1"
)

type fakeStore struct {
	appts map[string]*model.Appointment
	moods map[string]*model.MoodEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		appts: make(map[string]*model.Appointment),
		moods: make(map[string]*model.MoodEntry),
	}
}

func (f *fakeStore) CreateUser(context.Context, *model.User) error { return nil }
func (f *fakeStore) UserByEmail(context.Context, string) (*model.User, error) {
	return nil, store.ErrNotFound
}
func (f *fakeStore) ListTherapists(context.Context) ([]model.Therapist, error) { return nil, nil }
func (f *fakeStore) Therapist(_ context.Context, id string) (*model.Therapist, error) {
	return &model.Therapist{ID: id, WorkingDays: []string{
		"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
	}}, nil
}
func (f *fakeStore) Connect(context.Context, string, string) error { return nil }
func (f *fakeStore) IsConnected(context.Context, string, string) (bool, error) {
	return true, nil
}

func (f *fakeStore) CreateAppointment(_ context.Context, a *model.Appointment) error {
	cp := *a
	f.appts[a.ID] = &cp
	return nil
}
func (f *fakeStore) UpdateAppointment(_ context.Context, a *model.Appointment) error {
	cp := *a
	f.appts[a.ID] = &cp
	return nil
}
func (f *fakeStore) AppointmentByID(_ context.Context, id string) (*model.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return a, nil
}
func (f *fakeStore) AppointmentsByUser(context.Context, string) ([]model.Appointment, error) {
	return nil, nil
}
func (f *fakeStore) AppointmentsByTherapist(context.Context, string) ([]model.Appointment, error) {
	return nil, nil
}

func (f *fakeStore) UpsertMood(_ context.Context, e *model.MoodEntry) error {
	cp := *e
	f.moods[e.UserID+e.Date] = &cp
	return nil
}
func (f *fakeStore) MoodsByUser(context.Context, string) ([]model.MoodEntry, error) {
	return nil, nil
}
func (f *fakeStore) DeleteMood(context.Context, string, string) error { return nil }

func (f *fakeStore) CreateRefreshToken(context.Context, string, string, time.Time) (string, error) {
	return "", nil
}
func (f *fakeStore) RefreshTokenByHash(context.Context, string) (*store.RefreshToken, error) {
	return nil, store.ErrNotFound
}
func (f *fakeStore) RotateRefreshToken(context.Context, string, string, string, string, time.Time) error {
	return nil
}
func (f *fakeStore) RevokeAllRefreshTokens(context.Context, string) error { return nil }

const secret = "bridge-test-secret"

func newTestBridge(t *testing.T) *Bridge {
	t.Helper()
	fs := newFakeStore()
	h := handler.New(fs, booking.New(fs, fs), mood.New(fs), secret, nil)
	b, err := New("localhost:0", h, secret, nil, nil)
	require.NoError(t, err)
	t.Cleanup(b.Close)
	return b
}

func frame(payload []byte) []byte {
	out := make([]byte, 5+len(payload))
	binary.BigEndian.PutUint32(out[1:5], uint32(len(payload)))
	copy(out[5:], payload)
	return out
}

func post(t *testing.T, srv http.Handler, path, token string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(frame(payload)))
	req.Header.Set("Content-Type", "application/grpc-web+proto")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

// splitFrames returns the data payload and the trailer text of a response body.
func splitFrames(t *testing.T, body []byte) (data []byte, trailer string) {
	t.Helper()
	for len(body) >= 5 {
		flag := body[0]
		size := binary.BigEndian.Uint32(body[1:5])
		require.LessOrEqual(t, int(5+size), len(body))
		chunk := body[5 : 5+size]
		if flag&0x80 != 0 {
			trailer = string(chunk)
		} else {
			data = chunk
		}
		body = body[5+size:]
	}
	return data, trailer
}

func TestPreflight(t *testing.T) {
	b := newTestBridge(t)

	req := httptest.NewRequest(http.MethodOptions, "/mindwell.v1.MindwellService/Login", nil)
	req.Header.Set("Origin", "https://app.example.test")
	w := httptest.NewRecorder()
	b.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRejectsNonGrpcWeb(t *testing.T) {
	b := newTestBridge(t)

	req := httptest.NewRequest(http.MethodGet, "/mindwell.v1.MindwellService/Login", nil)
	w := httptest.NewRecorder()
	b.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/mindwell.v1.MindwellService/Login", nil)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	b.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestShortBody(t *testing.T) {
	b := newTestBridge(t)

	req := httptest.NewRequest(http.MethodPost, "/mindwell.v1.MindwellService/Login", bytes.NewReader([]byte{0x00}))
	req.Header.Set("Content-Type", "application/grpc-web+proto")
	w := httptest.NewRecorder()
	b.Handler().ServeHTTP(w, req)

	_, trailer := splitFrames(t, w.Body.Bytes())
	assert.Contains(t, trailer, "grpc-status:3")
}

func TestProtectedMethodNeedsToken(t *testing.T) {
	b := newTestBridge(t)

	w := post(t, b.Handler(), "/mindwell.v1.MindwellService/ListAppointments", "", nil)
	_, trailer := splitFrames(t, w.Body.Bytes())
	assert.Contains(t, trailer, "grpc-status:16")

	w = post(t, b.Handler(), "/mindwell.v1.MindwellService/ListAppointments", "garbage", nil)
	_, trailer = splitFrames(t, w.Body.Bytes())
	assert.Contains(t, trailer, "grpc-status:16")
}

func TestDirectBookRoundTrip(t *testing.T) {
	b := newTestBridge(t)
	token, err := auth.MakeToken("u1", secret)
	require.NoError(t, err)

	date := time.Now().AddDate(0, 0, 3).Format(model.DateLayout)
	payload := (&wirev1.BookAppointmentRequest{
		TherapistID: "t1", Date: date, Time: "10:00", DurationMinutes: 50,
	}).Marshal()

	w := post(t, b.Handler(), "/mindwell.v1.MindwellService/BookAppointment", token, payload)
	require.Equal(t, http.StatusOK, w.Code)

	data, trailer := splitFrames(t, w.Body.Bytes())
	assert.Contains(t, trailer, "grpc-status:0")

	resp := &wirev1.BookAppointmentResponse{}
	require.NoError(t, resp.Unmarshal(data))
	require.NotNil(t, resp.Appointment)
	assert.Equal(t, "u1", resp.Appointment.UserID)
	assert.Equal(t, "confirmed", resp.Appointment.Status)
}

func TestDirectParseError(t *testing.T) {
	b := newTestBridge(t)
	token, err := auth.MakeToken("u1", secret)
	require.NoError(t, err)

	w := post(t, b.Handler(), "/mindwell.v1.MindwellService/BookAppointment", token, []byte{0xff, 0xff, 0xff})
	_, trailer := splitFrames(t, w.Body.Bytes())
	assert.Contains(t, trailer, "grpc-status:3")
}
