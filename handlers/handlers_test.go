package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"workspot/models"
	"workspot/services/booking"
	"workspot/services/moderation"
	"workspot/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type bookingServiceStub struct {
	booking.BookingService
	created  booking.BookingInput
	stored   *models.Booking
	err      error
	canceled bool
}

func (s *bookingServiceStub) Create(ctx context.Context, in booking.BookingInput) (*models.Booking, error) {
	s.created = in
	if s.err != nil {
		return nil, s.err
	}
	return &models.Booking{ID: "b-1", Guest: in.Guest, Space: in.Space, Status: models.BookingPending}, nil
}

func (s *bookingServiceStub) Get(ctx context.Context, id string) (*models.Booking, error) {
	if s.stored == nil {
		return nil, booking.ErrBookingNotFound
	}
	return s.stored, nil
}

func (s *bookingServiceStub) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	s.canceled = true
	b := *s.stored
	b.Status = models.BookingCancelled
	return &b, nil
}

func (s *bookingServiceStub) Confirm(ctx context.Context, id string) (*models.Booking, error) {
	return nil, s.err
}

func (s *bookingServiceStub) ListBySpace(ctx context.Context, space string) ([]models.Booking, error) {
	return []models.Booking{{ID: "b-1", Space: space}}, nil
}

type moderationServiceStub struct {
	moderation.ModerationService
	filed     moderation.ReportInput
	view      *models.ReportView
	resolver  string
	resolveIn moderation.ResolveInput
	err       error
}

func (s *moderationServiceStub) File(ctx context.Context, in moderation.ReportInput) (*models.ReportView, error) {
	s.filed = in
	if s.err != nil {
		return nil, s.err
	}
	return &models.ReportView{Report: models.Report{ID: "r-1", ReporterID: in.ReporterID}}, nil
}

func (s *moderationServiceStub) Get(ctx context.Context, id string) (*models.ReportView, error) {
	if s.view == nil {
		return nil, moderation.ErrReportNotFound
	}
	return s.view, nil
}

func (s *moderationServiceStub) Resolve(ctx context.Context, id, adminID string, in moderation.ResolveInput) (*models.ReportView, error) {
	s.resolver, s.resolveIn = adminID, in
	if s.err != nil {
		return nil, s.err
	}
	now := time.Now()
	return &models.ReportView{Report: models.Report{ID: id, Status: models.ReportResolved, ResolvedBy: adminID, ResolvedAt: &now}}, nil
}

// as injects the identity the auth middleware would have set.
func as(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestBookingHandler_Create(t *testing.T) {
	svc := &bookingServiceStub{}
	h := NewBookingHandler(svc)
	r := gin.New()
	r.POST("/bookings", as("guest-1", ""), h.CreateBooking)

	w := serve(r, http.MethodPost, "/bookings", `{"space":"space-1","guest":"someone-else","startTime":"2026-03-10T09:00:00Z","endTime":"2026-03-10T10:00:00Z"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.created.Guest != "guest-1" {
		t.Fatalf("guest must come from the token, got %q", svc.created.Guest)
	}
	if body := decode(t, w); body["success"] != true {
		t.Fatalf("expected success envelope, got %v", body)
	}

	if w := serve(r, http.MethodPost, "/bookings", `{`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", w.Code)
	}
}

func TestBookingHandler_ErrorMapping(t *testing.T) {
	verr := &utils.ValidationError{}
	verr.Add("endTime", "must be after startTime")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", verr, http.StatusBadRequest},
		{"overlap", booking.ErrBookingOverlap, http.StatusConflict},
		{"transition", &booking.TransitionError{From: models.BookingCancelled, To: models.BookingConfirmed}, http.StatusConflict},
		{"busy", booking.ErrSpaceBusy, http.StatusConflict},
		{"not found", booking.ErrBookingNotFound, http.StatusNotFound},
		{"storage", errors.New("mongo down"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/bookings/:id/confirm", NewBookingHandler(&bookingServiceStub{err: tc.err}).ConfirmBooking)
			w := serve(r, http.MethodPost, "/bookings/b-1/confirm", "")
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
			if body := decode(t, w); body["success"] != false {
				t.Fatalf("expected failure envelope, got %v", body)
			}
		})
	}

	t.Run("validation errors list fields", func(t *testing.T) {
		r := gin.New()
		r.POST("/bookings/:id/confirm", NewBookingHandler(&bookingServiceStub{err: verr}).ConfirmBooking)
		body := decode(t, serve(r, http.MethodPost, "/bookings/b-1/confirm", ""))
		errs, _ := body["errors"].(map[string]interface{})
		if errs["endTime"] != "must be after startTime" {
			t.Fatalf("expected endTime error, got %v", body)
		}
	})
}

func TestBookingHandler_Cancel(t *testing.T) {
	stored := &models.Booking{ID: "b-1", Guest: "guest-1", Status: models.BookingConfirmed}

	tests := []struct {
		name   string
		user   string
		role   string
		want   int
		cancel bool
	}{
		{"guest", "guest-1", "", http.StatusOK, true},
		{"admin", "admin-1", utils.RoleAdmin, http.StatusOK, true},
		{"stranger", "guest-2", "", http.StatusForbidden, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &bookingServiceStub{stored: stored}
			r := gin.New()
			r.POST("/bookings/:id/cancel", as(tc.user, tc.role), NewBookingHandler(svc).CancelBooking)
			w := serve(r, http.MethodPost, "/bookings/b-1/cancel", "")
			if w.Code != tc.want || svc.canceled != tc.cancel {
				t.Fatalf("expected %d (cancel=%v), got %d (cancel=%v)", tc.want, tc.cancel, w.Code, svc.canceled)
			}
		})
	}
}

func TestBookingHandler_List(t *testing.T) {
	r := gin.New()
	r.GET("/bookings", NewBookingHandler(&bookingServiceStub{}).ListBookings)

	if w := serve(r, http.MethodGet, "/bookings?space=space-1", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, q := range []string{"", "?space=a&guest=b"} {
		if w := serve(r, http.MethodGet, "/bookings"+q, ""); w.Code != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400, got %d", q, w.Code)
		}
	}
}

func TestReportHandler(t *testing.T) {
	t.Run("reporter comes from the token", func(t *testing.T) {
		svc := &moderationServiceStub{}
		r := gin.New()
		r.POST("/reports", as("user-1", ""), NewReportHandler(svc).FileReport)

		w := serve(r, http.MethodPost, "/reports", `{"reportedSpaceId":"space-1","reporterId":"spoofed","type":"spam","reason":"r","description":"d"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		if svc.filed.ReporterID != "user-1" {
			t.Fatalf("expected reporter user-1, got %q", svc.filed.ReporterID)
		}
	})

	t.Run("other users' reports look missing", func(t *testing.T) {
		svc := &moderationServiceStub{view: &models.ReportView{Report: models.Report{ID: "r-1", ReporterID: "user-1"}}}
		r := gin.New()
		r.GET("/reports/:id", as("user-2", ""), NewReportHandler(svc).GetReport)
		if w := serve(r, http.MethodGet, "/reports/r-1", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("derived values are served and priorityExplicit is hidden", func(t *testing.T) {
		svc := &moderationServiceStub{view: &models.ReportView{
			Report:   models.Report{ID: "r-1", ReporterID: "user-1", Priority: models.PriorityCritical, PriorityExplicit: true},
			DaysOpen: 1,
			IsUrgent: true,
		}}
		r := gin.New()
		r.GET("/reports/:id", as("user-1", ""), NewReportHandler(svc).GetReport)
		body := decode(t, serve(r, http.MethodGet, "/reports/r-1", ""))
		data, _ := body["data"].(map[string]interface{})
		if data["isUrgent"] != true || data["daysOpen"] != float64(1) {
			t.Fatalf("expected derived values, got %v", data)
		}
		if _, ok := data["priorityExplicit"]; ok {
			t.Fatal("priorityExplicit must not be serialized")
		}
	})
}

func TestAdminHandler_Resolve(t *testing.T) {
	svc := &moderationServiceStub{}
	r := gin.New()
	r.POST("/admin/reports/:id/resolve", as("admin-1", utils.RoleAdmin), NewAdminHandler(svc).ResolveReport)

	w := serve(r, http.MethodPost, "/admin/reports/r-1/resolve", `{"status":"resolved","actionTaken":"warning_issued"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.resolver != "admin-1" || svc.resolveIn.ActionTaken != "warning_issued" {
		t.Fatalf("unexpected resolve call %q %+v", svc.resolver, svc.resolveIn)
	}

	svc.err = moderation.ErrReportClosed
	if w := serve(r, http.MethodPost, "/admin/reports/r-1/resolve", `{"status":"resolved"}`); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a closed report, got %d", w.Code)
	}
}

func TestStubs(t *testing.T) {
	r := gin.New()
	r.GET("/admin/test", AdminRoutesTest)
	r.GET("/reports/test", ReportRoutesTest)
	r.GET("/admin", AdminRoutesNotImplemented)
	r.GET("/reports", ReportRoutesNotImplemented)

	tests := []struct {
		path    string
		code    int
		success bool
		message string
	}{
		{"/admin/test", http.StatusOK, true, "Admin routes mounted and accessible"},
		{"/reports/test", http.StatusOK, true, "Report routes mounted and accessible"},
		{"/admin", http.StatusNotImplemented, false, "Admin routes not implemented yet"},
		{"/reports", http.StatusNotImplemented, false, "Report routes not implemented yet"},
	}
	for _, tc := range tests {
		w := serve(r, http.MethodGet, tc.path, "")
		body := decode(t, w)
		if w.Code != tc.code || body["success"] != tc.success || body["message"] != tc.message || len(body) != 2 {
			t.Errorf("%s: unexpected %d %v", tc.path, w.Code, body)
		}
	}
}
