package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"waterbill-backend/internal/models"
	"waterbill-backend/internal/services"

	"github.com/gorilla/mux"
)

type stubNotificationStore struct {
	byID      map[int]*models.Notification
	created   []*models.Notification
	markCalls int
}

func (s *stubNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	s.created = append(s.created, n)
	return nil
}

func (s *stubNotificationStore) List(ctx context.Context) ([]*models.Notification, error) {
	var all []*models.Notification
	for _, n := range s.byID {
		all = append(all, n)
	}
	return all, nil
}

func (s *stubNotificationStore) ListByCustomer(ctx context.Context, customerID int) ([]*models.Notification, error) {
	return nil, nil
}

// MarkRead mirrors the UPDATE the real store runs: flipping an already-read
// row (or a missing id) is a no-op, never an error.
func (s *stubNotificationStore) MarkRead(ctx context.Context, id int) error {
	s.markCalls++
	if n, ok := s.byID[id]; ok {
		n.IsRead = true
	}
	return nil
}

func newNotificationTestServer(store *stubNotificationStore) *mux.Router {
	handler := NewNotificationHandler(services.NewNotificationService(store))
	r := mux.NewRouter()
	r.HandleFunc("/api/notifications", handler.List).Methods("GET")
	r.HandleFunc("/api/notifications", handler.Send).Methods("POST")
	r.HandleFunc("/api/notifications/{id}/read", handler.MarkRead).Methods("PUT")
	return r
}

func TestMarkReadIsIdempotent(t *testing.T) {
	store := &stubNotificationStore{byID: map[int]*models.Notification{
		41: {ID: 41, CustomerID: 7, Title: "Payment Proof Submitted"},
	}}
	router := newNotificationTestServer(store)

	markRead := func() *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/notifications/41/read", nil))
		return rr
	}

	if rr := markRead(); rr.Code != http.StatusOK {
		t.Fatalf("first mark-read: status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if !store.byID[41].IsRead {
		t.Fatal("notification not marked read")
	}

	// Re-marking the same row succeeds and leaves it read.
	rr := markRead()
	if rr.Code != http.StatusOK {
		t.Fatalf("second mark-read: status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp map[string]bool
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !resp["success"] {
		t.Error("second mark-read did not report success")
	}
	if !store.byID[41].IsRead {
		t.Error("re-mark changed the row's state")
	}
	if store.markCalls != 2 {
		t.Errorf("markCalls = %d, want 2", store.markCalls)
	}
}

func TestMarkReadUnknownNotification(t *testing.T) {
	router := newNotificationTestServer(&stubNotificationStore{byID: map[int]*models.Notification{}})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/notifications/99/read", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for a missing id", rr.Code)
	}
}

func TestSendNotificationDefaultsType(t *testing.T) {
	store := &stubNotificationStore{byID: map[int]*models.Notification{}}
	router := newNotificationTestServer(store)

	body := `{"customer_id": 0, "title": "Scheduled Interruption", "message": "Service off 1-5 PM."}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if len(store.created) != 1 || store.created[0].Type != models.NotificationTypeBroadcast {
		t.Errorf("created = %+v, want one broadcast", store.created)
	}
}
