package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/firedoors/firedoors-backend/pkg/errors"
	"github.com/firedoors/firedoors-backend/pkg/types"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.ErrorEnvelope {
	t.Helper()
	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	return body
}

func TestWriteSuccessWrapsData(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"number": "103"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", w.Code)
	}
	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body.Data.(map[string]any)["number"] != "103" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestWriteSuccessStatusSetsCode(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccessStatus(w, http.StatusCreated, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201 but got %d", w.Code)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "order number required").
		WithDetails(map[string]string{"field": "number"})
	WriteError(context.Background(), nil, w, err)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", w.Code)
	}
	body := decodeError(t, w)
	if body.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Message != "order number required" {
		t.Fatalf("client-safe codes should expose the message, got %q", body.Error.Message)
	}
	if body.Error.Details == nil {
		t.Fatal("expected details in public payload")
	}
}

func TestWriteErrorHidesInternalMessages(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("dial tcp: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", w.Code)
	}
	body := decodeError(t, w)
	if body.Error.Code != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Message != "internal server error" {
		t.Fatalf("raw error text must not leak, got %q", body.Error.Message)
	}
	if body.Error.Details != nil {
		t.Fatal("details should be omitted for internal errors")
	}
}

func TestWriteErrorStateConflict(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeStateConflict, "item already shipped")
	WriteError(context.Background(), nil, w, err)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 but got %d", w.Code)
	}
	if body := decodeError(t, w); body.Error.Message != "item already shipped" {
		t.Fatalf("unexpected message %q", body.Error.Message)
	}
}
