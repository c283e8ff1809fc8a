package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quickdel/utils"

	"github.com/sirupsen/logrus"
)

func TestMinorUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		price float64
		want  int64
	}{
		{name: "whole price", price: 10.00, want: 1000},
		{name: "one cent", price: 0.01, want: 1},
		{name: "below one minor unit", price: 0.001, want: 0},
		{name: "zero", price: 0, want: 0},
		{name: "truncates toward zero", price: 19.99, want: 1998},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MinorUnits(tt.price); got != tt.want {
				t.Errorf("MinorUnits(%v) = %d, want %d", tt.price, got, tt.want)
			}
		})
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	t.Parallel()

	pc := NewPaymentController("sk_test_unused", logrus.New())

	t.Run("amount below one minor unit is rejected explicitly", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/create-payment-intent",
			strings.NewReader(`{"totalPrice": 0.001}`))
		rec := httptest.NewRecorder()
		pc.CreatePaymentIntent(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		var body utils.ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body.Message != "invalid payment amount" {
			t.Errorf("message = %q, want %q", body.Message, "invalid payment amount")
		}
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/create-payment-intent",
			strings.NewReader(`{"totalPrice": `))
		rec := httptest.NewRecorder()
		pc.CreatePaymentIntent(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
