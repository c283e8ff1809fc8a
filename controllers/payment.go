package controllers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"

	"quickdel/utils"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// PaymentController creates payment intents with Stripe
type PaymentController struct {
	Stripe *client.API
	Log    *logrus.Logger
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(secretKey string, log *logrus.Logger) *PaymentController {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &PaymentController{
		Stripe: sc,
		Log:    log,
	}
}

// CreatePaymentIntent converts a price into minor units and asks Stripe for a
// payment intent. An amount below one minor unit is rejected outright.
func (pc *PaymentController) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TotalPrice float64 `json:"totalPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid input")
		return
	}

	amount := MinorUnits(payload.TotalPrice)
	if amount < 1 {
		utils.WriteError(w, http.StatusBadRequest, "invalid payment amount")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := pc.Stripe.PaymentIntents.New(params)
	if err != nil {
		pc.Log.WithError(err).Error("creating payment intent")
		utils.WriteError(w, utils.UpstreamStatus(err), "error creating payment intent")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"clientSecret": intent.ClientSecret})
}

// MinorUnits converts a price into the smallest currency subunit, truncating
// toward zero
func MinorUnits(price float64) int64 {
	return int64(math.Trunc(price * 100))
}
