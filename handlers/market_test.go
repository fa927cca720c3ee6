package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"smartstay/models"
	"smartstay/services/submit"
)

type fakeMarketService struct {
	offers  []models.Offer
	receipt *submit.Receipt
}

func (f *fakeMarketService) Offers(activeOnly bool) []models.Offer { return f.offers }
func (f *fakeMarketService) Slots() []models.Slot                  { return nil }
func (f *fakeMarketService) MyReservations() []models.Slot         { return nil }

func (f *fakeMarketService) CreateOffer(ctx context.Context, req models.CreateOfferRequest) *submit.Receipt {
	return f.receipt
}

func (f *fakeMarketService) AcceptOffer(ctx context.Context, offerID uint64) *submit.Receipt {
	return f.receipt
}

func (f *fakeMarketService) CancelOffer(ctx context.Context, offerID uint64) *submit.Receipt {
	return f.receipt
}

func newMarketRouter(svc *fakeMarketService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMarketHandler(svc)
	r.GET("/api/market/offers", h.Offers)
	r.POST("/api/market/offers", h.CreateOffer)
	r.POST("/api/market/offers/:id/accept", h.AcceptOffer)
	return r
}

func TestOffersEndpoint(t *testing.T) {
	svc := &fakeMarketService{offers: []models.Offer{
		{OfferID: 1, OfferType: "SWAP", Offerer: "0xabc", Active: true},
	}}
	router := newMarketRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/market/offers", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got []models.Offer
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(got) != 1 || got[0].OfferType != "SWAP" {
		t.Fatalf("body = %+v", got)
	}
}

func TestCreateOfferRejectsBadBody(t *testing.T) {
	router := newMarketRouter(&fakeMarketService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/market/offers", strings.NewReader(`{"offeredDay": 2}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAcceptOfferStatusMapping(t *testing.T) {
	cases := []struct {
		receipt *submit.Receipt
		want    int
	}{
		{&submit.Receipt{State: submit.StateSucceeded, TxHash: "0x1"}, http.StatusOK},
		{&submit.Receipt{State: submit.StateFailed, Err: submit.Reverted("offer already accepted")}, http.StatusConflict},
		{&submit.Receipt{State: submit.StateFailed, Err: submit.Local("connect a wallet before submitting")}, http.StatusBadRequest},
		{&submit.Receipt{State: submit.StateFailed, Err: submit.Declined("locked")}, http.StatusBadRequest},
		{&submit.Receipt{State: submit.StateFailed, Err: &submit.Error{Code: submit.CodeProviderError, Message: "down"}}, http.StatusBadGateway},
	}
	for _, tc := range cases {
		router := newMarketRouter(&fakeMarketService{receipt: tc.receipt})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/market/offers/7/accept", nil)
		router.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("receipt %+v -> status %d, want %d", tc.receipt.Err, w.Code, tc.want)
		}
	}
}

func TestAcceptOfferBadID(t *testing.T) {
	router := newMarketRouter(&fakeMarketService{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/market/offers/nope/accept", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
