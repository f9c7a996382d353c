package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment-service/controllers"
	"fulfillment-service/models"
	"fulfillment-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// --- Stub collaborators: every verify call succeeds ---

type stubPayPal struct{}

func (stubPayPal) GetAccessToken(ctx context.Context) (string, error) {
	return "tok", nil
}

func (stubPayPal) GetOrder(ctx context.Context, orderID, accessToken string) (*services.Order, error) {
	return &services.Order{
		ID:            orderID,
		Status:        "COMPLETED",
		PurchaseUnits: []services.PurchaseUnit{{CustomID: "R1"}},
	}, nil
}

type stubRepo struct{}

func (stubRepo) Find(ctx context.Context, orderRef string) (int, *models.DeliveryRecord, error) {
	return 0, &models.DeliveryRecord{OrderRef: orderRef, FileID: "F1"}, nil
}

func (stubRepo) MarkDelivered(ctx context.Context, rowOffset int) error {
	return nil
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterVerifyRoutes(r, &controllers.VerifyController{
		PayPal: stubPayPal{},
		Repo:   stubRepo{},
		Logger: zap.NewNop(),
	})
	return r
}

func TestHealthRoute(t *testing.T) {
	router := newTestEngine()

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "OK")
}

func TestVerifyRouteRateLimited(t *testing.T) {
	router := newTestEngine()

	postVerify := func() int {
		req, _ := http.NewRequest(http.MethodPost, "/verify",
			bytes.NewBufferString(`{"orderRef":"R1","orderId":"O1"}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		return recorder.Code
	}

	// The limiter allows a burst of 10 per client IP; the burst passes
	// and the overflow request is rejected.
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, postVerify())
	}
	assert.Equal(t, http.StatusTooManyRequests, postVerify())
}
