package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clancy-dev/receipts-api/internal/application/service"
	"github.com/clancy-dev/receipts-api/internal/domain/entity"
	"github.com/clancy-dev/receipts-api/internal/presentation/http/handler"
	"github.com/clancy-dev/receipts-api/pkg/email"
	"github.com/clancy-dev/receipts-api/pkg/printer"
	"github.com/clancy-dev/receipts-api/pkg/receiptnumber"
	"github.com/clancy-dev/receipts-api/pkg/render"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReceiptRepo is an in-memory ReceiptRepository for handler tests.
type fakeReceiptRepo struct {
	receipts map[uuid.UUID]entity.Receipt
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{receipts: make(map[uuid.UUID]entity.Receipt)}
}

func (f *fakeReceiptRepo) Create(ctx context.Context, r *entity.Receipt) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.receipts[r.ID] = *r
	return nil
}

func (f *fakeReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	r, ok := f.receipts[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeReceiptRepo) List(ctx context.Context) ([]entity.Receipt, error) {
	out := make([]entity.Receipt, 0, len(f.receipts))
	for _, r := range f.receipts {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReceiptRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.receipts, id)
	return nil
}

func setupRouter(repo *fakeReceiptRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	receiptService := service.NewReceiptService(repo, receiptnumber.NewSeeded(1))
	exportService := service.NewExportService(
		repo,
		render.NewImageRenderer(""),
		render.NewPDFRenderer(),
		email.NewEmailService(email.EmailConfig{}),
		printer.NewNullPrinter(),
		"none",
		32,
		render.BusinessView{Name: "Clancy Ssekisambu", Footer: "Thank you for your business!"},
	)

	receiptHandler := handler.NewReceiptHandler(receiptService)
	exportHandler := handler.NewExportHandler(exportService)
	dashboardHandler := handler.NewDashboardHandler(service.NewDashboardService(repo, time.UTC))

	router := gin.New()
	v1 := router.Group("/api/v1")
	receipts := v1.Group("/receipts")
	receipts.POST("", receiptHandler.Create)
	receipts.GET("", receiptHandler.List)
	receipts.GET("/export", exportHandler.Excel)
	receipts.GET("/:id", receiptHandler.Get)
	receipts.DELETE("/:id", receiptHandler.Delete)
	receipts.GET("/:id/image", exportHandler.Image)
	receipts.GET("/:id/pdf", exportHandler.PDF)
	receipts.GET("/:id/qr", exportHandler.QR)
	v1.GET("/dashboard", dashboardHandler.Stats)

	return router
}

func createReceipt(t *testing.T, router *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"customer_name": "Alice Mirembe",
		"date":          "2025-03-07",
		"total_amount":  100000,
		"amount_paid":   40000,
		"payment_for":   "Website development",
		"currency":      "UGX",
	}
}

func TestCreateReceipt_ReturnsDerivedFields(t *testing.T) {
	router := setupRouter(newFakeReceiptRepo())

	w := createReceipt(t, router, validBody())

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	var receipt map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &receipt))
	assert.Equal(t, "Alice Mirembe", receipt["customer_name"])
	assert.Equal(t, float64(40), receipt["paid_percentage"])
	assert.Equal(t, float64(60), receipt["remaining_percentage"])
	assert.Equal(t, "UGX 60,000 only", receipt["remaining_amount_display"])
	assert.True(t, receiptnumber.IsValid(receipt["receipt_number"].(string)))
}

func TestCreateThenGet_ReturnsSameReceipt(t *testing.T) {
	router := setupRouter(newFakeReceiptRepo())

	body := validBody()
	body["receipt_number"] = "REC-777777"
	body["customer_email"] = "alice@example.com"
	body["customer_phone"] = "+256700000000"
	body["payment_method"] = "Mobile Money"
	body["notes"] = "Deposit, balance due end of month"

	w := createReceipt(t, router, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	id, ok := created.Data["id"].(string)
	require.True(t, ok)

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/v1/receipts/"+id, nil))
	require.Equal(t, http.StatusOK, get.Code)

	var fetched struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &fetched))

	assert.Equal(t, "REC-777777", fetched.Data["receipt_number"])
	assert.Equal(t, "alice@example.com", fetched.Data["customer_email"])
	assert.Equal(t, "+256700000000", fetched.Data["customer_phone"])
	assert.Equal(t, "Mobile Money", fetched.Data["payment_method"])
	assert.Equal(t, "Deposit, balance due end of month", fetched.Data["notes"])
	assert.Equal(t, created.Data, fetched.Data)
}

func TestCreateReceipt_ValidationErrors(t *testing.T) {
	router := setupRouter(newFakeReceiptRepo())

	body := validBody()
	body["customer_name"] = ""
	body["total_amount"] = 0

	w := createReceipt(t, router, body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Errors  []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)

	fields := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "customer_name")
	assert.Contains(t, fields, "total_amount")
}

func TestGetReceipt_UnknownID(t *testing.T) {
	router := setupRouter(newFakeReceiptRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receipts/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReceipt_BadID(t *testing.T) {
	router := setupRouter(newFakeReceiptRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receipts/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteReceipt_UnknownIDStillNoContent(t *testing.T) {
	router := setupRouter(newFakeReceiptRepo())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/receipts/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteReceipt_RemovedFromSubsequentReads(t *testing.T) {
	repo := newFakeReceiptRepo()
	router := setupRouter(repo)

	require.Equal(t, http.StatusCreated, createReceipt(t, router, validBody()).Code)

	var id uuid.UUID
	for _, r := range repo.receipts {
		id = r.ID
	}

	del := httptest.NewRecorder()
	router.ServeHTTP(del, httptest.NewRequest(http.MethodDelete, "/api/v1/receipts/"+id.String(), nil))
	require.Equal(t, http.StatusNoContent, del.Code)

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/v1/receipts/"+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, get.Code)

	list := httptest.NewRecorder()
	router.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/v1/receipts", nil))
	require.Equal(t, http.StatusOK, list.Code)

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestListReceipts_Search(t *testing.T) {
	router := setupRouter(newFakeReceiptRepo())

	require.Equal(t, http.StatusCreated, createReceipt(t, router, validBody()).Code)

	other := validBody()
	other["customer_name"] = "Brian Okello"
	other["payment_for"] = "Hosting renewal"
	require.Equal(t, http.StatusCreated, createReceipt(t, router, other).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receipts?search=hosting", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Brian Okello", resp.Data[0]["customer_name"])
}

func TestImageDownload_Headers(t *testing.T) {
	repo := newFakeReceiptRepo()
	router := setupRouter(repo)

	require.Equal(t, http.StatusCreated, createReceipt(t, router, validBody()).Code)

	var id uuid.UUID
	var number string
	for _, r := range repo.receipts {
		id = r.ID
		number = r.ReceiptNumber
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receipts/"+id.String()+"/image", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Receipt-"+number+".png")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestDashboardStats(t *testing.T) {
	router := setupRouter(newFakeReceiptRepo())

	require.Equal(t, http.StatusCreated, createReceipt(t, router, validBody()).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TotalReceipts int `json:"total_receipts"`
			Currencies    []struct {
				Currency string `json:"currency"`
				Receipts int    `json:"receipts"`
			} `json:"currencies"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.TotalReceipts)
	require.Len(t, resp.Data.Currencies, 1)
	assert.Equal(t, "UGX", resp.Data.Currencies[0].Currency)
}
