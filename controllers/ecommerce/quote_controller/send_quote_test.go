package quote_controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	verifyErr error
	sendErr   error
	sent      []services.MailMessage
}

func (f *fakeMailer) Verify(ctx context.Context) error {
	return f.verifyErr
}

func (f *fakeMailer) Send(ctx context.Context, msg services.MailMessage) (*services.SendResult, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, msg)
	return &services.SendResult{MessageID: "<abc@example.com>", Accepted: msg.To}, nil
}

func setup(t *testing.T, mailer *fakeMailer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	Init(services.NewQuoteNotifier(mailer, config.MailConfig{To: "owner@pacifictide.ca"}, nil))
	t.Cleanup(func() { Init(nil) })

	r := gin.New()
	r.POST("/api/v1/emails", SendQuote)
	return r
}

func post(r *gin.Engine, body any) (*httptest.ResponseRecorder, map[string]any) {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/emails", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func inquiry() map[string]any {
	return map[string]any{
		"name":    "Ada",
		"email":   "ada@example.com",
		"subject": "Hello",
		"message": "Do you ship to Tofino?",
	}
}

func TestSendQuote_MissingFields(t *testing.T) {
	mailer := &fakeMailer{}
	r := setup(t, mailer)

	body := inquiry()
	body["message"] = "   "
	w, out := post(r, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields.", out["message"])
	assert.Equal(t, map[string]any{"message": "required"}, out["fields"])
	assert.Empty(t, mailer.sent)
}

func TestSendQuote_CartWithoutSummary(t *testing.T) {
	mailer := &fakeMailer{}
	r := setup(t, mailer)

	body := inquiry()
	body["isCartQuote"] = true
	body["cartItems"] = []map[string]any{{"name": "Barrel Sauna", "qty": 1, "price": 4000}}
	w, out := post(r, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cart summary is required for quote requests.", out["message"])
	assert.Empty(t, mailer.sent)
}

func TestSendQuote_MalformedJSON(t *testing.T) {
	r := setup(t, &fakeMailer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/emails", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendQuote_TransportNotConfigured(t *testing.T) {
	r := setup(t, &fakeMailer{verifyErr: services.ErrMailNotConfigured})

	w, out := post(r, inquiry())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Email service is not configured.", out["message"])
}

func TestSendQuote_SendFailureSurfacesMessage(t *testing.T) {
	r := setup(t, &fakeMailer{sendErr: errors.New("550 mailbox unavailable")})

	w, out := post(r, inquiry())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "550 mailbox unavailable", out["message"])
}

func TestSendQuote_VerifyFailureIsWrapped(t *testing.T) {
	r := setup(t, &fakeMailer{verifyErr: errors.New("dial tcp: connection refused")})

	w, out := post(r, inquiry())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, out["message"], "connection refused")
}

func TestSendQuote_CartQuoteSent(t *testing.T) {
	mailer := &fakeMailer{}
	r := setup(t, mailer)

	body := inquiry()
	body["isCartQuote"] = true
	body["cartItems"] = []map[string]any{{"name": "Barrel Sauna", "qty": 1, "price": 5650}}
	body["cartSummary"] = map[string]any{"subtotal": 5650, "shipping": 350, "tax": 0, "total": 6000}
	w, out := post(r, body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Email sent successfully!", out["message"])
	assert.Equal(t, "<abc@example.com>", out["messageId"])
	assert.Equal(t, []any{"owner@pacifictide.ca"}, out["accepted"])
	assert.Equal(t, []any{}, out["rejected"])

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "🔥 HIGH-VALUE LEAD: Quote Request - $6,000 - Ada", mailer.sent[0].Subject)
	assert.Equal(t, "ada@example.com", mailer.sent[0].ReplyTo)
}

func TestSubmit_WithoutNotifier(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/quote", nil)

	req := &models.QuoteRequest{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"}
	Submit(c, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
