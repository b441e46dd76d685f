package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newsletterRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/newsletter", SubscribeNewsletter)
	r.GET("/api/newsletter/verify", VerifyNewsletter)
	return r
}

func TestSubscribeNewsletterRejectsInvalidEmail(t *testing.T) {
	r := newsletterRouter()

	for _, body := range []string{
		`{}`,
		`{"email":""}`,
		`{"email":"pas-un-email"}`,
		`pas du json`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/newsletter", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestVerifyNewsletterRequiresToken(t *testing.T) {
	r := newsletterRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/newsletter/verify", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Token manquant")
}
