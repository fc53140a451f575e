package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicedash/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestFormatValidationErrors(t *testing.T) {
	type createInvoiceBody struct {
		CustomerName string `json:"customer_name" binding:"required,min=1,max=200"`
		Notes        string `json:"notes" binding:"max=10"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/invoices", func(c *gin.Context) {
		var req createInvoiceBody
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("reports each failed field under its json name", func(t *testing.T) {
		body := strings.NewReader(`{"customer_name": "", "notes": "far too many characters"}`)
		req := httptest.NewRequest("POST", "/invoices", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		require.Len(t, resp.Error.Details, 2)

		fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
		assert.Contains(t, fields, "customer_name")
		assert.Contains(t, fields, "notes")
	})

	t.Run("valid input passes", func(t *testing.T) {
		body := strings.NewReader(`{"customer_name": "Acme Corp", "notes": "q3"}`)
		req := httptest.NewRequest("POST", "/invoices", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestValidationMessage(t *testing.T) {
	type constrained struct {
		Customer string `binding:"required"`
		Number   string `binding:"min=5"`
		Reason   string `binding:"max=10"`
		ID       string `binding:"uuid"`
		Order    string `binding:"oneof=asc desc"`
		Amount   int    `binding:"gt=0"`
	}

	v := validator.New()

	expected := map[string]string{
		"Customer": "This field is required",
		"Number":   "Must be at least 5 characters",
		"Reason":   "Must be at most 10 characters",
		"ID":       "Invalid UUID format",
		"Order":    "Must be one of: asc desc",
		"Amount":   "Must be greater than 0",
	}

	err := v.Struct(constrained{
		Number: "abc",
		Reason: "this reason is far too long",
		ID:     "not-a-uuid",
		Order:  "sideways",
		Amount: 0,
	})
	require.Error(t, err)

	validationErrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)

	for _, e := range validationErrs {
		want, known := expected[e.Field()]
		require.True(t, known, "unexpected field %q failed", e.Field())
		assert.Equal(t, want, validationMessage(e))
	}
	assert.Len(t, validationErrs, len(expected))
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type statusBody struct {
		Status string `json:"status" binding:"required"`
	}

	router := gin.New()
	router.PATCH("/invoices/:id/status", func(c *gin.Context) {
		var input statusBody
		if err := c.ShouldBindJSON(&input); err != nil {
			HandleValidationError(c, err)
			return
		}
	})

	req := httptest.NewRequest("PATCH", "/invoices/42/status", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeValidation)
}
