package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validContact() Contact {
	return Contact{FirstName: "  Jean ", LastName: "Dupont", Phone: "+32 (470) 12-34-56", Quantity: 2, Comment: strPtr("   ")}
}

func TestContact_Normalize(t *testing.T) {
	c := validContact()
	require.NoError(t, c.Normalize())
	assert.Equal(t, "Jean", c.FirstName)
	assert.Nil(t, c.Comment, "blank comment becomes nil")
}

func TestContact_NormalizeRejects(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(c *Contact)
		field string
	}{
		{"empty first name", func(c *Contact) { c.FirstName = "   " }, "firstName"},
		{"long last name", func(c *Contact) { c.LastName = strings.Repeat("é", 51) }, "lastName"},
		{"short phone", func(c *Contact) { c.Phone = "1234567" }, "phone"},
		{"letters in phone", func(c *Contact) { c.Phone = "0470abc123" }, "phone"},
		{"long phone", func(c *Contact) { c.Phone = strings.Repeat("1", 21) }, "phone"},
		{"zero quantity", func(c *Contact) { c.Quantity = 0 }, "quantity"},
		{"quantity above max", func(c *Contact) { c.Quantity = 11 }, "quantity"},
		{"long comment", func(c *Contact) { c.Comment = strPtr(strings.Repeat("x", 501)) }, "comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContact()
			tt.edit(&c)
			err := c.Normalize()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestContact_Bounds(t *testing.T) {
	c := validContact()
	c.FirstName = strings.Repeat("a", 50)
	c.Phone = "12345678"
	c.Quantity = 10
	c.Comment = strPtr(strings.Repeat("x", 500))
	assert.NoError(t, c.Normalize())
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail(strPtr(" jean@example.be "))
	require.NoError(t, err)
	assert.Equal(t, "jean@example.be", *got)

	got, err = NormalizeEmail(strPtr(""))
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = NormalizeEmail(strPtr("Jean <jean@example.be>"))
	assert.Error(t, err)

	_, err = NormalizeEmail(strPtr("not-an-email"))
	assert.Error(t, err)

	_, err = NormalizeEmail(strPtr(strings.Repeat("a", 96) + "@x.be"))
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("date", "", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalDate("date", "2025-10-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-01", *got)

	_, err = ParseOptionalDate("date", "01/10/2025", time.UTC)
	assert.Error(t, err)
}

func TestRespondValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondValidation(rec, &ValidationError{Field: "phone", Message: "bad phone"}, "fallback")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"bad phone"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "x", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}{}`))
	assert.Error(t, DecodeJSON(r, &dst))
}
