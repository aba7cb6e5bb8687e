package validators

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ana@x.com"))
	assert.True(t, IsValidEmail("  ana.lopez@mail.example.co "))
	assert.False(t, IsValidEmail("ana@x"))
	assert.False(t, IsValidEmail("ana x@x.com"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("+57 300 123 4567"))
	assert.True(t, IsValidPhone("(601) 555-0101"))
	assert.False(t, IsValidPhone("12345"))
	assert.False(t, IsValidPhone("call me"))
	assert.False(t, IsValidPhone("--- ---- --"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("secret"))
	assert.False(t, IsValidPassword("12345"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", SanitizeString("  <script>alert(1)</script> "))
	assert.Nil(t, SanitizePtr(nil))

	in := " Calle 10 <b>"
	assert.Equal(t, "Calle 10 b", *SanitizePtr(&in))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@x.com", NormalizeEmail("  Ana@X.com "))
}

type stubResolver struct {
	mx  []*net.MX
	ips []net.IPAddr
}

func (s stubResolver) LookupMX(context.Context, string) ([]*net.MX, error) {
	if len(s.mx) == 0 {
		return nil, errors.New("no mx")
	}
	return s.mx, nil
}

func (s stubResolver) LookupIPAddr(context.Context, string) ([]net.IPAddr, error) {
	if len(s.ips) == 0 {
		return nil, errors.New("no host")
	}
	return s.ips, nil
}

func TestEmailDomainChecker(t *testing.T) {
	ctx := context.Background()

	withMX := &EmailDomainChecker{Resolver: stubResolver{mx: []*net.MX{{Host: "mx.x.com"}}}}
	assert.True(t, withMX.Valid(ctx, "ana@x.com"))

	withIP := &EmailDomainChecker{Resolver: stubResolver{ips: []net.IPAddr{{IP: net.IPv4(10, 0, 0, 1)}}}}
	assert.True(t, withIP.Valid(ctx, "ana@x.com"))

	none := &EmailDomainChecker{Resolver: stubResolver{}}
	assert.False(t, none.Valid(ctx, "ana@x.com"))
	assert.False(t, none.Valid(ctx, "ana@"))
}

type signup struct {
	FirstName string  `json:"first_name" binding:"required,min=2"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     *string `json:"phone" binding:"omitempty,phone"`
	Password  string  `json:"password" binding:"required,password"`
	Rating    int     `json:"rating" binding:"omitempty,min=1,max=5"`
}

func TestMessagesNameJSONFields(t *testing.T) {
	Init()

	phone := "abc"
	err := binding.Validator.ValidateStruct(signup{FirstName: "A", Phone: &phone, Password: "123", Rating: 9})
	require.Error(t, err)

	msgs := Messages(err)
	assert.ElementsMatch(t, []string{
		"first_name must be at least 2 characters long",
		"email is required",
		"phone must be a valid phone number",
		"password must have at least 6 characters",
		"rating must be at most 5",
	}, msgs)
}

func TestMessagesForMalformedPayloads(t *testing.T) {
	var v map[string]any
	syntaxErr := json.Unmarshal([]byte(`{"email":`), &v)
	assert.Equal(t, []string{"Invalid JSON payload"}, Messages(syntaxErr))
	assert.Equal(t, []string{"Invalid JSON payload"}, Messages(io.EOF))

	var typed struct {
		Rating int `json:"rating"`
	}
	typeErr := json.Unmarshal([]byte(`{"rating":"five"}`), &typed)
	assert.Equal(t, []string{"rating has an invalid type"}, Messages(typeErr))

	assert.Equal(t, []string{"Invalid request payload"}, Messages(errors.New("weird")))
	assert.Nil(t, Messages(nil))
}
