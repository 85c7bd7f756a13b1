package test_functional

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRegisterFlow(t *testing.T) {
	u := AppBaseURL
	u.Path = "/auth/register"

	suffix := uuid.New().String()[:8]
	body := fmt.Sprintf(`{
		"username": "user_%s",
		"email": "user_%s@example.com",
		"password": "secret1",
		"confirm": "secret1"
	}`, suffix, suffix)

	t.Run("successful register", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		type Resp struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		}

		resp, err := resty.New().
			R().
			SetHeader("Content-Type", "application/json").
			SetContext(ctx).
			SetResult(&Resp{}).
			SetBody(body).
			Post(u.String())
		assert.Nil(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode())

		got, ok := resp.Result().(*Resp)
		assert.True(t, ok)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "user_"+suffix, got.Username)
	})

	t.Run("duplicate register is rejected", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		resp, err := resty.New().
			R().
			SetHeader("Content-Type", "application/json").
			SetContext(ctx).
			SetBody(body).
			Post(u.String())
		assert.Nil(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	})
}

func TestNavigate(t *testing.T) {
	u := AppBaseURL
	u.Path = "/navigate"

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	resp, err := resty.New().
		R().
		SetContext(ctx).
		SetQueryParam("to", "#/definitely-not-a-route").
		Get(u.String())
	assert.Nil(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), "notFound")
}
