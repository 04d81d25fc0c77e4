package utils_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cadastro/internal/utils"

	"github.com/stretchr/testify/require"
)

func TestOnlyDigits(t *testing.T) {
	require.Equal(t, "11987654321", utils.OnlyDigits("(11) 98765-4321"))
	require.Equal(t, "", utils.OnlyDigits("abc"))
}

func TestFormatPhone(t *testing.T) {
	require.Equal(t, "(11) 98765-4321", utils.FormatPhone("11987654321"))
	require.Equal(t, "(11) 98765-4321", utils.FormatPhone("(11) 98765-4321"))
	require.Equal(t, "1133334444", utils.FormatPhone("1133334444"))
}

func TestViaCEPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ws/01310100/json/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
		case "/ws/99999999/json/":
			_, _ = w.Write([]byte(`{"erro": true}`))
		case "/ws/88888888/json/":
			_, _ = w.Write([]byte(`{"erro": "true"}`))
		case "/ws/77777777/json/":
			_, _ = w.Write([]byte(`not json`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	client := utils.NewViaCEPClient(srv.URL+"/", time.Second)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		res, err := client.Lookup(ctx, "01310100")
		require.NoError(t, err)
		require.Equal(t, "Avenida Paulista", res.Logradouro)
		require.Equal(t, "SP", res.UF)
	})

	t.Run("erro flag", func(t *testing.T) {
		_, err := client.Lookup(ctx, "99999999")
		require.ErrorIs(t, err, utils.ErrViaCEPNotFound)
	})

	t.Run("erro flag as string", func(t *testing.T) {
		_, err := client.Lookup(ctx, "88888888")
		require.ErrorIs(t, err, utils.ErrViaCEPNotFound)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := client.Lookup(ctx, "77777777")
		require.Error(t, err)
		require.NotErrorIs(t, err, utils.ErrViaCEPNotFound)
	})

	t.Run("bad status", func(t *testing.T) {
		_, err := client.Lookup(ctx, "123")
		require.Error(t, err)
	})
}
