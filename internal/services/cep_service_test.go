package services_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cadastro/internal/address"
	"cadastro/internal/logger"
	"cadastro/internal/services"
	"cadastro/internal/utils"
)

type memCache struct {
	mu   sync.Mutex
	data map[string]address.Data
	ttls map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: map[string]address.Data{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) Get(_ context.Context, cep string) (*address.Data, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[cep]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (c *memCache) Set(_ context.Context, cep string, data address.Data, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[cep] = data
	c.ttls[cep] = ttl
	return nil
}

func viaCEPServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/ws/01310100/json/":
			fmt.Fprint(w, `{"cep":"01310-100","logradouro":"Avenida Paulista","complemento":"de 612 a 1510 - lado par","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`)
		case "/ws/99999999/json/":
			fmt.Fprint(w, `{"erro": true}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCEPService_Lookup(t *testing.T) {
	var hits int32
	srv := viaCEPServer(t, &hits)
	cache := newMemCache()
	svc := services.NewCEPService(utils.NewViaCEPClient(srv.URL, time.Second), cache, time.Hour, logger.Discard())
	ctx := context.Background()

	data, err := svc.Lookup(ctx, "01310-100")
	require.NoError(t, err)
	require.Equal(t, address.Data{
		CEP:          "01310-100",
		Street:       "Avenida Paulista",
		Complement:   "de 612 a 1510 - lado par",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "SP",
	}, data)
	require.Equal(t, time.Hour, cache.ttls["01310-100"])

	// served from cache
	again, err := svc.Lookup(ctx, "01310100")
	require.NoError(t, err)
	require.Equal(t, data, again)
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestCEPService_Errors(t *testing.T) {
	var hits int32
	srv := viaCEPServer(t, &hits)
	svc := services.NewCEPService(utils.NewViaCEPClient(srv.URL, time.Second), nil, time.Hour, logger.Discard())
	ctx := context.Background()

	for _, in := range []string{"", "123", "123456789", "abcdefgh"} {
		_, err := svc.Lookup(ctx, in)
		require.ErrorIs(t, err, services.ErrInvalidCEP, in)
	}
	require.Zero(t, atomic.LoadInt32(&hits))

	_, err := svc.Lookup(ctx, "99999-999")
	require.ErrorIs(t, err, services.ErrCEPNotFound)

	_, err = svc.Lookup(ctx, "00000-000")
	require.ErrorIs(t, err, services.ErrCEPLookupFailed)
}

func TestCEPService_FailuresAreNotCached(t *testing.T) {
	var hits int32
	srv := viaCEPServer(t, &hits)
	cache := newMemCache()
	svc := services.NewCEPService(utils.NewViaCEPClient(srv.URL, time.Second), cache, time.Hour, logger.Discard())

	_, err := svc.Lookup(context.Background(), "99999999")
	require.ErrorIs(t, err, services.ErrCEPNotFound)
	_, err = svc.Lookup(context.Background(), "99999999")
	require.ErrorIs(t, err, services.ErrCEPNotFound)

	require.EqualValues(t, 2, atomic.LoadInt32(&hits))
	require.Empty(t, cache.data)
}

// slowViaCEPServer answers 01310100 only after release is closed and signals
// arrived on every request it receives.
func slowViaCEPServer(t *testing.T, hits *int32, arrived chan<- struct{}, release <-chan struct{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		select {
		case arrived <- struct{}{}:
		default:
		}
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCEPService_ConcurrentLookupsShareOneFetch(t *testing.T) {
	var hits int32
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := slowViaCEPServer(t, &hits, arrived, release)
	svc := services.NewCEPService(utils.NewViaCEPClient(srv.URL, 5*time.Second), newMemCache(), time.Hour, logger.Discard())

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	results := make([]address.Data, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Lookup(context.Background(), "01310-100")
		}(i)
	}

	<-arrived
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, "Avenida Paulista", results[i].Street)
	}
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestCEPService_CancelledCallerDoesNotFailOthers(t *testing.T) {
	var hits int32
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := slowViaCEPServer(t, &hits, arrived, release)
	svc := services.NewCEPService(utils.NewViaCEPClient(srv.URL, 5*time.Second), nil, time.Hour, logger.Discard())

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	go func() { _, _ = svc.Lookup(ctxA, "01310100") }()
	<-arrived

	type result struct {
		data address.Data
		err  error
	}
	second := make(chan result, 1)
	go func() {
		data, err := svc.Lookup(context.Background(), "01310100")
		second <- result{data, err}
	}()

	time.Sleep(50 * time.Millisecond)
	cancelA()
	time.Sleep(50 * time.Millisecond)
	close(release)

	select {
	case res := <-second:
		require.NoError(t, res.err)
		require.Equal(t, "01310-100", res.data.CEP)
	case <-time.After(5 * time.Second):
		t.Fatal("second lookup did not return")
	}
}
