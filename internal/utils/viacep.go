package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultViaCEPBaseURL is the public ViaCEP endpoint.
const DefaultViaCEPBaseURL = "https://viacep.com.br"

// ErrViaCEPNotFound is returned when ViaCEP answers with {"erro": true}.
var ErrViaCEPNotFound = errors.New("viacep: cep not found")

// ViaCEPResponse mirrors the JSON returned by /ws/{cep}/json/.
type ViaCEPResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	IBGE        string `json:"ibge"`
	GIA         string `json:"gia"`
	DDD         string `json:"ddd"`
	SIAFI       string `json:"siafi"`
	// ViaCEP sends "erro": true, older mirrors send "erro": "true".
	Erro any `json:"erro,omitempty"`
}

// NotFound reports whether the response carries ViaCEP's error flag.
func (r *ViaCEPResponse) NotFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}

type ViaCEPClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewViaCEPClient(baseURL string, timeout time.Duration) *ViaCEPClient {
	if baseURL == "" {
		baseURL = DefaultViaCEPBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ViaCEPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Lookup queries ViaCEP for an 8-digit CEP. A single attempt is made.
func (c *ViaCEPClient) Lookup(ctx context.Context, digits string) (*ViaCEPResponse, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.BaseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("viacep request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("viacep request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("viacep read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep returned status %d", resp.StatusCode)
	}

	var result ViaCEPResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("viacep parse response: %w", err)
	}
	if result.NotFound() {
		return nil, ErrViaCEPNotFound
	}
	return &result, nil
}
