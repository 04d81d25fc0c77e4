package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"cadastro/internal/address"
	"cadastro/internal/utils"
)

// CEPCache stores resolved addresses keyed by normalized CEP.
type CEPCache interface {
	Get(ctx context.Context, cep string) (*address.Data, error)
	Set(ctx context.Context, cep string, data address.Data, ttl time.Duration) error
}

// CEPSource resolves an 8-digit CEP upstream.
type CEPSource interface {
	Lookup(ctx context.Context, digits string) (*utils.ViaCEPResponse, error)
}

type CEPService struct {
	source CEPSource
	cache  CEPCache
	ttl    time.Duration
	log    *logrus.Logger
	group  singleflight.Group
}

// NewCEPService builds the lookup service. cache may be nil.
func NewCEPService(source CEPSource, cache CEPCache, ttl time.Duration, log *logrus.Logger) *CEPService {
	return &CEPService{source: source, cache: cache, ttl: ttl, log: log}
}

// Lookup resolves a CEP in any common spelling ("01310100", "01310-100").
func (s *CEPService) Lookup(ctx context.Context, cep string) (address.Data, error) {
	normalized, ok := address.NormalizeCEP(cep)
	if !ok {
		return address.Data{}, ErrInvalidCEP
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, normalized)
		if err != nil {
			s.log.WithError(err).WithField("cep", normalized).Warn("[cep] cache read failed")
		} else if cached != nil {
			return *cached, nil
		}
	}

	// The shared fetch outlives any single caller; the ViaCEP client bounds it.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(normalized, func() (any, error) {
		return s.fetch(shared, normalized)
	})
	if err != nil {
		return address.Data{}, err
	}
	return v.(address.Data), nil
}

func (s *CEPService) fetch(ctx context.Context, normalized string) (address.Data, error) {
	res, err := s.source.Lookup(ctx, utils.OnlyDigits(normalized))
	if err != nil {
		if errors.Is(err, utils.ErrViaCEPNotFound) {
			return address.Data{}, ErrCEPNotFound
		}
		s.log.WithError(err).WithField("cep", normalized).Error("[cep] lookup failed")
		return address.Data{}, ErrCEPLookupFailed
	}

	data := address.Data{
		CEP:          normalized,
		Street:       res.Logradouro,
		Complement:   res.Complemento,
		Neighborhood: res.Bairro,
		City:         res.Localidade,
		State:        res.UF,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, normalized, data, s.ttl); err != nil {
			s.log.WithError(err).WithField("cep", normalized).Warn("[cep] cache write failed")
		}
	}
	return data, nil
}
