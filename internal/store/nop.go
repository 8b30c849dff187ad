package store

import (
	"context"
	"time"

	"github.com/amishk599/lexiroute/internal/model"
)

// NopStore is used when history is disabled. It drops every record and lists
// nothing.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Record(_ context.Context, _ model.DispatchRecord) error { return nil }
func (s *NopStore) Recent(_ context.Context, _ int) ([]model.DispatchRecord, error) {
	return nil, nil
}
func (s *NopStore) Cleanup(_ time.Duration) error { return nil }
func (s *NopStore) Close() error                  { return nil }
