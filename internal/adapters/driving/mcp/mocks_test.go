package mcp

import (
	"context"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	resp      *domain.SearchResponse
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.resp != nil {
		return m.resp, nil
	}
	return &domain.SearchResponse{
		Success: true,
		Query:   query,
		Scope:   opts.Scope,
		Results: []domain.ResultRecord{},
	}, nil
}

// mockBackendService is a mock implementation of driving.BackendService.
type mockBackendService struct {
	statuses   map[domain.BackendType]domain.BackendStatus
	checkCalls int
}

func (m *mockBackendService) Statuses() map[domain.BackendType]domain.BackendStatus {
	return m.statuses
}

func (m *mockBackendService) CheckAll(_ context.Context) map[domain.BackendType]domain.BackendStatus {
	m.checkCalls++
	return m.statuses
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records   []domain.SearchRecord
	err       error
	lastLimit int
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.SearchRecord, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}
