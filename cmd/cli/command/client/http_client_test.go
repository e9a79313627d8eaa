package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"yamdb/internal/microservices/http-api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTitlesSendsFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/titles", r.URL.Path)
		assert.Equal(t, "drama", r.URL.Query().Get("genre"))
		assert.Equal(t, "1979", r.URL.Query().Get("year"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Empty(t, r.URL.Query().Get("category"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(dto.NewPage([]dto.TitleResponse{{ID: 1, Name: "Stalker", Year: 1979}}, 2, 20, 21))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL + "/api/v1")
	c.SetToken("tok")
	page, err := c.ListTitles(context.Background(), TitleFilter{Genre: "drama", Year: 1979, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Stalker", page.Data[0].Name)
}

func TestAPIErrorCarriesField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "score must be between 1 and 10", Field: "score"})
	}))
	defer srv.Close()

	score := 11
	_, err := NewHTTPClient(srv.URL).CreateReview(context.Background(), 1, &dto.CreateReviewRequest{Text: "x", Score: &score})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "score", apiErr.Field)
	assert.Equal(t, "400: score must be between 1 and 10 (score)", apiErr.Error())
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/titles/4/reviews/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, NewHTTPClient(srv.URL).DeleteReview(context.Background(), 4, 9))
}

func TestNonJSONErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).GetTitle(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "502 Bad Gateway", apiErr.Message)
}
