package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"glosskeep/internal/handlers"
	"glosskeep/internal/model"
	"glosskeep/internal/service"
	"glosskeep/internal/service/mocks"
)

func newTermRouter(t *testing.T) (*chi.Mux, *mocks.MockTermService, *mocks.MockQueryService) {
	t.Helper()
	mockTerms := mocks.NewMockTermService(t)
	mockQueries := mocks.NewMockQueryService(t)
	handler := handlers.NewTermHandler(mockTerms, mockQueries, testLogger())

	router := chi.NewRouter()
	router.Get("/api/terms", handler.ListTerms)
	router.Get("/api/terms/resolve", handler.ResolveTerm)
	router.Get("/api/terms/{id}", handler.GetTerm)
	router.Get("/api/terms/{id}/neighbors", handler.GetNeighbors)
	router.Post("/api/terms", handler.CreateTerm)
	router.Put("/api/terms/{id}", handler.UpdateTerm)
	router.Delete("/api/terms/{id}", handler.DeleteTerm)
	return router, mockTerms, mockQueries
}

func doJSON(t *testing.T, router http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeErrorResponse(t *testing.T, rr *httptest.ResponseRecorder) model.APIErrorResponse {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	return errResp
}

func TestTermHandler_ListTerms(t *testing.T) {
	router, _, mockQueries := newTermRouter(t)

	terms := []*model.Term{
		{ID: 1, Term: "Alpha", Category: "c", Definition: "d"},
		{ID: 2, Term: "Beta", Category: "c", Definition: "d"},
	}
	mockQueries.On("ListTerms", mock.Anything, service.TermFilter{
		Category:     "c",
		Search:       "al",
		LearningPath: "p",
	}).Return(terms, nil).Once()

	rr := doJSON(t, router, "GET", "/api/terms?category=c&search=al&path=p", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []*model.Term
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Term)
}

func TestTermHandler_ListTerms_EmptyIsJSONArray(t *testing.T) {
	router, _, mockQueries := newTermRouter(t)

	mockQueries.On("ListTerms", mock.Anything, service.TermFilter{}).Return(nil, nil).Once()

	rr := doJSON(t, router, "GET", "/api/terms", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestTermHandler_GetTerm(t *testing.T) {
	router, mockTerms, _ := newTermRouter(t)

	tests := []struct {
		name           string
		target         string
		setupMock      func()
		expectedStatus int
	}{
		{
			name:   "Success",
			target: "/api/terms/7",
			setupMock: func() {
				mockTerms.On("GetTerm", mock.Anything, 7).
					Return(&model.Term{ID: 7, Term: "Alpha", Category: "c", Definition: "d"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Fail - not found",
			target: "/api/terms/8",
			setupMock: func() {
				mockTerms.On("GetTerm", mock.Anything, 8).Return(nil, model.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Fail - non-numeric id",
			target:         "/api/terms/abc",
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Fail - zero id",
			target:         "/api/terms/0",
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()
			rr := doJSON(t, router, "GET", tc.target, nil)
			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestTermHandler_GetNeighbors(t *testing.T) {
	router, _, mockQueries := newTermRouter(t)

	prev := &model.Term{ID: 1, Term: "Alpha", Category: "c", Definition: "d"}
	mockQueries.On("Neighbors", mock.Anything, service.TermFilter{Category: "c"}, 2).
		Return(prev, nil, nil).Once()

	rr := doJSON(t, router, "GET", "/api/terms/2/neighbors?category=c", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp handlers.NeighborsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Previous)
	assert.Equal(t, "Alpha", resp.Previous.Term)
	// Edge of the sequence: next is null, not omitted.
	assert.Nil(t, resp.Next)
	assert.Contains(t, rr.Body.String(), `"next":null`)
}

func TestTermHandler_ResolveTerm(t *testing.T) {
	router, _, mockQueries := newTermRouter(t)

	t.Run("Success", func(t *testing.T) {
		mockQueries.On("ResolveRelated", mock.Anything, "Machine Learning").
			Return(&model.Term{ID: 3, Term: "Machine Learning", Category: "c", Definition: "d"}, nil).Once()

		rr := doJSON(t, router, "GET", "/api/terms/resolve?name=Machine+Learning", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Fail - undefined reference", func(t *testing.T) {
		mockQueries.On("ResolveRelated", mock.Anything, "Ghost").Return(nil, model.ErrNotFound).Once()

		rr := doJSON(t, router, "GET", "/api/terms/resolve?name=Ghost", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Fail - missing name parameter", func(t *testing.T) {
		rr := doJSON(t, router, "GET", "/api/terms/resolve", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errResp := decodeErrorResponse(t, rr)
		assert.Equal(t, "VALIDATION_ERROR", errResp.Error.Code)
	})
}

func TestTermHandler_CreateTerm(t *testing.T) {
	router, mockTerms, _ := newTermRouter(t)

	validReq := model.CreateTermRequest{
		Term:       "Alpha",
		Category:   "Basics",
		Definition: "first letter",
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: validReq,
			setupMock: func() {
				mockTerms.On("CreateTerm", mock.Anything, &validReq).
					Return(&model.Term{ID: 1, Term: "Alpha", Category: "Basics", Definition: "first letter"}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Fail - missing required fields",
			body:           model.CreateTermRequest{Term: "Alpha"},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Fail - unknown category",
			body: validReq,
			setupMock: func() {
				mockTerms.On("CreateTerm", mock.Anything, &validReq).
					Return(nil, model.NewAppError("UNKNOWN_CATEGORY", `Category "Basics" does not exist.`, "category", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()
			rr := doJSON(t, router, "POST", "/api/terms", tc.body)
			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus >= 400 {
				errResp := decodeErrorResponse(t, rr)
				assert.NotEmpty(t, errResp.Error.Code)
				assert.NotEmpty(t, errResp.Error.Message)
			}
		})
	}
}

func TestTermHandler_UpdateTerm(t *testing.T) {
	router, mockTerms, _ := newTermRouter(t)

	newDef := "updated"
	req := model.UpdateTermRequest{Definition: &newDef}

	t.Run("Success", func(t *testing.T) {
		mockTerms.On("UpdateTerm", mock.Anything, 5, &req).
			Return(&model.Term{ID: 5, Term: "Alpha", Category: "c", Definition: "updated"}, nil).Once()

		rr := doJSON(t, router, "PUT", "/api/terms/5", req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Fail - not found", func(t *testing.T) {
		mockTerms.On("UpdateTerm", mock.Anything, 6, &req).Return(nil, model.ErrNotFound).Once()

		rr := doJSON(t, router, "PUT", "/api/terms/6", req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Fail - invalid JSON body", func(t *testing.T) {
		httpReq := httptest.NewRequest("PUT", "/api/terms/5", bytes.NewBufferString("{not json"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httpReq)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTermHandler_DeleteTerm(t *testing.T) {
	router, mockTerms, _ := newTermRouter(t)

	t.Run("Success", func(t *testing.T) {
		mockTerms.On("DeleteTerm", mock.Anything, 9).Return(nil).Once()

		rr := doJSON(t, router, "DELETE", "/api/terms/9", nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("Fail - not found", func(t *testing.T) {
		mockTerms.On("DeleteTerm", mock.Anything, 10).Return(model.ErrNotFound).Once()

		rr := doJSON(t, router, "DELETE", "/api/terms/10", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
