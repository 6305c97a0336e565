package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"tovarka-main/internal/category"
	"tovarka-main/internal/middleware"
	"tovarka-main/internal/mocks"
	"tovarka-main/internal/roles"
	"tovarka-main/internal/session"
	typesCategory "tovarka-main/internal/types/category"
	myErr "tovarka-main/internal/types/errors"
)

func requestWithSession(req *http.Request, userID string, role roles.Role) *http.Request {
	sess := &session.Session{
		ID:     "sess-1",
		UserID: userID,
		Role:   role,
	}
	return req.WithContext(middleware.ContextWithSession(req.Context(), sess))
}

func TestCategoryHandler_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		role         roles.Role
		noSession    bool
		mockBehavior func(repo *mocks.MockCategoryRepo)
		expectedCode int
	}{
		{
			name:         "no session",
			body:         `{"name": "Electronics"}`,
			noSession:    true,
			mockBehavior: func(repo *mocks.MockCategoryRepo) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "plain user is forbidden",
			body:         `{"name": "Electronics"}`,
			role:         roles.RoleUser,
			mockBehavior: func(repo *mocks.MockCategoryRepo) {},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "name too short",
			body:         `{"name": "TV"}`,
			role:         roles.RoleAdmin,
			mockBehavior: func(repo *mocks.MockCategoryRepo) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "name too long",
			body:         `{"name": "` + strings.Repeat("a", 31) + `"}`,
			role:         roles.RoleAdmin,
			mockBehavior: func(repo *mocks.MockCategoryRepo) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "bad json",
			body:         `{bad json`,
			role:         roles.RoleAdmin,
			mockBehavior: func(repo *mocks.MockCategoryRepo) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "admin creates category",
			body: `{"name": "Electronics"}`,
			role: roles.RoleAdmin,
			mockBehavior: func(repo *mocks.MockCategoryRepo) {
				repo.EXPECT().
					Create(gomock.Any(), typesCategory.CreateCategory{Name: "Electronics"}, "u1").
					Return(&category.Category{ID: 1, Name: "Electronics"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "duplicate name",
			body: `{"name": "Electronics"}`,
			role: roles.RoleModerator,
			mockBehavior: func(repo *mocks.MockCategoryRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), "u1").
					Return(nil, myErr.ErrAlreadyExists)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockCategoryRepo(ctrl)
			tt.mockBehavior(mockRepo)

			handler := NewCategoryHandler(zaptest.NewLogger(t).Sugar(), mockRepo)

			req := httptest.NewRequest(http.MethodPost, "/category", strings.NewReader(tt.body))
			if !tt.noSession {
				req = requestWithSession(req, "u1", tt.role)
			}
			rr := httptest.NewRecorder()

			handler.Create(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestCategoryHandler_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCategoryRepo(ctrl)
	handler := NewCategoryHandler(zaptest.NewLogger(t).Sugar(), mockRepo)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByID(gomock.Any(), 1).
			Return(&category.Category{ID: 1, Name: "Electronics"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/category/1", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rr := httptest.NewRecorder()

		handler.GetByID(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/category/abc", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "abc"})
		rr := httptest.NewRecorder()

		handler.GetByID(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().
			GetByID(gomock.Any(), 99).
			Return(nil, myErr.ErrNotFoundCategory)

		req := httptest.NewRequest(http.MethodGet, "/category/99", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "99"})
		rr := httptest.NewRecorder()

		handler.GetByID(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCategoryHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCategoryRepo(ctrl)
	handler := NewCategoryHandler(zaptest.NewLogger(t).Sugar(), mockRepo)

	t.Run("plain user is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/category/1", strings.NewReader(`{"name": "Gadgets"}`))
		req = requestWithSession(req, "u1", roles.RoleUser)
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rr := httptest.NewRecorder()

		handler.Update(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("moderator updates category", func(t *testing.T) {
		mockRepo.EXPECT().
			Update(gomock.Any(), 1, typesCategory.UpdateCategory{Name: "Gadgets"}).
			Return(&category.Category{ID: 1, Name: "Gadgets"}, nil)

		req := httptest.NewRequest(http.MethodPut, "/category/1", strings.NewReader(`{"name": "Gadgets"}`))
		req = requestWithSession(req, "u1", roles.RoleModerator)
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rr := httptest.NewRecorder()

		handler.Update(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Update(gomock.Any(), 99, gomock.Any()).
			Return(nil, myErr.ErrNotFoundCategory)

		req := httptest.NewRequest(http.MethodPut, "/category/99", strings.NewReader(`{"name": "Gadgets"}`))
		req = requestWithSession(req, "u1", roles.RoleAdmin)
		req = mux.SetURLVars(req, map[string]string{"id": "99"})
		rr := httptest.NewRecorder()

		handler.Update(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCategoryHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCategoryRepo(ctrl)
	handler := NewCategoryHandler(zaptest.NewLogger(t).Sugar(), mockRepo)

	t.Run("no session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/category/1", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rr := httptest.NewRecorder()

		handler.Delete(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("admin deletes category", func(t *testing.T) {
		mockRepo.EXPECT().
			Delete(gomock.Any(), 1).
			Return(&category.Category{ID: 1, Name: "Electronics"}, nil)

		req := httptest.NewRequest(http.MethodDelete, "/category/1", nil)
		req = requestWithSession(req, "u1", roles.RoleAdmin)
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rr := httptest.NewRecorder()

		handler.Delete(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
