package user_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hris-account/internal/shared/apperror"
	"hris-account/internal/user"
	usererrors "hris-account/internal/user/errors"
	userMock "hris-account/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupUserRouter(h *user.Handler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.POST("/change-password", h.ChangePassword)
	r.PUT("/update-profile", h.UpdateProfile)
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var res map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestHandler_ChangePassword(t *testing.T) {
	const userID = "0b0c6f8e-4d0e-4b53-9f0e-2a8d1c1f6a11"

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		router := setupUserRouter(user.NewHandler(svc), userID)

		svc.EXPECT().ChangePassword(gomock.Any(), userID, "old-pass", "new-pass").Return(nil)

		body, _ := json.Marshal(user.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"})
		req := httptest.NewRequest(http.MethodPost, "/change-password", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		res := decodeEnvelope(t, w)
		assert.Equal(t, "Password changed successfully", res["data"].(map[string]any)["message"])
	})

	t.Run("wrong current password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		router := setupUserRouter(user.NewHandler(svc), userID)

		svc.EXPECT().ChangePassword(gomock.Any(), userID, "nope", "new-pass").Return(usererrors.ErrWrongPassword)

		body, _ := json.Marshal(user.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-pass"})
		req := httptest.NewRequest(http.MethodPost, "/change-password", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		res := decodeEnvelope(t, w)
		assert.Equal(t, "Current password is incorrect", res["error"].(map[string]any)["message"])
	})

	t.Run("new password too short", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		router := setupUserRouter(user.NewHandler(svc), userID)

		body, _ := json.Marshal(user.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "123"})
		req := httptest.NewRequest(http.MethodPost, "/change-password", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		res := decodeEnvelope(t, w)
		assert.Equal(t, "New Password is invalid", res["error"].(map[string]any)["message"])
	})

	t.Run("new password too long", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		router := setupUserRouter(user.NewHandler(svc), userID)

		body, _ := json.Marshal(user.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: strings.Repeat("a", 73)})
		req := httptest.NewRequest(http.MethodPost, "/change-password", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		res := decodeEnvelope(t, w)
		assert.Equal(t, "New Password is invalid", res["error"].(map[string]any)["message"])
	})

	t.Run("store failure hides the cause", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		router := setupUserRouter(user.NewHandler(svc), userID)

		svc.EXPECT().ChangePassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("pq: connection refused"))

		body, _ := json.Marshal(user.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"})
		req := httptest.NewRequest(http.MethodPost, "/change-password", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestHandler_UpdateProfile(t *testing.T) {
	const userID = "0b0c6f8e-4d0e-4b53-9f0e-2a8d1c1f6a11"

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		router := setupUserRouter(user.NewHandler(svc), userID)

		reqBody := user.UpdateProfileRequest{Name: "Jane", Email: "jane@example.com"}
		svc.EXPECT().UpdateProfile(gomock.Any(), userID, reqBody).
			Return(user.UserResponse{ID: userID, Name: "Jane", Email: "jane@example.com", Role: user.RoleEmployee}, nil)

		body, _ := json.Marshal(reqBody)
		req := httptest.NewRequest(http.MethodPut, "/update-profile", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w)["data"].(map[string]any)
		assert.Equal(t, "Profile updated successfully", data["message"])
		u := data["user"].(map[string]any)
		assert.Equal(t, "jane@example.com", u["email"])
		assert.NotContains(t, u, "password")
	})

	t.Run("email taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		router := setupUserRouter(user.NewHandler(svc), userID)

		svc.EXPECT().UpdateProfile(gomock.Any(), userID, gomock.Any()).
			Return(user.UserResponse{}, usererrors.ErrEmailAlreadyExists)

		body, _ := json.Marshal(user.UpdateProfileRequest{Name: "Jane", Email: "taken@example.com"})
		req := httptest.NewRequest(http.MethodPut, "/update-profile", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email already exists", decodeEnvelope(t, w)["error"].(map[string]any)["message"])
	})

	t.Run("missing name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := userMock.NewMockService(ctrl)
		router := setupUserRouter(user.NewHandler(svc), userID)

		body, _ := json.Marshal(map[string]string{"email": "jane@example.com"})
		req := httptest.NewRequest(http.MethodPut, "/update-profile", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Name is required", decodeEnvelope(t, w)["error"].(map[string]any)["message"])
	})
}
