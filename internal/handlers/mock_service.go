package handlers

import (
	"context"

	"todoapp/internal/models"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser  *models.User
	registerToken string
	registerErr   error
	loginUser     *models.User
	loginToken    string
	loginErr      error
	validateUser  *models.User
	validateErr   error
	revokeErr     error

	lastRegisterEmail    string
	lastRegisterPassword string
	lastLoginEmail       string
	lastValidateToken    string
	lastRevokeUserID     int64
	lastRevokeToken      string
	revokeCalls          int
}

func (m *mockAuth) Register(_ context.Context, email, password string) (*models.User, string, error) {
	m.lastRegisterEmail = email
	m.lastRegisterPassword = password
	return m.registerUser, m.registerToken, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, email, _ string) (*models.User, string, error) {
	m.lastLoginEmail = email
	return m.loginUser, m.loginToken, m.loginErr
}

func (m *mockAuth) ValidateToken(_ context.Context, token string) (*models.User, error) {
	m.lastValidateToken = token
	return m.validateUser, m.validateErr
}

func (m *mockAuth) RevokeToken(_ context.Context, userID int64, token string) error {
	m.revokeCalls++
	m.lastRevokeUserID = userID
	m.lastRevokeToken = token
	return m.revokeErr
}

type mockTodos struct {
	createTodo *models.Todo
	createErr  error
	listTodos  []models.Todo
	listErr    error
	getTodo    *models.Todo
	getErr     error
	updateTodo *models.Todo
	updateErr  error
	deleteTodo *models.Todo
	deleteErr  error

	lastCreatorID  int64
	lastCreateText string
	lastID         string
	lastPatch      service.TodoPatch
}

func (m *mockTodos) Create(_ context.Context, creatorID int64, text string) (*models.Todo, error) {
	m.lastCreatorID = creatorID
	m.lastCreateText = text
	return m.createTodo, m.createErr
}

func (m *mockTodos) List(_ context.Context, creatorID int64) ([]models.Todo, error) {
	m.lastCreatorID = creatorID
	return m.listTodos, m.listErr
}

func (m *mockTodos) Get(_ context.Context, creatorID int64, id string) (*models.Todo, error) {
	m.lastCreatorID = creatorID
	m.lastID = id
	return m.getTodo, m.getErr
}

func (m *mockTodos) Update(_ context.Context, creatorID int64, id string, patch service.TodoPatch) (*models.Todo, error) {
	m.lastCreatorID = creatorID
	m.lastID = id
	m.lastPatch = patch
	return m.updateTodo, m.updateErr
}

func (m *mockTodos) Delete(_ context.Context, creatorID int64, id string) (*models.Todo, error) {
	m.lastCreatorID = creatorID
	m.lastID = id
	return m.deleteTodo, m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
