package v1

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mkarpenko/go-tasklist/internal/models"
	"github.com/mkarpenko/go-tasklist/internal/services"
	"github.com/mkarpenko/go-tasklist/internal/token"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

func newTestCodec() *token.Codec {
	return token.NewCodec("go-tasklist", []byte(testSigningKey))
}

// newTestRouter wires the handler into a gin engine with the same route
// layout the application registers.
func newTestRouter(auth services.AuthService, tasks services.TaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := New(zerolog.Nop(), auth, tasks, newTestCodec())

	router := gin.New()
	api := router.Group("/api")

	authRouter := api.Group("/auth")
	authRouter.POST("/signup", handler.HandleSignUp)
	authRouter.POST("/login", handler.HandleLogin)

	taskRouter := api.Group("/tasks")
	taskRouter.Use(handler.HandleAuthMiddleware)
	taskRouter.GET("", handler.HandleListTasks)
	taskRouter.POST("", handler.HandleCreateTask)
	taskRouter.PUT("/:id", handler.HandleUpdateTask)
	taskRouter.DELETE("/:id", handler.HandleDeleteTask)

	return router
}

func performRequest(t *testing.T, router *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

type mockAuthService struct {
	signUpFn func(ctx context.Context, params services.CredentialsParams) (*services.AuthResult, error)
	loginFn  func(ctx context.Context, params services.CredentialsParams) (*services.AuthResult, error)
}

func (m *mockAuthService) SignUp(ctx context.Context, params services.CredentialsParams) (*services.AuthResult, error) {
	if m.signUpFn == nil {
		panic("unexpected SignUp call")
	}
	return m.signUpFn(ctx, params)
}

func (m *mockAuthService) Login(ctx context.Context, params services.CredentialsParams) (*services.AuthResult, error) {
	if m.loginFn == nil {
		panic("unexpected Login call")
	}
	return m.loginFn(ctx, params)
}

type mockTaskService struct {
	listCalls   int
	createCalls int

	listFn   func(ctx context.Context) ([]*models.Task, error)
	createFn func(ctx context.Context, params services.CreateTaskParams) (*models.Task, error)
	updateFn func(ctx context.Context, id int64, params services.UpdateTaskParams) (*models.Task, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockTaskService) ListTasks(ctx context.Context) ([]*models.Task, error) {
	m.listCalls++
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}

func (m *mockTaskService) CreateTask(ctx context.Context, params services.CreateTaskParams) (*models.Task, error) {
	m.createCalls++
	if m.createFn == nil {
		panic("unexpected CreateTask call")
	}
	return m.createFn(ctx, params)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, id int64, params services.UpdateTaskParams) (*models.Task, error) {
	if m.updateFn == nil {
		panic("unexpected UpdateTask call")
	}
	return m.updateFn(ctx, id, params)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		panic("unexpected DeleteTask call")
	}
	return m.deleteFn(ctx, id)
}

func issueTestToken(t *testing.T, userID int64, username string) string {
	t.Helper()

	tokenString, err := newTestCodec().Issue(userID, username)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return tokenString
}

var _ services.AuthService = (*mockAuthService)(nil)
var _ services.TaskService = (*mockTaskService)(nil)

func testHTTPStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("Expected status %d, got %d (body: %s)", want, rr.Code, rr.Body.String())
	}
}
