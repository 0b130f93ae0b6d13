package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/mkarpenko/go-tasklist/internal/models"
	"github.com/mkarpenko/go-tasklist/internal/services"
)

// End-to-end scenario over real services and an in-memory store:
// signup, create, list, update, delete, list again.
func TestSignupCreateUpdateDeleteFlow(t *testing.T) {
	router := newIntegrationRouter()

	// signup
	rr := performRequest(t, router, http.MethodPost, "/api/auth/signup",
		`{"username": "alice", "password": "pw1"}`, "")
	testHTTPStatus(t, rr, http.StatusCreated)

	var signup struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &signup); err != nil {
		t.Fatalf("Failed to decode signup response: %v", err)
	}
	if signup.Token == "" {
		t.Fatal("Signup returned no token")
	}

	// create
	rr = performRequest(t, router, http.MethodPost, "/api/tasks",
		`{"title": "Buy milk"}`, signup.Token)
	testHTTPStatus(t, rr, http.StatusCreated)

	var created taskResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode create response: %v", err)
	}
	if created.Status != models.StatusTodo || created.Priority != models.PriorityMedium {
		t.Errorf("Unexpected defaults: status=%q priority=%q", created.Status, created.Priority)
	}

	// list
	rr = performRequest(t, router, http.MethodGet, "/api/tasks", "", signup.Token)
	testHTTPStatus(t, rr, http.StatusOK)

	var listed []taskResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID || listed[0].Title != "Buy milk" {
		t.Fatalf("Expected exactly the created task, got %+v", listed)
	}

	// update
	rr = performRequest(t, router, http.MethodPut, "/api/tasks/1",
		`{"status": "done"}`, signup.Token)
	testHTTPStatus(t, rr, http.StatusOK)

	var updated taskResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Failed to decode update response: %v", err)
	}
	if updated.ID != created.ID || updated.Status != models.StatusDone {
		t.Errorf("Unexpected update response: %+v", updated)
	}
	if updated.Title != "Buy milk" {
		t.Errorf("Title changed during status update: %q", updated.Title)
	}

	// delete
	rr = performRequest(t, router, http.MethodDelete, "/api/tasks/1", "", signup.Token)
	testHTTPStatus(t, rr, http.StatusNoContent)

	// list is empty again
	rr = performRequest(t, router, http.MethodGet, "/api/tasks", "", signup.Token)
	testHTTPStatus(t, rr, http.StatusOK)
	if body := rr.Body.String(); body != "[]" {
		t.Errorf("Expected empty array after delete, got %q", body)
	}

	// a second signup with the same username conflicts
	rr = performRequest(t, router, http.MethodPost, "/api/auth/signup",
		`{"username": "alice", "password": "pw2"}`, "")
	testHTTPStatus(t, rr, http.StatusConflict)
}

func newIntegrationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	codec := newTestCodec()
	logger := zerolog.Nop()
	handler := New(
		logger,
		services.NewAuthService(logger, newFakeUserRepo(), codec),
		services.NewTaskService(logger, newFakeTaskRepo()),
		codec,
	)

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

// Minimal in-memory stand-ins for the postgres repositories. They return
// the same errors the real ones do so the services behave identically.

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if _, exists := r.users[user.Username]; exists {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, exists := r.users[username]
	if !exists {
		return nil, pgx.ErrNoRows
	}
	found := *user
	return &found, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeTaskRepo struct {
	tasks  map[int64]*models.Task
	nextID int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*models.Task)}
}

func (r *fakeTaskRepo) Insert(_ context.Context, task *models.Task) error {
	r.nextID++
	task.ID = r.nextID
	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *fakeTaskRepo) List(_ context.Context) ([]*models.Task, error) {
	tasks := make([]*models.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		found := *task
		tasks = append(tasks, &found)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*models.Task, error) {
	task, exists := r.tasks[id]
	if !exists {
		return nil, pgx.ErrNoRows
	}
	found := *task
	return &found, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	if _, exists := r.tasks[task.ID]; !exists {
		return pgx.ErrNoRows
	}
	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, exists := r.tasks[id]; !exists {
		return pgx.ErrNoRows
	}
	delete(r.tasks, id)
	return nil
}
