package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"

	"projecthub/internal/adapter/database/memory"
	"projecthub/internal/adapter/http/handler"
	"projecthub/internal/adapter/http/routes"
	"projecthub/internal/core/service"
	"projecthub/internal/core/util"
	"projecthub/pkg/auth"
)

// testEnv wires the full HTTP surface over the in-memory store so
// handler tests exercise routing, auth middleware, validation and the
// services together.
type testEnv struct {
	Router *gin.Engine
	Store  *memory.Store
	Tokens *auth.JWT
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	tokens := auth.NewJWT("access-secret", "refresh-secret", 0, 0)
	hasher := util.NewBcryptHasher()

	authUseCase := service.NewAuthService(store.Users(), store.Persons(), hasher, tokens)
	projectUseCase := service.NewProjectService(store.Projects(), store.Users())
	taskUseCase := service.NewTaskService(store.Tasks(), store.Projects(), store.Users())
	userUseCase := service.NewUserService(store.Users(), store.Projects(), store.Tasks())

	router := routes.SetupRouterForTests(routes.HandlersConfig{
		AuthHandler:    handler.NewAuthHandler(authUseCase),
		ProjectHandler: handler.NewProjectHandler(projectUseCase),
		TaskHandler:    handler.NewTaskHandler(taskUseCase),
		UserHandler:    handler.NewUserHandler(userUseCase),
		Tokens:         tokens,
	})

	return &testEnv{
		Router: router,
		Store:  store,
		Tokens: tokens,
	}
}

func (e *testEnv) do(method, path, token string, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.Router.ServeHTTP(rr, req)

	return rr
}

// register creates an account through the public endpoint and returns
// the access token plus the new user id.
func (e *testEnv) register(email, username string) (string, int) {
	body := fmt.Sprintf(
		`{"firstName": "Grace", "lastName": "Hopper", "email": %q, "username": %q, "password": "password1234"}`,
		email, username,
	)

	rr := e.do("POST", "/auth/register", "", body)

	if rr.Code != http.StatusCreated {
		panic(fmt.Sprintf("register failed: %d %s", rr.Code, rr.Body.String()))
	}

	data := decodeData(rr)
	user := data["user"].(map[string]any)

	return data["accessToken"].(string), int(user["id"].(float64))
}

func decodeData(rr *httptest.ResponseRecorder) map[string]any {
	wrapper := map[string]any{}
	json.Unmarshal(rr.Body.Bytes(), &wrapper)

	data, _ := wrapper["data"].(map[string]any)

	return data
}

func decodeError(rr *httptest.ResponseRecorder) (string, string) {
	wrapper := map[string]any{}
	json.Unmarshal(rr.Body.Bytes(), &wrapper)

	errObj, _ := wrapper["error"].(map[string]any)

	if errObj == nil {
		return "", ""
	}

	code, _ := errObj["code"].(string)

	message := ""
	if errs, ok := errObj["errors"].([]any); ok && len(errs) > 0 {
		first, _ := errs[0].(map[string]any)
		message, _ = first["message"].(string)
	}

	return code, message
}
