package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type UserHandlerSuite struct {
	suite.Suite
	env *testEnv

	token string
}

func (s *UserHandlerSuite) SetupTest() {
	s.env = newTestEnv()
	s.token, _ = s.env.register("grace@example.com", "grace")
}

func TestUserHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserHandlerSuite))
}

func (s *UserHandlerSuite) TestListUsers() {
	s.env.register("ada@example.com", "ada")

	rr := s.env.do("GET", "/users", s.token, "")

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := decodeData(rr)
	Expect(int(data["total"].(float64))).To(Equal(2))
}

func (s *UserHandlerSuite) TestListUsersSearch() {
	s.env.register("ada@example.com", "ada")

	rr := s.env.do("GET", "/users?search=ada", s.token, "")

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := decodeData(rr)
	Expect(int(data["total"].(float64))).To(Equal(1))

	users := data["users"].([]any)
	Expect(users[0].(map[string]any)["username"]).To(Equal("ada"))
}

func (s *UserHandlerSuite) TestListUsersInvalidSort() {
	rr := s.env.do("GET", "/users?sortBy=password", s.token, "")

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *UserHandlerSuite) TestStats() {
	rr := s.env.do("POST", "/projects", s.token, `{"name": "Apollo", "slug": "apollo"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	projectId := int(decodeData(rr)["id"].(float64))

	body := fmt.Sprintf(`{"name": "Design heat shield", "projectId": %d, "assignTo": [{"username": "grace"}]}`, projectId)
	rr = s.env.do("POST", "/tasks", s.token, body)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	rr = s.env.do("GET", "/users/stats", s.token, "")

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := decodeData(rr)
	Expect(int(data["projectsCount"].(float64))).To(Equal(1))
	Expect(int(data["pendingTasksCount"].(float64))).To(Equal(1))
	Expect(int(data["inProgressTasksCount"].(float64))).To(Equal(0))
}

func (s *UserHandlerSuite) TestStatsRequiresAuth() {
	rr := s.env.do("GET", "/users/stats", "", "")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}
