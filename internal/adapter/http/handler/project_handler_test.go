package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type ProjectHandlerSuite struct {
	suite.Suite
	env *testEnv

	creatorToken string
	memberToken  string
	outsideToken string
}

func (s *ProjectHandlerSuite) SetupTest() {
	s.env = newTestEnv()

	s.creatorToken, _ = s.env.register("creator@example.com", "creator")
	s.memberToken, _ = s.env.register("member@example.com", "member")
	s.outsideToken, _ = s.env.register("outside@example.com", "outside")
}

func TestProjectHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(ProjectHandlerSuite))
}

func (s *ProjectHandlerSuite) createProject(name, slug string) int {
	body := fmt.Sprintf(`{"name": %q, "slug": %q}`, name, slug)

	rr := s.env.do("POST", "/projects", s.creatorToken, body)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	return int(decodeData(rr)["id"].(float64))
}

func (s *ProjectHandlerSuite) TestCreateSuccess() {
	rr := s.env.do("POST", "/projects", s.creatorToken, `{"name": "Apollo", "slug": "apollo", "description": "Lunar program"}`)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	data := decodeData(rr)
	Expect(data["name"]).To(Equal("Apollo"))
	Expect(data["slug"]).To(Equal("apollo"))
}

func (s *ProjectHandlerSuite) TestCreateValidationError() {
	rr := s.env.do("POST", "/projects", s.creatorToken, `{"slug": "apollo"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	code, _ := decodeError(rr)
	Expect(code).To(Equal("VALIDATION_ERROR"))
}

func (s *ProjectHandlerSuite) TestCreateRequiresAuth() {
	rr := s.env.do("POST", "/projects", "", `{"name": "Apollo", "slug": "apollo"}`)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *ProjectHandlerSuite) TestGetByIDForbiddenForOutsider() {
	projectId := s.createProject("Apollo", "apollo")

	rr := s.env.do("GET", fmt.Sprintf("/projects/%d", projectId), s.outsideToken, "")

	Expect(rr.Code).To(Equal(http.StatusForbidden))
}

func (s *ProjectHandlerSuite) TestGetByIDNotFound() {
	rr := s.env.do("GET", "/projects/999", s.creatorToken, "")

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *ProjectHandlerSuite) TestGetByIDInvalidParam() {
	rr := s.env.do("GET", "/projects/abc", s.creatorToken, "")

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *ProjectHandlerSuite) TestUpdateOnlyCreator() {
	projectId := s.createProject("Apollo", "apollo")

	path := fmt.Sprintf("/projects/%d", projectId)
	body := `{"name": "Apollo 11"}`

	rr := s.env.do("PUT", path, s.outsideToken, body)
	Expect(rr.Code).To(Equal(http.StatusForbidden))

	rr = s.env.do("PUT", path, s.creatorToken, body)
	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decodeData(rr)["name"]).To(Equal("Apollo 11"))
}

func (s *ProjectHandlerSuite) TestMemberLifecycle() {
	projectId := s.createProject("Apollo", "apollo")
	path := fmt.Sprintf("/projects/%d/members", projectId)

	rr := s.env.do("POST", path, s.creatorToken, `{"email": "member@example.com"}`)
	Expect(rr.Code).To(Equal(http.StatusOK))

	// The new member can now see the project.
	rr = s.env.do("GET", fmt.Sprintf("/projects/%d", projectId), s.memberToken, "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.env.do("GET", path, s.creatorToken, "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.env.do("DELETE", path, s.creatorToken, `{"email": "member@example.com"}`)
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.env.do("GET", fmt.Sprintf("/projects/%d", projectId), s.memberToken, "")
	Expect(rr.Code).To(Equal(http.StatusForbidden))
}

func (s *ProjectHandlerSuite) TestAddMemberOnlyCreator() {
	projectId := s.createProject("Apollo", "apollo")
	path := fmt.Sprintf("/projects/%d/members", projectId)

	rr := s.env.do("POST", path, s.creatorToken, `{"email": "member@example.com"}`)
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.env.do("POST", path, s.memberToken, `{"email": "outside@example.com"}`)
	Expect(rr.Code).To(Equal(http.StatusForbidden))
}

func (s *ProjectHandlerSuite) TestRemoveCreatorRejected() {
	projectId := s.createProject("Apollo", "apollo")
	path := fmt.Sprintf("/projects/%d/members", projectId)

	rr := s.env.do("DELETE", path, s.creatorToken, `{"email": "creator@example.com"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *ProjectHandlerSuite) TestDeleteThenGone() {
	projectId := s.createProject("Apollo", "apollo")
	path := fmt.Sprintf("/projects/%d", projectId)

	rr := s.env.do("DELETE", path, s.outsideToken, "")
	Expect(rr.Code).To(Equal(http.StatusForbidden))

	rr = s.env.do("DELETE", path, s.creatorToken, "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.env.do("GET", path, s.creatorToken, "")
	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *ProjectHandlerSuite) TestListScopedToMembership() {
	s.createProject("Apollo", "apollo")

	rr := s.env.do("POST", "/projects", s.memberToken, `{"name": "Gemini", "slug": "gemini"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	rr = s.env.do("GET", "/projects", s.memberToken, "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	data := decodeData(rr)
	Expect(int(data["total"].(float64))).To(Equal(1))

	projects := data["projects"].([]any)
	first := projects[0].(map[string]any)
	Expect(first["name"]).To(Equal("Gemini"))
}
