package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerSuite struct {
	suite.Suite
	env *testEnv
}

func (s *AuthHandlerSuite) SetupTest() {
	s.env = newTestEnv()
}

func TestAuthHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) TestRegisterSuccess() {
	body := `{"firstName": "Grace", "lastName": "Hopper", "email": "grace@example.com", "username": "grace", "password": "password1234"}`

	rr := s.env.do("POST", "/auth/register", "", body)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	data := decodeData(rr)
	Expect(data["accessToken"]).ToNot(BeEmpty())
	Expect(data["refreshToken"]).ToNot(BeEmpty())

	user := data["user"].(map[string]any)
	Expect(user["email"]).To(Equal("grace@example.com"))
	Expect(user["firstName"]).To(Equal("Grace"))
}

func (s *AuthHandlerSuite) TestRegisterValidationError() {
	body := `{"firstName": "Grace", "lastName": "Hopper", "email": "not-an-email", "username": "g", "password": "short"}`

	rr := s.env.do("POST", "/auth/register", "", body)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	code, _ := decodeError(rr)
	Expect(code).To(Equal("VALIDATION_ERROR"))
}

func (s *AuthHandlerSuite) TestRegisterDuplicateEmail() {
	s.env.register("grace@example.com", "grace")

	body := `{"firstName": "Grace", "lastName": "Hopper", "email": "grace@example.com", "username": "other", "password": "password1234"}`

	rr := s.env.do("POST", "/auth/register", "", body)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	_, message := decodeError(rr)
	Expect(message).To(Equal("Email already in use"))
}

func (s *AuthHandlerSuite) TestLoginSuccess() {
	s.env.register("grace@example.com", "grace")

	body := `{"email": "grace@example.com", "password": "password1234"}`

	rr := s.env.do("POST", "/auth/login", "", body)

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := decodeData(rr)
	Expect(data["accessToken"]).ToNot(BeEmpty())
	Expect(data["refreshToken"]).ToNot(BeEmpty())
}

func (s *AuthHandlerSuite) TestLoginWrongPassword() {
	s.env.register("grace@example.com", "grace")

	body := `{"email": "grace@example.com", "password": "wrongpassword"}`

	rr := s.env.do("POST", "/auth/login", "", body)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))

	code, message := decodeError(rr)
	Expect(code).To(Equal("UNAUTHORIZED"))
	Expect(message).To(Equal("Invalid credentials"))
}

func (s *AuthHandlerSuite) TestRefreshSuccess() {
	s.env.register("grace@example.com", "grace")

	rr := s.env.do("POST", "/auth/login", "", `{"email": "grace@example.com", "password": "password1234"}`)
	refreshToken := decodeData(rr)["refreshToken"].(string)

	rr = s.env.do("POST", "/auth/refresh", "", fmt.Sprintf(`{"refreshToken": %q}`, refreshToken))

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decodeData(rr)["accessToken"]).ToNot(BeEmpty())
}

func (s *AuthHandlerSuite) TestRefreshRejectsAccessToken() {
	token, _ := s.env.register("grace@example.com", "grace")

	rr := s.env.do("POST", "/auth/refresh", "", fmt.Sprintf(`{"refreshToken": %q}`, token))

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *AuthHandlerSuite) TestMeSuccess() {
	token, userId := s.env.register("grace@example.com", "grace")

	rr := s.env.do("GET", "/auth/me", token, "")

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := decodeData(rr)
	Expect(int(data["id"].(float64))).To(Equal(userId))
	Expect(data["username"]).To(Equal("grace"))
}

func (s *AuthHandlerSuite) TestMeRequiresToken() {
	rr := s.env.do("GET", "/auth/me", "", "")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))

	code, message := decodeError(rr)
	Expect(code).To(Equal("UNAUTHORIZED"))
	Expect(message).To(Equal("Authorization header is required"))
}

func (s *AuthHandlerSuite) TestLogout() {
	token, _ := s.env.register("grace@example.com", "grace")

	rr := s.env.do("POST", "/auth/logout", token, "")

	Expect(rr.Code).To(Equal(http.StatusOK))

	var wrapper map[string]any
	json.Unmarshal(rr.Body.Bytes(), &wrapper)
	Expect(wrapper["message"]).To(Equal("Logged out"))
}

func (s *AuthHandlerSuite) TestMeRejectsGarbageToken() {
	rr := s.env.do("GET", "/auth/me", "garbage", "")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))

	_, message := decodeError(rr)
	Expect(message).To(Equal("Invalid or expired token"))
}

func (s *AuthHandlerSuite) TestRegisterMalformedJSON() {
	rr := s.env.do("POST", "/auth/register", "", `{"email": `)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	var wrapper map[string]any
	json.Unmarshal(rr.Body.Bytes(), &wrapper)
	Expect(wrapper["error"]).ToNot(BeNil())
}
