package app

import (
	"encoding/json"
	"net/http"

	"github.com/shopcore/shopcore/internal/dto"
)

func (s *Suite) TestRegister_Success() {
	client := s.client()

	resp := s.postJSON(client, "/api/v1/auth/register", dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var user dto.UserResponse
	s.decode(resp, &user)
	s.Equal("alice", user.Username)
	s.Equal("alice@example.com", user.Email)
	s.False(user.IsAdmin)
	s.True(user.IsSubscribed)
	s.NotEmpty(user.ID)
}

func (s *Suite) TestRegister_MissingFields() {
	client := s.client()

	resp := s.postJSON(client, "/api/v1/auth/register", map[string]string{
		"username": "alice",
	})
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRegister_Duplicate() {
	s.register("alice")

	client := s.client()
	resp := s.postJSON(client, "/api/v1/auth/register", dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "Password123",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("Conflict", errResp.Error)
}

func (s *Suite) TestLogin_SetsSessionCookie() {
	s.register("alice")

	client := s.client()
	resp := s.postJSON(client, "/api/v1/auth/login", dto.LoginRequest{
		Username: "alice",
		Password: "Password123",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var session *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session" {
			session = cookie
		}
	}
	s.Require().NotNil(session, "login must set the session cookie")
	s.True(session.HttpOnly)
	s.NotEmpty(session.Value)

	// The body must not carry the token.
	var body map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	for _, value := range body {
		if str, ok := value.(string); ok {
			s.NotEqual(session.Value, str)
		}
	}
}

func (s *Suite) TestLogin_UniformFailure() {
	s.register("alice")
	client := s.client()

	wrongPassword := s.postJSON(client, "/api/v1/auth/login", dto.LoginRequest{
		Username: "alice",
		Password: "wrong",
	})
	s.Equal(http.StatusUnauthorized, wrongPassword.StatusCode)
	var first dto.ErrorResponse
	s.decode(wrongPassword, &first)

	unknownUser := s.postJSON(client, "/api/v1/auth/login", dto.LoginRequest{
		Username: "nobody",
		Password: "Password123",
	})
	s.Equal(http.StatusUnauthorized, unknownUser.StatusCode)
	var second dto.ErrorResponse
	s.decode(unknownUser, &second)

	s.Equal(first, second, "unknown user and wrong password must be indistinguishable")
}

func (s *Suite) TestSecondLoginRevokesFirstSession() {
	s.register("alice")

	first := s.client()
	resp := s.postJSON(first, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "Password123"})
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	second := s.client()
	resp = s.postJSON(second, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "Password123"})
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.get(first, "/api/v1/auth/me")
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode, "first session is dead after the second login")

	resp = s.get(second, "/api/v1/auth/me")
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestLogout() {
	client := s.register("alice")

	resp := s.postJSON(client, "/api/v1/auth/logout", nil)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.get(client, "/api/v1/auth/me")
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe_RequiresSession() {
	resp := s.get(s.client(), "/api/v1/auth/me")
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe() {
	client := s.register("alice")

	resp := s.get(client, "/api/v1/auth/me")
	s.Equal(http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	s.decode(resp, &user)
	s.Equal("alice", user.Username)
}
