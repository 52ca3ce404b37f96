package app

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/shopcore/shopcore/internal/dto"
)

func (s *Suite) mintUnsubscribeLink(client *http.Client) string {
	resp := s.postJSON(client, "/api/v1/unsubscribe", nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var link dto.UnsubscribeLinkResponse
	s.decode(resp, &link)
	s.Require().NotEmpty(link.UnsubscribeURL)
	return link.UnsubscribeURL
}

// tokenPath strips the host so requests go through the test server.
func (s *Suite) tokenPath(unsubscribeURL string) string {
	parsed, err := url.Parse(unsubscribeURL)
	s.Require().NoError(err)
	return parsed.Path
}

func (s *Suite) TestUnsubscribeLinkRequiresSession() {
	resp := s.postJSON(s.client(), "/api/v1/unsubscribe", nil)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestUnsubscribeFlow() {
	client := s.register("alice")

	link := s.mintUnsubscribeLink(client)
	s.Contains(link, "/api/v1/unsubscribe/")
	path := s.tokenPath(link)

	// Probing the form does not consume the token.
	for range 2 {
		resp := s.get(s.client(), path)
		s.Equal(http.StatusOK, resp.StatusCode)

		var form dto.UnsubscribeFormResponse
		s.decode(resp, &form)
		s.True(form.Valid)
	}

	// Redeeming it does, and the link works without a session.
	resp := s.postJSON(s.client(), path, dto.UnsubscribeRequest{Reason: "too many emails"})
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	me := s.get(client, "/api/v1/auth/me")
	var user dto.UserResponse
	s.decode(me, &user)
	s.False(user.IsSubscribed)

	// Second redemption fails.
	resp = s.postJSON(s.client(), path, nil)
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.get(s.client(), path)
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestUnsubscribeWithFormBody() {
	client := s.register("alice")
	path := s.tokenPath(s.mintUnsubscribeLink(client))

	resp, err := s.client().PostForm(s.server.URL+path, url.Values{"reason": {"too many emails"}})
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	me := s.get(client, "/api/v1/auth/me")
	var user dto.UserResponse
	s.decode(me, &user)
	s.False(user.IsSubscribed)
}

func (s *Suite) TestUnsubscribeUnknownToken() {
	resp := s.get(s.client(), "/api/v1/unsubscribe/bogus")
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.postJSON(s.client(), "/api/v1/unsubscribe/bogus", nil)
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestUnsubscribeTokenIsOpaque() {
	client := s.register("alice")

	link := s.mintUnsubscribeLink(client)
	parsed, err := url.Parse(link)
	s.Require().NoError(err)

	segments := strings.Split(parsed.Path, "/")
	token := segments[len(segments)-1]
	s.Require().NotEmpty(token)
	s.False(strings.Contains(token, "alice"), "token must not embed user data")
}
